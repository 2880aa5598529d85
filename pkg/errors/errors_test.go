package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unknown format %q", "gif")

	if err.Code != ErrCodeInvalidFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidFormat)
	}

	if err.Message != `unknown format "gif"` {
		t.Errorf("Message = %v, want %v", err.Message, `unknown format "gif"`)
	}

	expected := `INVALID_FORMAT: unknown format "gif"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("exit status 2")
	err := Wrap(ErrCodeExec, cause, "pip list")

	if err.Code != ErrCodeExec {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeExec)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if got, want := err.Error(), "EXEC_FAILED: pip list: exit status 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeParse, "bad json"),
			code:     ErrCodeParse,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeParse, "bad json"),
			code:     ErrCodeExec,
			expected: false,
		},
		{
			name:     "wrapped by fmt",
			err:      fmt.Errorf("list packages: %w", New(ErrCodeNotFound, "pip")),
			code:     ErrCodeNotFound,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInternal,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodeRender, "x")); got != ErrCodeRender {
		t.Errorf("CodeOf() = %v, want %v", got, ErrCodeRender)
	}
	if got := CodeOf(fmt.Errorf("describe flask: %w", New(ErrCodeExec, "x"))); got != ErrCodeExec {
		t.Errorf("CodeOf(wrapped) = %v, want %v", got, ErrCodeExec)
	}
	if got := CodeOf(errors.New("x")); got != "" {
		t.Errorf("CodeOf() = %v, want empty", got)
	}
}

func TestHintFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"default", New(ErrCodeNotFound, "no pip"), defaultHints[ErrCodeNotFound]},
		{"explicit", New(ErrCodeNotFound, "no pip").WithHint("try %s", "pip3"), "try pip3"},
		{"no default", New(ErrCodeRender, "graphviz"), ""},
		{"uncoded", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HintFor(tt.err); got != tt.want {
				t.Errorf("HintFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidConfig, "workers must not be negative"), "workers must not be negative"},
		{"coded with cause", Wrap(ErrCodeExec, errors.New("exit status 1"), "pip show requests"), "pip show requests: exit status 1"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
