package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestSay(t *testing.T) {
	tests := []struct {
		st   status
		icon string
	}{
		{statusInfo, "›"},
		{statusOK, "✓"},
		{statusWarn, "!"},
		{statusFail, "✗"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		say(&buf, tt.st, "%d packages processed", 5)
		if got := buf.String(); !strings.HasPrefix(got, tt.icon+" ") || !strings.Contains(got, "5 packages processed") {
			t.Errorf("say(%d) = %q", tt.st, got)
		}
	}
}

func TestSaySummary(t *testing.T) {
	var buf bytes.Buffer
	saySummary(&buf, 6, 5, "file cache 2/6 hits")
	out := buf.String()
	for _, want := range []string{"6 packages", "5 edges", "file cache 2/6 hits"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}

	buf.Reset()
	saySummary(&buf, 1, 0, "")
	if strings.Count(buf.String(), "·") != 1 {
		t.Errorf("summary without cache = %q", buf.String())
	}
}

func TestSayFile(t *testing.T) {
	var buf bytes.Buffer
	sayFile(&buf, "out/deps.gv.svg")
	if !strings.Contains(buf.String(), "→ out/deps.gv.svg") {
		t.Errorf("sayFile() = %q", buf.String())
	}
}
