package pip

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// result is the captured output of one command.
type result struct {
	stdout string
	stderr string
}

// output returns stdout, or stderr when stdout is empty.
func (r result) output() string {
	if out := strings.TrimSpace(r.stdout); out != "" {
		return out
	}
	return strings.TrimSpace(r.stderr)
}

// run executes argv[0] with the remaining arguments and captures both
// streams. The process is killed when ctx is cancelled.
func run(ctx context.Context, logger *log.Logger, argv []string) (result, error) {
	logger.Debug("running command", "argv", argv)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := result{stdout: stdout.String(), stderr: stderr.String()}
	logger.Debug("command finished", "argv", argv, "stdout_bytes", len(res.stdout),
		"stderr", strings.TrimSpace(res.stderr), "err", err)
	if ctx.Err() != nil {
		return res, ctx.Err()
	}
	return res, err
}
