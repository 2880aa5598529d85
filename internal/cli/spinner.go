package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const spinnerInterval = 100 * time.Millisecond

// startSpinner animates msg on w until ctx is done or the returned function
// is called. The stop function erases the spinner line, waits for the
// animation to exit and may be called more than once.
func startSpinner(ctx context.Context, w io.Writer, msg string) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	exited := make(chan struct{})

	go func() {
		defer close(exited)
		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			icon := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(w, "\r%s %s", styleNumber.Render(icon), styleDim.Render(msg))
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-exited
			fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", lipgloss.Width(msg)+2))
		})
	}
}
