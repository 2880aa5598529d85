// Command pipviz renders the dependency graph of the packages pip has
// installed.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pipviz/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stdout, os.Stderr).RootCommand().ExecuteContext(ctx)
	stop()

	if code := cli.ExitCode(err); code != 0 {
		if code != cli.ExitCancelled {
			cli.PrintError(os.Stderr, err)
		}
		os.Exit(code)
	}
}
