// Command graphdraw builds, renders and serves diagram scenes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/graph-module/graphdraw/internal/cli"
)

// exitInterrupted is the shell status of a process stopped by SIGINT.
const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	verbose := root.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	cobra.OnInitialize(func() {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
	})

	err := root.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
}
