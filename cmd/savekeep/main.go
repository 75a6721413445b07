// Package main is the entry point for the savekeep CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/thoreinstein/savekeep/cmd/savekeep/commands"
	"github.com/thoreinstein/savekeep/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.Execute(ctx)
	stop()

	if err != nil {
		exitErr := errors.Classify(err)
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), exitErr)
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
}
