// Command mailaddr validates email addresses from the command line.
//
//	mailaddr check user@example.org "John <john@example.org>"
//	mailaddr check --strict --require-mx < addresses.txt
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
