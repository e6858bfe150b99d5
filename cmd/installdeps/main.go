// Command installdeps resolves a project's declared dependencies and installs
// them with pip.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertocavalcante/go-depset/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
