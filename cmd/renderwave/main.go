// Command renderwave exposes the virtual list arithmetic on the command line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/renderwave/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev" //nolint:gochecknoglobals // Set by the linker.

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(version).ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}
