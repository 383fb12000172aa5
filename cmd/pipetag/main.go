package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/afero"

	"github.com/ib-77/pipetag/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmd := cli.NewRootCommand(ctx, os.Stdout, os.Stderr, afero.NewOsFs(), clockwork.NewRealClock())
	code := cmd.Execute()
	stop()
	os.Exit(code)
}
