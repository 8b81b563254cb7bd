package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/keboola/recordcsv/internal/pkg/service/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	// Run command
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs(), os.LookupEnv)
	exitCode := cmd.Execute(ctx)

	cancel()
	os.Exit(exitCode)
}
