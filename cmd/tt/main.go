package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"timetracker/internal/cli"
	"timetracker/internal/config"
	"timetracker/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(connect, os.Stdout, os.Stderr)
	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(cli.NewErrorHandler().ExitCode(err))
	}
}

// connect builds the DI runtime for the loaded configuration.
func connect(cfg *config.Config, logOut io.Writer) (cli.Backend, error) {
	rt, err := di.NewRuntime(cfg, logOut)
	if err != nil {
		return nil, err
	}
	return rt, nil
}
