// Gamecrate - Docker image game catalog manager
//
// Keeps a local catalog in sync with a Docker Hub repository of game
// backup images and generates the scripts that pull and unpack them.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamecrate/gamecrate/internal/cli"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}
