package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytget/songbatch/internal/cli"
	"github.com/ytget/songbatch/internal/config"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	cli.Version = version

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "songbatch: %v\n", err)
		os.Exit(2)
	}

	// SIGTERM aborts the running job immediately; run handles SIGINT itself
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, env); err != nil {
		stop()
		os.Exit(1)
	}
}
