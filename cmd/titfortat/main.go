// Package main runs Prisoner's Dilemma games, tournaments and NEAT
// evolution from the command line.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/boyter/titfortat/internal/config"

	titfortatcmd "github.com/boyter/titfortat/internal/cmd/titfortat"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := titfortatcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		return config.ExitCode(os.Stderr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return config.ExitCode(os.Stderr, titfortatcmd.Run(ctx, cfg, os.Stdout, os.Stderr))
}
