package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/pixelforge/internal/cli"
	pferrors "github.com/matzehuels/pixelforge/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		for _, e := range pferrors.Flatten(err) {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
}
