// Package main serves or exports the Make a README page.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dguo/make-a-readme/internal/cli"
)

func main() {
	log.SetPrefix("[MAKEAREADME] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}
