// Command example serves a login flow whose action and formatter live in the
// application's own location:
//
//	go run ./example serve -c example/flowforge.yaml
//	curl 'localhost:8080/login?email=ada@example.com&password=lovelace'
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/flowforge"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := flowforge.NewCommand(flowforge.WithRegistrars(register))
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
