package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"planctl/internal/watch"
)

// runWatch follows the server change feed until interrupted.
func (a *App) runWatch() error {
	wsURL := strings.Replace(a.client.BaseURL(), "http", "ws", 1) + "/ws"

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(a.out, "watching %s (ctrl-c to stop)\n", wsURL)
	return watch.Listen(ctx, wsURL, func(evt ChangeEvent) {
		fmt.Fprintf(a.out, "%-20s %-8s %v\n", evt.Type, evt.Action, evt.ID)
	})
}
