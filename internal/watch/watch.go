// Package watch subscribes to the server's change feed so list views can
// refresh when someone else edits the data. Events mirror the server's
// broadcast shape; there is no reconnect logic — the backend is assumed
// co-located, and a dropped feed just ends the watch.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	ws "github.com/gorilla/websocket"

	"planctl/internal/models"
)

// Listen connects to wsURL and invokes onEvent for every decoded change
// event until ctx is cancelled or the connection drops. Undecodable frames
// are logged and skipped. Returns nil on clean cancellation.
func Listen(ctx context.Context, wsURL string, onEvent func(models.ChangeEvent)) error {
	conn, _, err := ws.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connect change feed: %w", err)
	}
	defer conn.Close()

	// Unblock the read loop on cancellation.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("change feed closed: %w", err)
		}
		var evt models.ChangeEvent
		if err := json.Unmarshal(data, &evt); err != nil {
			log.Printf("watch: skipping undecodable event: %v", err)
			continue
		}
		onEvent(evt)
	}
}

// ResourceFilter wraps an event callback so it only fires for events whose
// type starts with prefix (e.g. "bom" matches "bom_created").
func ResourceFilter(prefix string, fn func(models.ChangeEvent)) func(models.ChangeEvent) {
	return func(evt models.ChangeEvent) {
		if strings.HasPrefix(evt.Type, prefix) {
			fn(evt)
		}
	}
}
