package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"planctl/internal/api"
	"planctl/internal/store"
)

// App wires the command loops to the API client, the local state store, and
// the terminal. in/out are parameters so the loops are testable.
type App struct {
	client  *api.Client
	store   *store.Store
	in      io.Reader
	out     io.Writer
	openAll bool
}

// prompt reads one line, trimmed. ok is false on EOF.
func prompt(scanner *bufio.Scanner, out io.Writer, p string) (string, bool) {
	fmt.Fprint(out, p)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

// splitCommand splits a loop command into verb and remainder.
func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	verb := parts[0]
	rest := ""
	if len(parts) == 2 {
		rest = strings.TrimSpace(parts[1])
	}
	return verb, rest
}
