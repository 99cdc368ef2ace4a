package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"planctl/internal/listview"
	"planctl/internal/render"
)

const itemsHelp = `commands:
  filter [q]          text filter (server-side)
  type [item_type]    filter by item type
  status <n> <value>  quick-edit the status of row n (optimistic)
  r                   refresh
  q                   quit`

// runItems is the item list with the optimistic status quick-edit.
func (a *App) runItems() error {
	ctx := context.Background()

	var query, itemType string
	var items []Item
	var fields []*listview.StatusField

	refresh := func() error {
		fmt.Fprintln(a.out, "loading items ...")
		got, err := a.client.ListItems(ctx, query, itemType)
		if err != nil {
			return err
		}
		items = got
		fields = make([]*listview.StatusField, len(items))
		for i, it := range items {
			fields[i] = listview.NewStatusField(it.Status)
		}
		return nil
	}
	show := func() {
		view := make([]Item, len(items))
		copy(view, items)
		for i := range view {
			view[i].Status = fields[i].Value()
		}
		render.Items(a.out, view)
	}

	if err := refresh(); err != nil {
		return err
	}
	show()

	scanner := bufio.NewScanner(a.in)
	for {
		line, ok := prompt(scanner, a.out, "items> ")
		if !ok || line == "q" {
			return nil
		}
		verb, rest := splitCommand(line)

		switch verb {
		case "filter":
			query = rest
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "type":
			itemType = rest
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "status":
			arg, value := splitCommand(rest)
			n, err := strconv.Atoi(arg)
			if err != nil || value == "" {
				fmt.Fprintln(a.out, "usage: status <n> <value>")
				continue
			}
			if n < 0 || n >= len(items) {
				fmt.Fprintf(a.out, "no row %d\n", n)
				continue
			}
			if err := listview.ApplyStatus(ctx, a.client, items[n].SKU, fields[n], value); err != nil {
				fmt.Fprintf(a.out, "update failed, reverted: %v\n", err)
			}
			show()
		case "r":
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "help", "?":
			fmt.Fprintln(a.out, itemsHelp)
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", verb)
		}
	}
}
