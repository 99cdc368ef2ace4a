package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"planctl/internal/bomtree"
	"planctl/internal/fetcher"
	"planctl/internal/models"
	"planctl/internal/render"
)

type treeUpdate struct {
	sku  string
	resp *models.TreeResponse
	err  error
}

const treeHelp = `commands:
  <n>          toggle expand/collapse of row n
  all / none   expand or collapse everything
  flat [q]     flat requirements, optionally filtered by q
  stats        tree statistics
  goto <sku>   switch to another product's hierarchy
  open-all on|off   save the default-expand preference
  q            quit`

// runTree is the interactive hierarchy view. Fetches are routed through the
// keyed fetcher so that re-navigating while a fetch is in flight can never
// apply the late response for the previous sku.
func (a *App) runTree(sku string) error {
	openAll := a.openAll
	if !openAll {
		if saved, err := a.store.TreeOpenAll(); err == nil {
			openAll = saved
		}
	}

	updates := make(chan treeUpdate, 1)
	f := fetcher.New(func(key string, value *models.TreeResponse, err error) {
		updates <- treeUpdate{sku: key, resp: value, err: err}
	})
	defer f.Close()

	load := func(s string) {
		fmt.Fprintf(a.out, "loading %s ...\n", s)
		f.Start(context.Background(), s, func(ctx context.Context) (*models.TreeResponse, error) {
			return a.client.GetTree(ctx, s)
		})
	}

	var tv *bomtree.TreeView
	var flat *bomtree.FlatFilter
	var stats models.TreeStats

	apply := func(u treeUpdate) {
		if u.err != nil {
			tv, flat = nil, nil
			fmt.Fprintf(a.out, "no BOM information found for %s: %v\n", u.sku, u.err)
			return
		}
		tv = bomtree.New(u.resp.Tree, openAll)
		flat = bomtree.NewFlatFilter(u.resp.FlatList)
		stats = u.resp.Stats
		render.Tree(a.out, tv.VisibleRows())
	}

	load(sku)
	apply(<-updates)

	scanner := bufio.NewScanner(a.in)
	for {
		line, ok := prompt(scanner, a.out, "tree> ")
		if !ok || line == "q" {
			return nil
		}
		verb, rest := splitCommand(line)

		if n, err := strconv.Atoi(verb); err == nil {
			if tv == nil {
				fmt.Fprintln(a.out, "no tree loaded")
				continue
			}
			rows := tv.VisibleRows()
			if n < 0 || n >= len(rows) {
				fmt.Fprintf(a.out, "no row %d\n", n)
				continue
			}
			tv.Toggle(rows[n].Path)
			render.Tree(a.out, tv.VisibleRows())
			continue
		}

		switch verb {
		case "all":
			if tv != nil {
				tv.ExpandAll()
				render.Tree(a.out, tv.VisibleRows())
			}
		case "none":
			if tv != nil {
				tv.CollapseAll()
				render.Tree(a.out, tv.VisibleRows())
			}
		case "flat":
			if flat != nil {
				render.FlatTable(a.out, flat.Filter(rest))
			}
		case "stats":
			if tv != nil {
				render.Stats(a.out, stats)
			}
		case "goto":
			if rest == "" {
				fmt.Fprintln(a.out, "goto: missing sku")
				continue
			}
			load(rest)
			apply(<-updates)
		case "open-all":
			openAll = rest == "on"
			if err := a.store.SetTreeOpenAll(openAll); err != nil {
				fmt.Fprintf(a.out, "could not save preference: %v\n", err)
			}
		case "help", "?":
			fmt.Fprintln(a.out, treeHelp)
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", verb)
		}
	}
}
