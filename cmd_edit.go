package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"planctl/internal/editor"
	"planctl/internal/render"
	"planctl/internal/store"
)

const editHelp = `commands:
  add               append an empty component row
  rm <n>            remove row n
  sku <n> <sku>     set the component of row n
  qty <n> <q>       set the quantity of row n (fractions allowed)
  parent <sku>      choose the parent item (new BOMs only)
  parents [q]       list valid parent candidates
  comps [q]         list valid component candidates
  save              validate and submit
  discard           drop the draft and leave
  q                 leave (the draft stays autosaved)`

// runEditor opens one editing session: for an existing BOM when sku is
// non-empty, otherwise for a new one.
func (a *App) runEditor(sku string) error {
	ctx := context.Background()

	var session *editor.Session
	if sku != "" {
		session = editor.EditSession(a.client, sku)
		fmt.Fprintf(a.out, "loading BOM for %s ...\n", sku)
		if err := session.Load(ctx); err != nil {
			// Blocking message; re-entering the editor retries.
			fmt.Fprintf(a.out, "could not load BOM: %s\n", session.LoadError())
			return nil
		}
	} else {
		session = editor.NewSession(a.client)
	}

	scanner := bufio.NewScanner(a.in)
	a.maybeResumeDraft(scanner, session)

	show := func() {
		render.EditorRows(a.out, session.ParentSKU(), session.ParentLocked(), session.Rows())
	}
	autosave := func() {
		if session.ParentSKU() == "" {
			return
		}
		rows := session.Rows()
		draft := make([]store.DraftRow, len(rows))
		for i, r := range rows {
			draft[i] = store.DraftRow{ItemSKU: r.ItemSKU, Quantity: r.Quantity}
		}
		if err := a.store.SaveDraft(session.ParentSKU(), draft); err != nil {
			fmt.Fprintf(a.out, "autosave failed: %v\n", err)
		}
	}

	show()
	for {
		line, ok := prompt(scanner, a.out, "edit> ")
		if !ok || line == "q" {
			autosave()
			return nil
		}
		verb, rest := splitCommand(line)

		switch verb {
		case "add":
			session.AddRow()
			autosave()
			show()
		case "rm":
			n, err := strconv.Atoi(rest)
			if err != nil {
				fmt.Fprintf(a.out, "rm: expected a row number, got %q\n", rest)
				continue
			}
			if err := session.RemoveRow(n); err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			autosave()
			show()
		case "sku":
			n, value, err := rowArg(rest)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			if err := session.SetRowSKU(n, value); err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			autosave()
			show()
		case "qty":
			n, value, err := rowArg(rest)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			q, err := editor.ParseQuantity(value)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			if err := session.SetRowQuantity(n, q); err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			autosave()
			show()
		case "parent":
			if err := session.SetParent(rest); err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			show()
		case "parents":
			items, err := a.client.ListItems(ctx, rest, "")
			if err != nil {
				fmt.Fprintf(a.out, "could not load items: %v\n", err)
				continue
			}
			render.Items(a.out, editor.ParentCandidates(items))
		case "comps":
			items, err := a.client.ListItems(ctx, rest, "")
			if err != nil {
				fmt.Fprintf(a.out, "could not load items: %v\n", err)
				continue
			}
			render.Items(a.out, editor.ComponentCandidates(items))
		case "save":
			fmt.Fprintln(a.out, "saving ...")
			if err := session.Save(ctx); err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			if err := a.store.DeleteDraft(session.ParentSKU()); err != nil {
				fmt.Fprintf(a.out, "could not clear autosave: %v\n", err)
			}
			fmt.Fprintln(a.out, "saved")
			return nil
		case "discard":
			if session.ParentSKU() != "" {
				if err := a.store.DeleteDraft(session.ParentSKU()); err != nil {
					fmt.Fprintf(a.out, "could not clear autosave: %v\n", err)
				}
			}
			fmt.Fprintln(a.out, "discarded")
			return nil
		case "help", "?":
			fmt.Fprintln(a.out, editHelp)
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", verb)
		}
	}
}

// maybeResumeDraft offers to restore an autosaved draft for the session's
// parent. Declining keeps the autosave until the next explicit change.
func (a *App) maybeResumeDraft(scanner *bufio.Scanner, session *editor.Session) {
	if session.ParentSKU() == "" {
		return
	}
	rows, ok, err := a.store.LoadDraft(session.ParentSKU())
	if err != nil || !ok {
		return
	}
	answer, alive := prompt(scanner, a.out,
		fmt.Sprintf("found an autosaved draft with %d row(s); resume it? (yes/no): ", len(rows)))
	if !alive || answer != "yes" {
		return
	}
	for len(session.Rows()) > 0 {
		session.RemoveRow(0)
	}
	for i, r := range rows {
		session.AddRow()
		session.SetRowSKU(i, r.ItemSKU)
		session.SetRowQuantity(i, r.Quantity)
	}
}

// rowArg parses "<n> <value>" arguments.
func rowArg(rest string) (int, string, error) {
	verb, value := splitCommand(rest)
	n, err := strconv.Atoi(verb)
	if err != nil {
		return 0, "", fmt.Errorf("expected a row number, got %q", verb)
	}
	if value == "" {
		return 0, "", fmt.Errorf("missing value for row %d", n)
	}
	return n, value, nil
}
