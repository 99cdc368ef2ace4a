package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"

	"planctl/internal/listview"
	"planctl/internal/render"
)

const bomsHelp = `commands:
  filter [q]        text filter (empty clears)
  type [item_type]  filter by item type (empty clears)
  sel <n>           toggle selection of row n
  all               select/deselect every visible row
  del               delete selection (asks for confirmation)
  del <n>           delete row n (asks for confirmation)
  tree <n>          open the hierarchy view for row n
  edit <n>          edit the BOM of row n
  new               create a new BOM
  import <file>     upload a BOM definition file (parsed server-side)
  export <file>     download all BOMs to a file
  r                 refresh from the server
  q                 quit`

// runBOMs is the interactive BOM list.
func (a *App) runBOMs() error {
	ctx := context.Background()
	model := listview.New(a.client)

	var query, itemType string
	refresh := func() error {
		fmt.Fprintln(a.out, "loading BOMs ...")
		rows, err := a.client.ListBOMs(ctx, query, itemType)
		if err != nil {
			return err
		}
		model.SetRows(rows)
		return nil
	}
	show := func() {
		render.BOMList(a.out, model.Visible(), model.IsSelected)
	}

	if err := refresh(); err != nil {
		return err
	}
	show()

	scanner := bufio.NewScanner(a.in)
	for {
		line, ok := prompt(scanner, a.out, "boms> ")
		if !ok || line == "q" {
			return nil
		}
		verb, rest := splitCommand(line)

		switch verb {
		case "filter":
			query = rest
			model.SetFilter(query, itemType)
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "type":
			itemType = rest
			model.SetFilter(query, itemType)
			show()
		case "sel":
			row, err := a.visibleRow(model, rest)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			model.ToggleSelect(row.SKU)
			show()
		case "all":
			model.ToggleSelectAll()
			show()
		case "del":
			a.deleteFlow(ctx, scanner, model, rest)
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "tree":
			row, err := a.visibleRow(model, rest)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			if err := a.runTree(row.SKU); err != nil {
				return err
			}
			show()
		case "edit":
			row, err := a.visibleRow(model, rest)
			if err != nil {
				fmt.Fprintln(a.out, err)
				continue
			}
			if err := a.runEditor(row.SKU); err != nil {
				return err
			}
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "new":
			if err := a.runEditor(""); err != nil {
				return err
			}
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "import":
			if rest == "" {
				fmt.Fprintln(a.out, "import: missing file")
				continue
			}
			fmt.Fprintln(a.out, "uploading ...")
			res, err := a.client.ImportBOMsCSV(ctx, rest)
			if err != nil {
				fmt.Fprintf(a.out, "import failed: %v\n", err)
				continue
			}
			fmt.Fprintln(a.out, res.Message)
			if err := refresh(); err == nil {
				show()
			}
		case "export":
			if rest == "" {
				fmt.Fprintln(a.out, "export: missing destination file")
				continue
			}
			fmt.Fprintln(a.out, "downloading ...")
			if err := a.client.ExportBOMsCSV(ctx, rest); err != nil {
				fmt.Fprintf(a.out, "export failed: %v\n", err)
				continue
			}
			fmt.Fprintf(a.out, "saved to %s\n", rest)
		case "r":
			if err := refresh(); err != nil {
				fmt.Fprintf(a.out, "refresh failed: %v\n", err)
				continue
			}
			show()
		case "help", "?":
			fmt.Fprintln(a.out, bomsHelp)
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", verb)
		}
	}
}

// visibleRow resolves a row-number argument against the current visible rows.
func (a *App) visibleRow(model *listview.Model, arg string) (BOMSummary, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return BOMSummary{}, fmt.Errorf("expected a row number, got %q", arg)
	}
	visible := model.Visible()
	if n < 0 || n >= len(visible) {
		return BOMSummary{}, fmt.Errorf("no row %d", n)
	}
	return visible[n], nil
}

// deleteFlow stages a deletion (single row or current selection) and asks
// for the mandatory confirmation before issuing it.
func (a *App) deleteFlow(ctx context.Context, scanner *bufio.Scanner, model *listview.Model, arg string) {
	var count int
	var err error
	if arg == "" {
		count, err = model.RequestDeleteSelected()
	} else {
		var row BOMSummary
		if row, err = a.visibleRow(model, arg); err == nil {
			count, err = model.RequestDelete(row.SKU)
		}
	}
	if err != nil {
		fmt.Fprintln(a.out, err)
		return
	}

	answer, ok := prompt(scanner, a.out, fmt.Sprintf("delete %d BOM(s)? type yes to confirm: ", count))
	if !ok || answer != "yes" {
		model.CancelDelete()
		fmt.Fprintln(a.out, "cancelled")
		return
	}
	if err := model.ConfirmDelete(ctx); err != nil {
		fmt.Fprintln(a.out, err)
		return
	}
	fmt.Fprintf(a.out, "deleted %d BOM(s)\n", count)
}
