package main

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"

	"planctl/internal/store"
)

// defaultWidgets seeds the dashboard layout on first use.
var defaultWidgets = []string{"low_stock", "open_orders", "forecast_accuracy", "mrp_alerts"}

const widgetsHelp = `commands:
  move <n> <pos>   move widget n to position pos
  hide <n> / show <n>
  reset            restore the default layout
  q                quit`

// runWidgets edits the locally persisted dashboard layout. Load at startup,
// save on every change; nothing here touches the server.
func (a *App) runWidgets() error {
	layout, err := a.store.WidgetLayout()
	if err != nil {
		return err
	}
	if len(layout) == 0 {
		for i, name := range defaultWidgets {
			layout = append(layout, store.Widget{Name: name, Position: i, Visible: true})
		}
		if err := a.store.SaveWidgetLayout(layout); err != nil {
			return err
		}
	}

	show := func() {
		sort.Slice(layout, func(i, j int) bool { return layout[i].Position < layout[j].Position })
		for i, w := range layout {
			vis := "shown"
			if !w.Visible {
				vis = "hidden"
			}
			fmt.Fprintf(a.out, "%3d  %-20s %s\n", i, w.Name, vis)
		}
	}
	save := func() {
		for i := range layout {
			layout[i].Position = i
		}
		if err := a.store.SaveWidgetLayout(layout); err != nil {
			fmt.Fprintf(a.out, "could not save layout: %v\n", err)
		}
	}

	show()
	scanner := bufio.NewScanner(a.in)
	for {
		line, ok := prompt(scanner, a.out, "widgets> ")
		if !ok || line == "q" {
			return nil
		}
		verb, rest := splitCommand(line)

		switch verb {
		case "move":
			fromArg, toArg := splitCommand(rest)
			from, err1 := strconv.Atoi(fromArg)
			to, err2 := strconv.Atoi(toArg)
			if err1 != nil || err2 != nil || from < 0 || from >= len(layout) || to < 0 || to >= len(layout) {
				fmt.Fprintln(a.out, "usage: move <n> <pos>")
				continue
			}
			w := layout[from]
			layout = append(layout[:from], layout[from+1:]...)
			layout = append(layout[:to], append([]store.Widget{w}, layout[to:]...)...)
			save()
			show()
		case "hide", "show":
			n, err := strconv.Atoi(rest)
			if err != nil || n < 0 || n >= len(layout) {
				fmt.Fprintf(a.out, "usage: %s <n>\n", verb)
				continue
			}
			layout[n].Visible = verb == "show"
			save()
			show()
		case "reset":
			layout = layout[:0]
			for i, name := range defaultWidgets {
				layout = append(layout, store.Widget{Name: name, Position: i, Visible: true})
			}
			save()
			show()
		case "help", "?":
			fmt.Fprintln(a.out, widgetsHelp)
		default:
			fmt.Fprintf(a.out, "unknown command %q (try help)\n", verb)
		}
	}
}
