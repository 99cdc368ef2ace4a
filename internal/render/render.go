// Package render turns view state into terminal text. Pure formatting; all
// state lives in the view packages.
package render

import (
	"fmt"
	"io"
	"strings"

	"planctl/internal/bomtree"
	"planctl/internal/editor"
	"planctl/internal/models"
)

// typeIcon marks each item type in trees and tables.
func typeIcon(itemType string) string {
	switch itemType {
	case models.ItemTypeRawMaterial:
		return "▪"
	case models.ItemTypeIntermediate:
		return "◆"
	case models.ItemTypeFinished:
		return "★"
	}
	return "?"
}

// Tree writes the visible rows of a hierarchy, one line per node. Expandable
// nodes carry [+]/[-] markers; each line is numbered so the interactive loop
// can address nodes by row.
func Tree(w io.Writer, rows []bomtree.Row) {
	for i, row := range rows {
		marker := "   "
		if row.Expandable {
			if row.Expanded {
				marker = "[-]"
			} else {
				marker = "[+]"
			}
		}
		fmt.Fprintf(w, "%3d  %s%s %s %s (%s)  %g %s\n",
			i,
			strings.Repeat("    ", row.Depth),
			marker,
			typeIcon(row.Node.ItemType),
			row.Node.Name,
			row.Node.SKU,
			row.Node.Quantity,
			row.Node.UnitOfMeasure)
	}
}

// Stats writes the server-computed tree statistics.
func Stats(w io.Writer, stats models.TreeStats) {
	fmt.Fprintf(w, "nodes: %d   max depth: %d   distinct items: %d\n",
		stats.TotalNodes, stats.MaxDepth, stats.DistinctItems)
}

// FlatTable writes the aggregated requirement rows.
func FlatTable(w io.Writer, rows []models.FlatRequirement) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no matching requirements)")
		return
	}
	fmt.Fprintf(w, "%-14s %-28s %-4s %12s %-6s\n", "SKU", "NAME", "TYPE", "TOTAL QTY", "UOM")
	for _, r := range rows {
		fmt.Fprintf(w, "%-14s %-28s %-4s %12g %-6s\n",
			r.SKU, r.Name, typeIcon(r.ItemType), r.TotalQuantity, r.UnitOfMeasure)
	}
}

// BOMList writes the BOM summaries with selection markers.
func BOMList(w io.Writer, rows []models.BOMSummary, selected func(sku string) bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no BOMs match)")
		return
	}
	for i, r := range rows {
		mark := " "
		if selected != nil && selected(r.SKU) {
			mark = "x"
		}
		hasBOM := "-"
		if r.HasBOM {
			hasBOM = "BOM"
		}
		fmt.Fprintf(w, "%3d [%s] %s %-14s %-28s %s\n",
			i, mark, typeIcon(r.ItemType), r.SKU, r.Name, hasBOM)
	}
}

// Items writes a plain item table.
func Items(w io.Writer, items []models.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "(no items match)")
		return
	}
	fmt.Fprintf(w, "%-14s %-28s %-22s %-6s %s\n", "SKU", "NAME", "TYPE", "UOM", "STATUS")
	for _, it := range items {
		fmt.Fprintf(w, "%-14s %-28s %-22s %-6s %s\n",
			it.SKU, it.Name, it.ItemType, it.UnitOfMeasure, it.Status)
	}
}

// EditorRows writes the draft rows as the editor loop shows them. Rows that
// would be dropped at save time are flagged.
func EditorRows(w io.Writer, parentSKU string, locked bool, rows []editor.ComponentRow) {
	lock := ""
	if locked {
		lock = " (locked)"
	}
	fmt.Fprintf(w, "parent: %s%s\n", parentSKU, lock)
	for i, r := range rows {
		flag := ""
		if r.ItemSKU == "" || r.Quantity <= 0 {
			flag = "  ! dropped at save"
		}
		fmt.Fprintf(w, "%3d  %-14s %g%s\n", i, r.ItemSKU, r.Quantity, flag)
	}
}
