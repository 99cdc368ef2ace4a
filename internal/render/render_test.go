package render_test

import (
	"strings"
	"testing"

	"planctl/internal/bomtree"
	"planctl/internal/editor"
	"planctl/internal/models"
	"planctl/internal/render"
)

func TestTreeMarkersAndIndent(t *testing.T) {
	tv := bomtree.New(models.BOMTreeNode{
		SKU: "FG-100", Name: "Widget", ItemType: models.ItemTypeFinished,
		Quantity: 1, UnitOfMeasure: "ea",
		Children: []models.BOMTreeNode{
			{SKU: "SA-10", Name: "Core", ItemType: models.ItemTypeIntermediate, Quantity: 2, UnitOfMeasure: "ea",
				Children: []models.BOMTreeNode{
					{SKU: "RM-01", Name: "Steel", ItemType: models.ItemTypeRawMaterial, Quantity: 4, UnitOfMeasure: "kg"},
				}},
		},
	}, false)

	var b strings.Builder
	render.Tree(&b, tv.VisibleRows())
	out := b.String()

	if !strings.Contains(out, "[-]") {
		t.Error("expanded root should carry a [-] marker")
	}
	if !strings.Contains(out, "[+]") {
		t.Error("collapsed SA-10 should carry a [+] marker")
	}
	if strings.Contains(out, "RM-01") {
		t.Error("children of a collapsed node must not be rendered")
	}
	if !strings.Contains(out, "FG-100") || !strings.Contains(out, "2 ea") {
		t.Errorf("missing node fields:\n%s", out)
	}
}

func TestFlatTableEmptyState(t *testing.T) {
	var b strings.Builder
	render.FlatTable(&b, nil)
	if !strings.Contains(b.String(), "no matching requirements") {
		t.Errorf("empty state missing: %q", b.String())
	}
}

func TestBOMListSelectionMarks(t *testing.T) {
	rows := []models.BOMSummary{
		{SKU: "FG-100", Name: "Widget", ItemType: models.ItemTypeFinished, HasBOM: true},
		{SKU: "FG-200", Name: "Gadget", ItemType: models.ItemTypeFinished},
	}
	var b strings.Builder
	render.BOMList(&b, rows, func(sku string) bool { return sku == "FG-100" })
	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("%d lines", len(lines))
	}
	if !strings.Contains(lines[0], "[x]") || !strings.Contains(lines[1], "[ ]") {
		t.Errorf("selection marks wrong:\n%s", b.String())
	}
}

func TestEditorRowsFlagsInvalid(t *testing.T) {
	var b strings.Builder
	render.EditorRows(&b, "FG-100", true, []editor.ComponentRow{
		{ItemSKU: "RM-01", Quantity: 2},
		{ItemSKU: "", Quantity: 1},
	})
	out := b.String()
	if !strings.Contains(out, "(locked)") {
		t.Error("locked parent not indicated")
	}
	if strings.Count(out, "dropped at save") != 1 {
		t.Errorf("invalid-row flagging wrong:\n%s", out)
	}
}
