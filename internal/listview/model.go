// Package listview holds the BOM list view state: text/type filtering,
// per-row selection, select-all over the visible rows, and the mandatory
// two-step confirmation in front of every destructive call.
package listview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"planctl/internal/models"
)

// Deleter is the slice of the API the list view needs for destructive calls.
type Deleter interface {
	DeleteBOM(ctx context.Context, sku string) error
	BulkDeleteBOMs(ctx context.Context, skus []string) error
}

// Model is the BOM list state. Rows come from the server; everything else is
// local UI state.
type Model struct {
	deleter Deleter

	rows     []models.BOMSummary
	query    string
	itemType string

	selected map[string]bool
	pending  []string
}

// New creates an empty list model.
func New(deleter Deleter) *Model {
	return &Model{deleter: deleter, selected: map[string]bool{}}
}

// SetRows replaces the rows after a (re)fetch. Selections for skus no longer
// present are dropped; the rest survive.
func (m *Model) SetRows(rows []models.BOMSummary) {
	m.rows = rows
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[r.SKU] = true
	}
	for sku := range m.selected {
		if !present[sku] {
			delete(m.selected, sku)
		}
	}
}

// SetFilter sets the free-text query and the item type filter.
func (m *Model) SetFilter(query, itemType string) {
	m.query = query
	m.itemType = itemType
}

// Visible returns the rows matching the current filter, in server order.
func (m *Model) Visible() []models.BOMSummary {
	q := strings.ToLower(m.query)
	var out []models.BOMSummary
	for _, r := range m.rows {
		if m.itemType != "" && r.ItemType != m.itemType {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.SKU), q) &&
			!strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IsSelected reports the selection state of one row.
func (m *Model) IsSelected(sku string) bool { return m.selected[sku] }

// ToggleSelect flips the selection of one row, independently of all others.
func (m *Model) ToggleSelect(sku string) {
	if m.selected[sku] {
		delete(m.selected, sku)
		return
	}
	for _, r := range m.rows {
		if r.SKU == sku {
			m.selected[sku] = true
			return
		}
	}
}

// ToggleSelectAll selects every currently visible row; if all of them are
// already selected it deselects them instead. Rows hidden by the filter are
// never touched.
func (m *Model) ToggleSelectAll() {
	visible := m.Visible()
	all := len(visible) > 0
	for _, r := range visible {
		if !m.selected[r.SKU] {
			all = false
			break
		}
	}
	for _, r := range visible {
		if all {
			delete(m.selected, r.SKU)
		} else {
			m.selected[r.SKU] = true
		}
	}
}

// Selected returns the selected skus in stable sorted order.
func (m *Model) Selected() []string {
	out := make([]string, 0, len(m.selected))
	for sku := range m.selected {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

// RequestDeleteSelected stages the current selection for deletion and
// returns the count to show in the confirmation prompt. No request is issued
// until ConfirmDelete.
func (m *Model) RequestDeleteSelected() (int, error) {
	skus := m.Selected()
	if len(skus) == 0 {
		return 0, errors.New("nothing selected")
	}
	m.pending = skus
	return len(skus), nil
}

// RequestDelete stages a single row for deletion. Single-item deletes go
// through the same two-step confirmation as bulk ones.
func (m *Model) RequestDelete(sku string) (int, error) {
	if sku == "" {
		return 0, errors.New("no sku given")
	}
	m.pending = []string{sku}
	return 1, nil
}

// PendingCount returns how many rows are staged for deletion.
func (m *Model) PendingCount() int { return len(m.pending) }

// CancelDelete abandons a staged deletion.
func (m *Model) CancelDelete() { m.pending = nil }

// ConfirmDelete issues the staged deletion: DELETE for one sku, bulk-delete
// for several. On failure the staging and selection are left untouched so the
// user can retry or cancel; nothing is applied locally.
func (m *Model) ConfirmDelete(ctx context.Context) error {
	if len(m.pending) == 0 {
		return errors.New("no deletion pending; request one first")
	}
	var err error
	if len(m.pending) == 1 {
		err = m.deleter.DeleteBOM(ctx, m.pending[0])
	} else {
		err = m.deleter.BulkDeleteBOMs(ctx, m.pending)
	}
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	for _, sku := range m.pending {
		delete(m.selected, sku)
	}
	m.pending = nil
	return nil
}
