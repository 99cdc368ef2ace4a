package listview_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"planctl/internal/listview"
	"planctl/internal/models"
)

type fakeDeleter struct {
	singles []string
	bulks   [][]string
	err     error
}

func (f *fakeDeleter) DeleteBOM(ctx context.Context, sku string) error {
	f.singles = append(f.singles, sku)
	return f.err
}

func (f *fakeDeleter) BulkDeleteBOMs(ctx context.Context, skus []string) error {
	f.bulks = append(f.bulks, skus)
	return f.err
}

func sampleRows() []models.BOMSummary {
	return []models.BOMSummary{
		{SKU: "FG-100", Name: "Widget", ItemType: models.ItemTypeFinished, HasBOM: true},
		{SKU: "FG-200", Name: "Gadget", ItemType: models.ItemTypeFinished, HasBOM: false},
		{SKU: "SA-10", Name: "Widget Core", ItemType: models.ItemTypeIntermediate, HasBOM: true},
	}
}

func TestVisibleFiltering(t *testing.T) {
	m := listview.New(&fakeDeleter{})
	m.SetRows(sampleRows())

	m.SetFilter("widget", "")
	got := m.Visible()
	if len(got) != 2 || got[0].SKU != "FG-100" || got[1].SKU != "SA-10" {
		t.Errorf("text filter: %+v", got)
	}

	m.SetFilter("", models.ItemTypeFinished)
	got = m.Visible()
	if len(got) != 2 || got[0].SKU != "FG-100" || got[1].SKU != "FG-200" {
		t.Errorf("type filter: %+v", got)
	}

	m.SetFilter("widget", models.ItemTypeIntermediate)
	got = m.Visible()
	if len(got) != 1 || got[0].SKU != "SA-10" {
		t.Errorf("combined filter: %+v", got)
	}
}

func TestSelectAllTogglesOnlyVisibleRows(t *testing.T) {
	m := listview.New(&fakeDeleter{})
	m.SetRows(sampleRows())
	m.SetFilter("", models.ItemTypeFinished)

	m.ToggleSelectAll()
	if got := m.Selected(); !reflect.DeepEqual(got, []string{"FG-100", "FG-200"}) {
		t.Fatalf("select-all over visible: %v", got)
	}
	if m.IsSelected("SA-10") {
		t.Error("hidden row must not be selected")
	}

	// All visible selected: the second toggle deselects them.
	m.ToggleSelectAll()
	if got := m.Selected(); len(got) != 0 {
		t.Errorf("expected empty selection, got %v", got)
	}
}

func TestSelectionSurvivesRefilterAndRefresh(t *testing.T) {
	m := listview.New(&fakeDeleter{})
	m.SetRows(sampleRows())
	m.ToggleSelect("FG-100")
	m.ToggleSelect("SA-10")

	m.SetFilter("gadget", "")
	if !m.IsSelected("FG-100") || !m.IsSelected("SA-10") {
		t.Error("filtering must not clear selection")
	}

	// A refresh that dropped SA-10 prunes it; FG-100 stays.
	m.SetRows(sampleRows()[:2])
	if m.IsSelected("SA-10") {
		t.Error("selection for a vanished row must be pruned")
	}
	if !m.IsSelected("FG-100") {
		t.Error("selection for a surviving row must be kept")
	}
}

func TestBulkDeleteRequiresConfirmation(t *testing.T) {
	d := &fakeDeleter{}
	m := listview.New(d)
	m.SetRows([]models.BOMSummary{{SKU: "A"}, {SKU: "B"}, {SKU: "C"}})
	m.ToggleSelect("A")
	m.ToggleSelect("B")
	m.ToggleSelect("C")

	count, err := m.RequestDeleteSelected()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if count != 3 {
		t.Fatalf("confirmation must name 3 items, got %d", count)
	}
	if len(d.bulks)+len(d.singles) != 0 {
		t.Fatal("no request may fire before confirmation")
	}

	if err := m.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(d.bulks) != 1 || !reflect.DeepEqual(d.bulks[0], []string{"A", "B", "C"}) {
		t.Errorf("bulk call = %v", d.bulks)
	}
	if got := m.Selected(); len(got) != 0 {
		t.Errorf("selection must be cleared after delete, got %v", got)
	}
}

func TestCancelAbandonsStagedDelete(t *testing.T) {
	d := &fakeDeleter{}
	m := listview.New(d)
	m.SetRows(sampleRows())
	m.ToggleSelect("FG-100")
	if _, err := m.RequestDeleteSelected(); err != nil {
		t.Fatal(err)
	}
	m.CancelDelete()
	if err := m.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("confirm after cancel must fail")
	}
	if len(d.singles)+len(d.bulks) != 0 {
		t.Error("cancelled delete must not reach the network")
	}
}

func TestSingleDeleteUsesSameTwoStepFlow(t *testing.T) {
	d := &fakeDeleter{}
	m := listview.New(d)
	m.SetRows(sampleRows())

	count, err := m.RequestDelete("FG-200")
	if err != nil || count != 1 {
		t.Fatalf("request single: %d, %v", count, err)
	}
	if len(d.singles) != 0 {
		t.Fatal("single delete must also wait for confirmation")
	}
	if err := m.ConfirmDelete(context.Background()); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if len(d.singles) != 1 || d.singles[0] != "FG-200" {
		t.Errorf("single delete call = %v", d.singles)
	}
	if len(d.bulks) != 0 {
		t.Error("single delete must use the per-sku endpoint")
	}
}

func TestFailedDeleteKeepsStateForRetry(t *testing.T) {
	d := &fakeDeleter{err: errors.New("bom in use")}
	m := listview.New(d)
	m.SetRows(sampleRows())
	m.ToggleSelect("FG-100")
	m.ToggleSelect("FG-200")
	if _, err := m.RequestDeleteSelected(); err != nil {
		t.Fatal(err)
	}
	if err := m.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("expected delete failure")
	}
	if m.PendingCount() != 2 {
		t.Error("failed delete must keep the staging for retry")
	}
	if !m.IsSelected("FG-100") || !m.IsSelected("FG-200") {
		t.Error("failed delete must not clear the selection")
	}
}

type fakeUpdater struct{ err error }

func (f *fakeUpdater) UpdateItemStatus(ctx context.Context, sku, status string) error {
	return f.err
}

func TestOptimisticStatusCommit(t *testing.T) {
	f := listview.NewStatusField("active")
	err := listview.ApplyStatus(context.Background(), &fakeUpdater{}, "FG-100", f, "discontinued")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if f.Value() != "discontinued" || f.Dirty() {
		t.Errorf("value = %q dirty = %v after commit", f.Value(), f.Dirty())
	}
}

func TestOptimisticStatusRollback(t *testing.T) {
	f := listview.NewStatusField("active")
	err := listview.ApplyStatus(context.Background(), &fakeUpdater{err: errors.New("forbidden")}, "FG-100", f, "discontinued")
	if err == nil {
		t.Fatal("expected failure")
	}
	if f.Value() != "active" {
		t.Errorf("failed update must roll back, value = %q", f.Value())
	}
}
