package listview

import "context"

// StatusUpdater is the API slice used by the optimistic status quick-edit.
type StatusUpdater interface {
	UpdateItemStatus(ctx context.Context, sku, status string) error
}

// StatusField is an optimistically edited value: the pending value renders
// immediately, the committed value is the last server-confirmed one, and a
// failed request rolls back to it. The canonical value is never mutated
// before confirmation.
type StatusField struct {
	committed string
	pending   string
	dirty     bool
}

// NewStatusField starts from the server-supplied value.
func NewStatusField(value string) *StatusField {
	return &StatusField{committed: value}
}

// Value is what the row should display right now.
func (f *StatusField) Value() string {
	if f.dirty {
		return f.pending
	}
	return f.committed
}

// Dirty reports whether an update is in flight.
func (f *StatusField) Dirty() bool { return f.dirty }

func (f *StatusField) begin(v string) {
	f.pending = v
	f.dirty = true
}

func (f *StatusField) commit() {
	f.committed = f.pending
	f.dirty = false
}

func (f *StatusField) rollback() {
	f.dirty = false
}

// ApplyStatus performs the optimistic update for one item: the field shows
// the new value for the duration of the request, commits on success, and
// rolls back to the committed value on failure. The error carries the server
// message for display.
func ApplyStatus(ctx context.Context, u StatusUpdater, sku string, f *StatusField, value string) error {
	f.begin(value)
	if err := u.UpdateItemStatus(ctx, sku, value); err != nil {
		f.rollback()
		return err
	}
	f.commit()
	return nil
}
