// Package editor owns the client-local draft state for constructing or
// editing one BOM: one parent item plus an ordered list of component rows,
// submitted to the server as a single unit. The server re-validates
// everything independently; validation here is pre-flight only.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"planctl/internal/models"
)

// State is the editing session lifecycle.
type State int

const (
	// StateLoading fetches the existing component list when editing.
	StateLoading State = iota
	// StateEditing is the working state; also the initial state for a new BOM.
	StateEditing
	// StateSaving is entered on submit.
	StateSaving
	// StateLoadError is terminal for the session; re-entering the view
	// retries.
	StateLoadError
	// StateDone means the save succeeded and the caller should navigate
	// back to the list.
	StateDone
)

// ComponentRow is one mutable editor line. Rows with an empty sku or a
// non-positive quantity are dropped at save time, never before.
type ComponentRow struct {
	ItemSKU  string
	Quantity float64
}

// BOMStore is the slice of the API the editor needs.
type BOMStore interface {
	GetBOM(ctx context.Context, sku string) (*models.BOMRecord, error)
	SaveBOM(ctx context.Context, payload models.BOMPayload) error
}

// Session is one editing session. It exclusively owns its draft until the
// save succeeds; the server owns the durable record.
type Session struct {
	store BOMStore

	state        State
	parentSKU    string
	parentLocked bool
	rows         []ComponentRow
	loadErr      string
	saveErr      string
}

// NewSession starts a session for a brand-new BOM. The parent is chosen
// freely until the first save.
func NewSession(store BOMStore) *Session {
	return &Session{store: store, state: StateEditing}
}

// EditSession starts a session for the existing BOM of sku. The parent is
// locked: a BOM cannot be moved to a different product after creation. The
// session begins in StateLoading; call Load to hydrate it.
func EditSession(store BOMStore, sku string) *Session {
	return &Session{
		store:        store,
		state:        StateLoading,
		parentSKU:    sku,
		parentLocked: true,
	}
}

// Load fetches the stored component list. On failure the session moves to
// StateLoadError with the message retained; there is no built-in retry.
func (s *Session) Load(ctx context.Context) error {
	if s.state != StateLoading {
		return fmt.Errorf("load in state %d", s.state)
	}
	rec, err := s.store.GetBOM(ctx, s.parentSKU)
	if err != nil {
		s.state = StateLoadError
		s.loadErr = err.Error()
		return err
	}
	s.rows = make([]ComponentRow, len(rec.Components))
	for i, c := range rec.Components {
		s.rows[i] = ComponentRow{ItemSKU: c.ItemSKU, Quantity: c.Quantity}
	}
	s.state = StateEditing
	return nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// LoadError returns the message from a failed load.
func (s *Session) LoadError() string { return s.loadErr }

// SaveError returns the server's message from the last failed save, verbatim.
func (s *Session) SaveError() string { return s.saveErr }

// ParentSKU returns the draft's parent item.
func (s *Session) ParentSKU() string { return s.parentSKU }

// ParentLocked reports whether the parent can still be changed.
func (s *Session) ParentLocked() bool { return s.parentLocked }

// SetParent chooses the parent item. Rejected once locked (edit mode).
func (s *Session) SetParent(sku string) error {
	if s.parentLocked {
		return errors.New("cannot change the product a BOM belongs to")
	}
	s.parentSKU = sku
	return nil
}

// Rows returns the current component rows in order.
func (s *Session) Rows() []ComponentRow {
	out := make([]ComponentRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// AddRow appends an empty row.
func (s *Session) AddRow() {
	s.rows = append(s.rows, ComponentRow{})
}

// RemoveRow deletes the row at index i. The remaining rows keep their
// original relative order.
func (s *Session) RemoveRow(i int) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("no row %d", i)
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

// SetRowSKU edits the sku of row i in place.
func (s *Session) SetRowSKU(i int, sku string) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("no row %d", i)
	}
	s.rows[i].ItemSKU = sku
	return nil
}

// SetRowQuantity edits the quantity of row i in place.
func (s *Session) SetRowQuantity(i int, q float64) error {
	if i < 0 || i >= len(s.rows) {
		return fmt.Errorf("no row %d", i)
	}
	s.rows[i].Quantity = q
	return nil
}

// ParseQuantity parses a user-entered quantity. Fractional values are
// accepted; consumption ratios are not necessarily whole numbers.
func ParseQuantity(s string) (float64, error) {
	q, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return q, nil
}

// ValidComponents returns the rows that survive submission filtering:
// non-empty sku and quantity > 0, in draft order.
func (s *Session) ValidComponents() []models.ComponentRef {
	var out []models.ComponentRef
	for _, r := range s.rows {
		if r.ItemSKU != "" && r.Quantity > 0 {
			out = append(out, models.ComponentRef{ItemSKU: r.ItemSKU, Quantity: r.Quantity})
		}
	}
	return out
}

// Validate applies the pre-flight checks. A failure blocks submission before
// any network call.
func (s *Session) Validate() error {
	if s.parentSKU == "" {
		return errors.New("select a parent item before saving")
	}
	if len(s.ValidComponents()) == 0 {
		return errors.New("must add at least one valid component")
	}
	return nil
}

// Save validates and submits the draft. On a validation failure no request
// is made. On a server failure the session returns to StateEditing with the
// server's message retained; nothing is applied locally either way.
func (s *Session) Save(ctx context.Context) error {
	if s.state != StateEditing {
		return fmt.Errorf("save in state %d", s.state)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.state = StateSaving
	payload := models.BOMPayload{
		ProductSKU: s.parentSKU,
		Components: s.ValidComponents(),
	}
	if err := s.store.SaveBOM(ctx, payload); err != nil {
		s.state = StateEditing
		s.saveErr = err.Error()
		return err
	}
	s.saveErr = ""
	s.state = StateDone
	return nil
}

// ComponentCandidates filters items down to those addable as components:
// raw materials and intermediate products. A finished product can never be a
// sub-component.
func ComponentCandidates(items []models.Item) []models.Item {
	var out []models.Item
	for _, it := range items {
		if models.CanBeComponent(it.ItemType) {
			out = append(out, it)
		}
	}
	return out
}

// ParentCandidates filters items down to those that may own a BOM:
// intermediate and finished products. A raw material can never have its own
// BOM.
func ParentCandidates(items []models.Item) []models.Item {
	var out []models.Item
	for _, it := range items {
		if models.CanBeParent(it.ItemType) {
			out = append(out, it)
		}
	}
	return out
}
