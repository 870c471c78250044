package molecule

import (
	"github.com/tidwall/btree"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// Table is a caller-owned lookup of molecules keyed by ID, iterated in ID
// order.  It replaces process-wide molecule caches: whoever runs a batch of
// comparisons creates a Table and passes it in.  A Table is not safe for
// concurrent writes; concurrent readers are fine once loading is done.
type Table struct {
	byID btree.Map[string, *Molecule]
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{}
}

// Put stores m under m.ID.  An existing entry with the same ID is rejected
// unless replace is set.
func (t *Table) Put(m *Molecule, replace bool) error {
	if m == nil || m.ID == "" {
		return errors.InvalidParam("molecule ID must not be empty")
	}
	if !replace {
		if _, ok := t.byID.Get(m.ID); ok {
			return errors.New(errors.ErrCodeMoleculeAlreadyExists, "molecule already in table").
				WithDetail("id=" + m.ID)
		}
	}
	t.byID.Set(m.ID, m)
	return nil
}

// Get returns the molecule stored under id.
func (t *Table) Get(id string) (*Molecule, error) {
	m, ok := t.byID.Get(id)
	if !ok {
		return nil, errors.New(errors.CodeMoleculeNotFound, "molecule not found").WithDetail("id=" + id)
	}
	return m, nil
}

// Delete removes id and reports whether it was present.
func (t *Table) Delete(id string) bool {
	_, ok := t.byID.Delete(id)
	return ok
}

// Len returns the number of stored molecules.
func (t *Table) Len() int { return t.byID.Len() }

// IDs returns every ID in ascending order.
func (t *Table) IDs() []string { return t.byID.Keys() }

// Each calls fn for every molecule in ID order until fn returns false.
func (t *Table) Each(fn func(m *Molecule) bool) {
	t.byID.Scan(func(_ string, m *Molecule) bool { return fn(m) })
}

//Personal.AI order the ending
