package mcs

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// Mapping is an injective partial correspondence from query atoms to target
// atoms.  Pairs keep insertion order.
type Mapping struct {
	forward *orderedmap.OrderedMap[int, int]
	reverse map[int]int
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		forward: orderedmap.New[int, int](),
		reverse: make(map[int]int),
	}
}

// MappingFromPairs builds a mapping from (query, target) pairs in order.
func MappingFromPairs(pairs [][2]int) (*Mapping, error) {
	m := NewMapping()
	for _, p := range pairs {
		if err := m.Put(p[0], p[1]); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Put adds the pair query→target.  Reusing either atom breaks injectivity
// and is reported as a mapping integrity error.
func (m *Mapping) Put(query, target int) error {
	if query < 0 || target < 0 {
		return errors.MappingIntegrity(fmt.Sprintf("negative atom index in pair %d→%d", query, target))
	}
	if prev, ok := m.forward.Get(query); ok {
		return errors.MappingIntegrity(fmt.Sprintf("query atom %d already mapped to %d", query, prev))
	}
	if prev, ok := m.reverse[target]; ok {
		return errors.MappingIntegrity(fmt.Sprintf("target atom %d already mapped from %d", target, prev))
	}
	m.forward.Set(query, target)
	m.reverse[target] = query
	return nil
}

// Len returns the number of mapped pairs.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return m.forward.Len()
}

// Get returns the target atom mapped from query.
func (m *Mapping) Get(query int) (int, bool) {
	return m.forward.Get(query)
}

// Reverse returns the query atom mapped onto target.
func (m *Mapping) Reverse(target int) (int, bool) {
	q, ok := m.reverse[target]
	return q, ok
}

// Pairs returns the mapped (query, target) pairs in insertion order.
func (m *Mapping) Pairs() [][2]int {
	if m == nil {
		return nil
	}
	out := make([][2]int, 0, m.forward.Len())
	for p := m.forward.Oldest(); p != nil; p = p.Next() {
		out = append(out, [2]int{p.Key, p.Value})
	}
	return out
}

// Equal reports whether both mappings hold the same pairs, ignoring order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m.Len() != o.Len() {
		return false
	}
	for p := m.forward.Oldest(); p != nil; p = p.Next() {
		if t, ok := o.forward.Get(p.Key); !ok || t != p.Value {
			return false
		}
	}
	return true
}

// Validate checks that every pair refers to existing atoms of query and
// target and that the mapping is injective both ways.
func (m *Mapping) Validate(query, target *molecule.Molecule) error {
	seen := make(map[int]struct{}, m.Len())
	for p := m.forward.Oldest(); p != nil; p = p.Next() {
		if !query.HasAtom(p.Key) {
			return errors.MappingIntegrity(fmt.Sprintf("query atom %d not in %s", p.Key, query.ID))
		}
		if !target.HasAtom(p.Value) {
			return errors.MappingIntegrity(fmt.Sprintf("target atom %d not in %s", p.Value, target.ID))
		}
		if _, dup := seen[p.Value]; dup {
			return errors.MappingIntegrity(fmt.Sprintf("target atom %d mapped twice", p.Value))
		}
		seen[p.Value] = struct{}{}
	}
	return nil
}

// ConservedBonds returns the query bonds whose endpoints are both mapped and
// whose images are bonded in target, as (query bond, target bond) pairs in
// query bond order.
func (m *Mapping) ConservedBonds(query, target *molecule.Molecule) [][2]int {
	var out [][2]int
	for i, b := range query.Bonds() {
		ta, okA := m.Get(b.Begin)
		tb, okB := m.Get(b.End)
		if !okA || !okB {
			continue
		}
		if j := target.BondIndex(ta, tb); j >= 0 {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

func (m *Mapping) String() string {
	return fmt.Sprint(m.Pairs())
}

//Personal.AI order the ending
