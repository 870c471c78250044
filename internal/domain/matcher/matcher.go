// Package matcher decides which atoms and bonds of two molecular graphs may
// correspond to each other.  The predicates are pure and cheap; they are
// evaluated once per atom pair and once per bond pair while the
// compatibility graph is built.
package matcher

import (
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
)

// Flags selects how strict the matchers are.
type Flags struct {
	// MatchBondOrder requires equal bond orders (aromatic matches aromatic).
	MatchBondOrder bool `mapstructure:"match_bond_order" yaml:"match_bond_order" json:"match_bond_order"`
	// MatchRings requires equal ring membership on atoms and bonds, and a
	// shared ring size on ring atoms.
	MatchRings bool `mapstructure:"match_rings" yaml:"match_rings" json:"match_rings"`
	// MatchAtomType additionally requires equal formal charge and aromaticity.
	MatchAtomType bool `mapstructure:"match_atom_type" yaml:"match_atom_type" json:"match_atom_type"`
}

// DefaultFlags matches bond orders only.
func DefaultFlags() Flags {
	return Flags{MatchBondOrder: true}
}

// AtomMatcher decides whether a query atom may map onto a target atom.
type AtomMatcher interface {
	Matches(q, t *molecule.Atom) bool
}

// BondMatcher decides whether a query bond may map onto a target bond.
type BondMatcher interface {
	Matches(q, t *molecule.Bond) bool
}

// ─────────────────────────────────────────────────────────────────────────────
// Default predicates
// ─────────────────────────────────────────────────────────────────────────────

type atomMatcher struct {
	flags Flags
}

func (m atomMatcher) Matches(q, t *molecule.Atom) bool {
	if q.Symbol != t.Symbol {
		return false
	}
	if m.flags.MatchAtomType && (q.Charge != t.Charge || q.Aromatic != t.Aromatic) {
		return false
	}
	if m.flags.MatchRings {
		if q.InRing != t.InRing {
			return false
		}
		if len(q.RingSizes) > 0 && len(t.RingSizes) > 0 && !q.SharesRingSize(t) {
			return false
		}
	}
	return true
}

type bondMatcher struct {
	flags Flags
}

func (m bondMatcher) Matches(q, t *molecule.Bond) bool {
	if m.flags.MatchRings && q.InRing != t.InRing {
		return false
	}
	if m.flags.MatchBondOrder && !molecule.SameOrder(q, t) {
		return false
	}
	return true
}

// NewAtomMatcher returns the element-based atom matcher for flags.
func NewAtomMatcher(flags Flags) AtomMatcher { return atomMatcher{flags: flags} }

// NewBondMatcher returns the order/ring bond matcher for flags.
func NewBondMatcher(flags Flags) BondMatcher { return bondMatcher{flags: flags} }

// New returns both predicates for flags.
func New(flags Flags) (AtomMatcher, BondMatcher) {
	return NewAtomMatcher(flags), NewBondMatcher(flags)
}

// ─────────────────────────────────────────────────────────────────────────────
// Function adapters
// ─────────────────────────────────────────────────────────────────────────────

// AtomFunc adapts a function to AtomMatcher.
type AtomFunc func(q, t *molecule.Atom) bool

// Matches implements AtomMatcher.
func (f AtomFunc) Matches(q, t *molecule.Atom) bool { return f(q, t) }

// BondFunc adapts a function to BondMatcher.
type BondFunc func(q, t *molecule.Bond) bool

// Matches implements BondMatcher.
func (f BondFunc) Matches(q, t *molecule.Bond) bool { return f(q, t) }

//Personal.AI order the ending
