package molecule

import (
	"sort"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Canonical neighbourhood patterns
// ─────────────────────────────────────────────────────────────────────────────

// BondSymbol returns the symbol of a bond in patterns: ":" for aromatic
// bonds, the order symbol otherwise.
func BondSymbol(b *Bond) string {
	if b.IsAromatic() {
		return ":"
	}
	return b.Order.Symbol()
}

// Signature returns a canonical text pattern of the neighbourhood of atom
// up to radius bonds away.  Branches are sorted so that equivalent
// neighbourhoods produce equal strings regardless of atom numbering.
//
//	radius 0: "C"
//	radius 1: "C(-O)(=O)"
func (m *Molecule) Signature(atom, radius int) string {
	return m.signature(atom, -1, radius)
}

func (m *Molecule) signature(atom, parent, depth int) string {
	label := m.atoms[atom].PatternLabel()
	if depth <= 0 {
		return label
	}
	branches := make([]string, 0, len(m.incident[atom]))
	for _, bi := range m.incident[atom] {
		b := m.bonds[bi]
		nb := b.Other(atom)
		if nb == parent {
			continue
		}
		branches = append(branches, BondSymbol(b)+m.signature(nb, atom, depth-1))
	}
	if len(branches) == 0 {
		return label
	}
	sort.Strings(branches)
	var sb strings.Builder
	sb.WriteString(label)
	for _, br := range branches {
		sb.WriteByte('(')
		sb.WriteString(br)
		sb.WriteByte(')')
	}
	return sb.String()
}

// ─────────────────────────────────────────────────────────────────────────────
// Hashed neighbourhood fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// DefaultFingerprintLength is the bit length used when none is given.
const DefaultFingerprintLength uint = 1024

// Fingerprint is a hashed bit vector of neighbourhood patterns up to Radius.
// It is used to pre-screen molecule pairs before the exact search.
type Fingerprint struct {
	Bits   *bitset.BitSet
	Length uint
	Radius int
}

// NewFingerprint folds the signatures of every atom at radius 0..radius into
// a bit vector of the given length.
func NewFingerprint(m *Molecule, radius int, length uint) *Fingerprint {
	if length == 0 {
		length = DefaultFingerprintLength
	}
	bits := bitset.New(length)
	for i := range m.atoms {
		for r := 0; r <= radius; r++ {
			bits.Set(uint(xxhash.Sum64String(m.Signature(i, r)) % uint64(length)))
		}
	}
	return &Fingerprint{Bits: bits, Length: length, Radius: radius}
}

// OnBits returns the number of set bits.
func (f *Fingerprint) OnBits() uint { return f.Bits.Count() }

func (f *Fingerprint) compatible(o *Fingerprint) error {
	if f.Length != o.Length || f.Radius != o.Radius {
		return errors.New(errors.ErrCodeValidation, "fingerprints must have the same length and radius")
	}
	return nil
}

// Tanimoto returns |A∩B| / |A∪B|; two empty fingerprints score 0.
func (f *Fingerprint) Tanimoto(o *Fingerprint) (float64, error) {
	if err := f.compatible(o); err != nil {
		return 0, err
	}
	union := f.Bits.UnionCardinality(o.Bits)
	if union == 0 {
		return 0, nil
	}
	return float64(f.Bits.IntersectionCardinality(o.Bits)) / float64(union), nil
}

// MayContain reports whether every bit of sub is also set in f.  A false
// result proves sub cannot be a substructure of f's molecule; true proves
// nothing.
func (f *Fingerprint) MayContain(sub *Fingerprint) (bool, error) {
	if err := f.compatible(sub); err != nil {
		return false, err
	}
	return f.Bits.IsSuperSet(sub.Bits), nil
}

//Personal.AI order the ending
