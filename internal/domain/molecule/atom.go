package molecule

import (
	"fmt"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// AtomStereo
// ─────────────────────────────────────────────────────────────────────────────

// AtomStereo classifies the 3D arrangement around an atom.  R/S apply to
// tetrahedral centres; E/Z are carried on the atoms of a stereogenic double
// bond when the perceiving toolkit reports them per atom.
type AtomStereo uint8

const (
	StereoNone AtomStereo = iota
	StereoR
	StereoS
	StereoE
	StereoZ
	// StereoUnknown marks a centre whose configuration the toolkit could not
	// determine.  Stereo providers turn it into a chemistry-model error.
	StereoUnknown
)

var atomStereoNames = [...]string{"", "R", "S", "E", "Z", "?"}

func (s AtomStereo) String() string {
	if int(s) < len(atomStereoNames) {
		return atomStereoNames[s]
	}
	return fmt.Sprintf("AtomStereo(%d)", uint8(s))
}

// ParseAtomStereo converts "R", "S", "E", "Z", "?" or "" into an AtomStereo.
func ParseAtomStereo(s string) (AtomStereo, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return StereoNone, nil
	case "R":
		return StereoR, nil
	case "S":
		return StereoS, nil
	case "E":
		return StereoE, nil
	case "Z":
		return StereoZ, nil
	case "?", "UNKNOWN":
		return StereoUnknown, nil
	}
	return StereoNone, fmt.Errorf("unknown atom stereo descriptor %q", s)
}

// ─────────────────────────────────────────────────────────────────────────────
// Tag
// ─────────────────────────────────────────────────────────────────────────────

// Tag is the mutable change-classification slot written back onto atoms and
// bonds by the bond-change calculator.  It never affects matching.
type Tag uint8

const (
	TagCleaved Tag = 1 << iota
	TagFormed
	TagOrderChanged
	TagStereoChanged
	TagReactive
)

// Has reports whether every bit of f is set on t.
func (t Tag) Has(f Tag) bool { return t&f == f }

// ─────────────────────────────────────────────────────────────────────────────
// Atom
// ─────────────────────────────────────────────────────────────────────────────

// Atom is a vertex of a molecular graph.  Only Tag may be changed once the
// atom belongs to a Molecule that is being compared.
type Atom struct {
	Symbol     string
	Charge     int
	Aromatic   bool
	InRing     bool
	RingSizes  []int
	Stereo     AtomStereo
	ImplicitH  int
	MassNumber int
	// Label is an optional caller-supplied identifier (e.g. a reaction map
	// number) carried through for reporting.
	Label string
	Tag   Tag
}

// IsHydrogen reports whether the atom is a hydrogen of any isotope.
func (a *Atom) IsHydrogen() bool {
	return a.Symbol == "H" || a.Symbol == "D" || a.Symbol == "T"
}

// SharesRingSize reports whether a and b have a ring size in common.
func (a *Atom) SharesRingSize(b *Atom) bool {
	for _, x := range a.RingSizes {
		for _, y := range b.RingSizes {
			if x == y {
				return true
			}
		}
	}
	return false
}

// PatternLabel renders the atom the way it appears in change fingerprints:
// lowercase for aromatic atoms, charge in brackets.
func (a *Atom) PatternLabel() string {
	sym := a.Symbol
	if a.Aromatic {
		sym = strings.ToLower(sym)
	}
	switch {
	case a.Charge == 0:
		return sym
	case a.Charge == 1:
		return "[" + sym + "+]"
	case a.Charge == -1:
		return "[" + sym + "-]"
	case a.Charge > 0:
		return fmt.Sprintf("[%s+%d]", sym, a.Charge)
	default:
		return fmt.Sprintf("[%s%d]", sym, a.Charge)
	}
}

func (a *Atom) clone() *Atom {
	c := *a
	if a.RingSizes != nil {
		c.RingSizes = append([]int(nil), a.RingSizes...)
	}
	return &c
}

//Personal.AI order the ending
