package molecule

import (
	"fmt"
	"strings"
)

// BondOrder is the formal order of a bond.
type BondOrder uint8

const (
	OrderUnset BondOrder = iota
	OrderSingle
	OrderDouble
	OrderTriple
	OrderQuadruple
	OrderAromatic
)

var bondOrderNames = [...]string{"unset", "single", "double", "triple", "quadruple", "aromatic"}

func (o BondOrder) String() string {
	if int(o) < len(bondOrderNames) {
		return bondOrderNames[o]
	}
	return fmt.Sprintf("BondOrder(%d)", uint8(o))
}

// Symbol returns the SMILES-style bond symbol used in change fingerprints.
func (o BondOrder) Symbol() string {
	switch o {
	case OrderDouble:
		return "="
	case OrderTriple:
		return "#"
	case OrderQuadruple:
		return "$"
	case OrderAromatic:
		return ":"
	default:
		return "-"
	}
}

// ParseBondOrder accepts names ("double"), numerals ("2", "1.5") and SMILES
// symbols ("=").
func ParseBondOrder(s string) (BondOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "single", "-":
		return OrderSingle, nil
	case "2", "double", "=":
		return OrderDouble, nil
	case "3", "triple", "#":
		return OrderTriple, nil
	case "4", "quadruple", "$":
		return OrderQuadruple, nil
	case "1.5", "aromatic", ":":
		return OrderAromatic, nil
	}
	return OrderUnset, fmt.Errorf("unknown bond order %q", s)
}

// BondStereo classifies a bond's stereo: wedge/hash for tetrahedral centres,
// E/Z for double bonds.
type BondStereo uint8

const (
	BondStereoNone BondStereo = iota
	BondStereoUp
	BondStereoDown
	BondStereoE
	BondStereoZ
	BondStereoEither
)

var bondStereoNames = [...]string{"", "up", "down", "E", "Z", "either"}

func (s BondStereo) String() string {
	if int(s) < len(bondStereoNames) {
		return bondStereoNames[s]
	}
	return fmt.Sprintf("BondStereo(%d)", uint8(s))
}

// ParseBondStereo converts a descriptor name into a BondStereo.
func ParseBondStereo(s string) (BondStereo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return BondStereoNone, nil
	case "up", "wedge":
		return BondStereoUp, nil
	case "down", "hash":
		return BondStereoDown, nil
	case "e":
		return BondStereoE, nil
	case "z":
		return BondStereoZ, nil
	case "either", "any":
		return BondStereoEither, nil
	}
	return BondStereoNone, fmt.Errorf("unknown bond stereo descriptor %q", s)
}

// Bond is an edge of a molecular graph.  Endpoints are atom indices in the
// owning Molecule and carry no ordering requirement.
type Bond struct {
	Begin    int
	End      int
	Order    BondOrder
	Aromatic bool
	InRing   bool
	Stereo   BondStereo
	Tag      Tag
}

// IsAromatic reports whether the bond is aromatic by flag or by order.
func (b *Bond) IsAromatic() bool {
	return b.Aromatic || b.Order == OrderAromatic
}

// Contains reports whether atom is one of the bond's endpoints.
func (b *Bond) Contains(atom int) bool {
	return b.Begin == atom || b.End == atom
}

// Other returns the endpoint opposite atom, or -1 when atom is not an endpoint.
func (b *Bond) Other(atom int) int {
	switch atom {
	case b.Begin:
		return b.End
	case b.End:
		return b.Begin
	}
	return -1
}

// SameOrder reports whether two bonds have the same order, treating two
// aromatic bonds as equal whatever their formal order.
func SameOrder(a, b *Bond) bool {
	if a.IsAromatic() && b.IsAromatic() {
		return true
	}
	return a.Order == b.Order
}

// EnergyOrder is the order used to look up bond energies; aromatic bonds
// are reported as aromatic even when stored as Kekulé single/double.
func (b *Bond) EnergyOrder() BondOrder {
	if b.IsAromatic() {
		return OrderAromatic
	}
	return b.Order
}

//Personal.AI order the ending
