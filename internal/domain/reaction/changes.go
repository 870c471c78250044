package reaction

import (
	"sort"
)

// ChangeKind classifies a bond or atom change.
type ChangeKind string

const (
	KindCleaved       ChangeKind = "cleaved"
	KindFormed        ChangeKind = "formed"
	KindOrderChanged  ChangeKind = "order_changed"
	KindStereoChanged ChangeKind = "stereo_changed"
)

func (k ChangeKind) String() string { return string(k) }

// BondChange is one classified change.  Atoms are reactant-side indices;
// bond indices are -1 on the side where the bond does not exist.  Stereo
// changes on an atom carry the atom twice and no bonds.
type BondChange struct {
	Kind         ChangeKind
	ReactantBond int
	ProductBond  int
	Atoms        [2]int
	Energy       float64
	Fingerprint  string
}

// ChangeSet is the read-only result of a bond-change calculation.
type ChangeSet struct {
	Cleaved []BondChange
	Formed  []BondChange
	// OrderChanged maps reactant bond to product bond.
	OrderChanged map[int]int
	orders       []BondChange
	stereo       []BondChange

	// StereoChanged and ReactionCenter hold sorted reactant atom indices.
	StereoChanged  []int
	ReactionCenter []int

	// ReactantEnergy and ProductEnergy sum the tabulated energies of the
	// bonds broken on each side: cleaved bonds in the reactants, formed
	// bonds in the products.
	ReactantEnergy float64
	ProductEnergy  float64
	EnergySum      float64
	EnergyDelta    float64

	// SmallestFragmentSize accumulates, over every broken bond, the size of
	// the smaller fragment left after cutting it from its molecule.
	SmallestFragmentSize int

	// Fingerprints counts bond-change patterns such as "C-O", "C-O*C=O" and
	// "C(R*S)".
	Fingerprints map[string]int
	// CenterFingerprints counts neighbourhood patterns of reaction-centre
	// atoms on both sides, radius 0 to 2.
	CenterFingerprints map[string]int
	// Transformations pairs the reactant and product patterns of each
	// reaction-centre atom as "reactant>>product".
	Transformations []string

	reactiveReactant map[int]bool
	reactiveProduct  map[int]bool
}

func newChangeSet() *ChangeSet {
	return &ChangeSet{
		OrderChanged:       make(map[int]int),
		Fingerprints:       make(map[string]int),
		CenterFingerprints: make(map[string]int),
		reactiveReactant:   make(map[int]bool),
		reactiveProduct:    make(map[int]bool),
	}
}

// OrderChanges returns the order changes in reactant bond order.
func (c *ChangeSet) OrderChanges() []BondChange { return c.orders }

// StereoChanges returns the stereo changes in reactant atom order.
func (c *ChangeSet) StereoChanges() []BondChange { return c.stereo }

// Changes returns every change: cleaved, formed, order, then stereo.
func (c *ChangeSet) Changes() []BondChange {
	out := make([]BondChange, 0, len(c.Cleaved)+len(c.Formed)+len(c.orders)+len(c.stereo))
	out = append(out, c.Cleaved...)
	out = append(out, c.Formed...)
	out = append(out, c.orders...)
	return append(out, c.stereo...)
}

// IsEmpty reports whether no change of any kind was found.
func (c *ChangeSet) IsEmpty() bool {
	return len(c.Cleaved) == 0 && len(c.Formed) == 0 && len(c.orders) == 0 && len(c.stereo) == 0
}

// Count returns the number of changes of kind.
func (c *ChangeSet) Count(kind ChangeKind) int {
	switch kind {
	case KindCleaved:
		return len(c.Cleaved)
	case KindFormed:
		return len(c.Formed)
	case KindOrderChanged:
		return len(c.orders)
	case KindStereoChanged:
		return len(c.stereo)
	}
	return 0
}

// FingerprintKeys returns the bond-change patterns in sorted order.
func (c *ChangeSet) FingerprintKeys() []string {
	keys := make([]string, 0, len(c.Fingerprints))
	for k := range c.Fingerprints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

//Personal.AI order the ending
