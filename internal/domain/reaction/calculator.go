package reaction

import (
	"fmt"
	"math"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// MaxCenterRadius is the largest neighbourhood radius fingerprinted around
// reaction-centre atoms.
const MaxCenterRadius = 2

// Calculator derives the bond changes of a mapped reaction.  It only writes
// Tag values on the reaction's atoms and bonds.
type Calculator struct {
	stereo molecule.StereoProvider
	logger logging.Logger
}

// NewCalculator returns a Calculator.  A nil stereo provider reads the atom
// and bond attributes.
func NewCalculator(stereo molecule.StereoProvider, logger logging.Logger) *Calculator {
	if stereo == nil {
		stereo = molecule.AttributeStereo{}
	}
	return &Calculator{stereo: stereo, logger: logging.OrDefault(logger).Named("reaction")}
}

// Calculate classifies every bond change of rxn.  A missing mapping, a
// mapping that names atoms outside the reaction, or a change on an unmapped
// atom is a mapping integrity error.
func (c *Calculator) Calculate(rxn *Reaction) (*ChangeSet, error) {
	if rxn == nil || rxn.Reactant == nil || rxn.Product == nil {
		return nil, errors.New(errors.ErrCodeReactionInvalid, "reaction needs a reactant and a product graph")
	}
	if rxn.Mapping == nil {
		return nil, errors.New(errors.ErrCodeReactionUnmapped, "reaction has no atom mapping").
			WithDetail("reaction=" + rxn.ID)
	}
	if err := rxn.Mapping.Validate(rxn.Reactant, rxn.Product); err != nil {
		return nil, err
	}

	log := c.logger.With(logging.String("reaction", rxn.ID))
	r, p, m := rxn.Reactant, rxn.Product, rxn.Mapping
	r.ClearTags()
	p.ClearTags()
	cs := newChangeSet()

	// Reactant bonds: cleaved or reordered.
	for i, b := range r.Bonds() {
		pa, okA := m.Get(b.Begin)
		pb, okB := m.Get(b.End)
		if !okA || !okB {
			log.Debug("skipping reactant bond on unmapped atom", logging.Int("bond", i))
			continue
		}
		j := p.BondIndex(pa, pb)
		switch {
		case j < 0:
			e := c.energy(r, i, log)
			cs.ReactantEnergy += e
			cs.SmallestFragmentSize += r.SmallestFragmentAfterCut(i)
			b.Tag |= molecule.TagCleaved
			cs.Cleaved = append(cs.Cleaved, BondChange{
				Kind:         KindCleaved,
				ReactantBond: i,
				ProductBond:  -1,
				Atoms:        [2]int{b.Begin, b.End},
				Energy:       e,
				Fingerprint:  bondPattern(r, i),
			})
			cs.markReactive(r, p, b.Begin, pa, b.End, pb)
		case !molecule.SameOrder(b, p.Bond(j)):
			b.Tag |= molecule.TagOrderChanged
			p.Bond(j).Tag |= molecule.TagOrderChanged
			cs.OrderChanged[i] = j
			cs.orders = append(cs.orders, BondChange{
				Kind:         KindOrderChanged,
				ReactantBond: i,
				ProductBond:  j,
				Atoms:        [2]int{b.Begin, b.End},
				Fingerprint:  bondPattern(r, i) + "*" + bondPattern(p, j),
			})
			cs.markReactive(r, p, b.Begin, pa, b.End, pb)
		}
	}

	// Product bonds without a reactant counterpart were formed.
	for j, b := range p.Bonds() {
		ra, okA := m.Reverse(b.Begin)
		rb, okB := m.Reverse(b.End)
		if !okA || !okB {
			log.Debug("skipping product bond on unmapped atom", logging.Int("bond", j))
			continue
		}
		if r.BondIndex(ra, rb) >= 0 {
			continue
		}
		e := c.energy(p, j, log)
		cs.ProductEnergy += e
		cs.SmallestFragmentSize += p.SmallestFragmentAfterCut(j)
		b.Tag |= molecule.TagFormed
		cs.Formed = append(cs.Formed, BondChange{
			Kind:         KindFormed,
			ReactantBond: -1,
			ProductBond:  j,
			Atoms:        [2]int{ra, rb},
			Energy:       e,
			Fingerprint:  bondPattern(p, j),
		})
		cs.markReactive(r, p, ra, b.Begin, rb, b.End)
	}

	c.stereoChanges(rxn, cs, log)

	for _, ch := range cs.Changes() {
		cs.Fingerprints[ch.Fingerprint]++
	}
	cs.EnergySum = cs.ReactantEnergy + cs.ProductEnergy
	cs.EnergyDelta = math.Abs(cs.ReactantEnergy - cs.ProductEnergy)
	cs.StereoChanged = stereoAtoms(cs.stereo)

	c.reactionCenter(rxn, cs)

	if err := checkTraceable(cs, m); err != nil {
		log.Error("bond change set references an unmapped atom", logging.Err(err))
		return nil, err
	}

	log.Debug("bond changes classified",
		logging.Int("cleaved", len(cs.Cleaved)),
		logging.Int("formed", len(cs.Formed)),
		logging.Int("order_changed", len(cs.orders)),
		logging.Int("stereo_changed", len(cs.StereoChanged)),
		logging.Int("reaction_center", len(cs.ReactionCenter)),
		logging.Float64("energy_delta", cs.EnergyDelta),
	)
	return cs, nil
}

func (c *Calculator) energy(m *molecule.Molecule, bond int, log logging.Logger) float64 {
	e, ok := m.BondEnergy(bond)
	if !ok {
		b := m.Bond(bond)
		log.Warn("no tabulated bond energy, counting zero",
			logging.String("code", errors.ErrCodeBondEnergyUnknown.String()),
			logging.String("bond", bondPattern(m, bond)),
			logging.Int("begin", b.Begin), logging.Int("end", b.End))
		return 0
	}
	return e
}

// markReactive flags both endpoints of a change on both sides.
func (cs *ChangeSet) markReactive(r, p *molecule.Molecule, ra, pa, rb, pb int) {
	for _, pair := range [][2]int{{ra, pa}, {rb, pb}} {
		r.Atom(pair[0]).Tag |= molecule.TagReactive
		p.Atom(pair[1]).Tag |= molecule.TagReactive
		cs.reactiveReactant[pair[0]] = true
		cs.reactiveProduct[pair[1]] = true
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Stereo
// ─────────────────────────────────────────────────────────────────────────────

// stereoChanges records mapped atoms whose own descriptor differs between
// the sides, and the endpoints of conserved bonds whose E/Z descriptor
// differs.
func (c *Calculator) stereoChanges(rxn *Reaction, cs *ChangeSet, log logging.Logger) {
	r, p, m := rxn.Reactant, rxn.Product, rxn.Mapping
	for _, pair := range m.Pairs() {
		ra, pa := pair[0], pair[1]
		rs := c.atomStereo(r, ra, log)
		ps := c.atomStereo(p, pa, log)
		if rs == ps {
			continue
		}
		r.Atom(ra).Tag |= molecule.TagStereoChanged | molecule.TagReactive
		p.Atom(pa).Tag |= molecule.TagStereoChanged | molecule.TagReactive
		cs.reactiveReactant[ra] = true
		cs.reactiveProduct[pa] = true
		cs.stereo = append(cs.stereo, BondChange{
			Kind:         KindStereoChanged,
			ReactantBond: -1,
			ProductBond:  -1,
			Atoms:        [2]int{ra, ra},
			Fingerprint:  fmt.Sprintf("%s(%s*%s)", r.Atom(ra).Symbol, rs, ps),
		})
	}

	for _, pair := range m.ConservedBonds(r, p) {
		i, j := pair[0], pair[1]
		rs := c.bondStereo(r, i, log)
		ps := c.bondStereo(p, j, log)
		if rs == ps {
			continue
		}
		rb, pb := r.Bond(i), p.Bond(j)
		rb.Tag |= molecule.TagStereoChanged
		pb.Tag |= molecule.TagStereoChanged
		for _, ra := range []int{rb.Begin, rb.End} {
			pa, _ := m.Get(ra)
			r.Atom(ra).Tag |= molecule.TagStereoChanged | molecule.TagReactive
			p.Atom(pa).Tag |= molecule.TagStereoChanged | molecule.TagReactive
			cs.reactiveReactant[ra] = true
			cs.reactiveProduct[pa] = true
		}
		cs.stereo = append(cs.stereo, BondChange{
			Kind:         KindStereoChanged,
			ReactantBond: i,
			ProductBond:  j,
			Atoms:        [2]int{rb.Begin, rb.End},
			Fingerprint:  fmt.Sprintf("%s(%s*%s)", bondPattern(r, i), rs, ps),
		})
	}
}

func stereoAtoms(changes []BondChange) []int {
	set := make(map[int]bool)
	for _, ch := range changes {
		set[ch.Atoms[0]] = true
		set[ch.Atoms[1]] = true
	}
	return sortedKeys(set)
}

func (c *Calculator) atomStereo(m *molecule.Molecule, i int, log logging.Logger) molecule.AtomStereo {
	s, err := c.stereo.AtomStereo(m, i)
	if err != nil {
		log.Warn("atom stereo unavailable, treating as none",
			logging.String("molecule", m.ID), logging.Int("atom", i), logging.Err(err))
		return molecule.StereoNone
	}
	return s
}

func (c *Calculator) bondStereo(m *molecule.Molecule, i int, log logging.Logger) molecule.BondStereo {
	s, err := c.stereo.BondStereo(m, i)
	if err != nil {
		log.Warn("bond stereo unavailable, treating as none",
			logging.String("molecule", m.ID), logging.Int("bond", i), logging.Err(err))
		return molecule.BondStereoNone
	}
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// Reaction centre
// ─────────────────────────────────────────────────────────────────────────────

// reactionCenter collects the mapped reactant atoms touched by a change and
// fingerprints their neighbourhoods on both sides.  Every change flags its
// atoms on both sides at once, so the reactant set alone decides membership.
func (c *Calculator) reactionCenter(rxn *Reaction, cs *ChangeSet) {
	r, p, m := rxn.Reactant, rxn.Product, rxn.Mapping
	seen := make(map[string]bool)
	for _, ra := range sortedKeys(cs.reactiveReactant) {
		pa, ok := m.Get(ra)
		if !ok {
			continue
		}
		cs.ReactionCenter = append(cs.ReactionCenter, ra)
		for radius := 0; radius <= MaxCenterRadius; radius++ {
			rsig := r.Signature(ra, radius)
			psig := p.Signature(pa, radius)
			cs.CenterFingerprints[rsig]++
			cs.CenterFingerprints[psig]++
			if t := rsig + ">>" + psig; !seen[t] {
				seen[t] = true
				cs.Transformations = append(cs.Transformations, t)
			}
		}
	}
}

// checkTraceable verifies that every reported atom is mapped.
func checkTraceable(cs *ChangeSet, m *mcs.Mapping) error {
	for _, ch := range cs.Changes() {
		for _, a := range ch.Atoms {
			if _, ok := m.Get(a); !ok {
				return errors.MappingIntegrity(fmt.Sprintf("%s change on unmapped reactant atom %d", ch.Kind, a))
			}
		}
	}
	for _, a := range cs.ReactionCenter {
		if _, ok := m.Get(a); !ok {
			return errors.MappingIntegrity(fmt.Sprintf("reaction centre atom %d is unmapped", a))
		}
	}
	return nil
}

//Personal.AI order the ending
