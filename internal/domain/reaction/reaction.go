// Package reaction classifies how bonds change across a mapped chemical
// reaction: bonds cleaved, formed, reordered or stereo-inverted, with the
// derived energy and fragment metrics, reaction-centre atoms and change
// fingerprints.
package reaction

import (
	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// Reaction is a reactant graph and a product graph joined by an atom
// mapping from reactant atoms to product atoms.  Multi-molecule sides are
// merged into one disconnected graph per side.
type Reaction struct {
	ID       string
	Reactant *molecule.Molecule
	Product  *molecule.Molecule
	Mapping  *mcs.Mapping
}

// NewReaction merges each side and attaches mapping, which may be nil when
// the mapping is to be derived with MapReaction.
func NewReaction(id string, reactants, products []*molecule.Molecule, mapping *mcs.Mapping) (*Reaction, error) {
	if len(reactants) == 0 || len(products) == 0 {
		return nil, errors.New(errors.ErrCodeReactionInvalid, "reaction needs at least one reactant and one product").
			WithDetail("reaction=" + id)
	}
	r, _ := molecule.Merge(id+":reactants", reactants...)
	p, _ := molecule.Merge(id+":products", products...)
	r.PerceiveRings()
	p.PerceiveRings()
	return &Reaction{ID: id, Reactant: r, Product: p, Mapping: mapping}, nil
}

// MapReaction derives a reactant→product mapping with engine.  The mapping
// covers the maximum common substructure; atoms outside it stay unmapped.
func MapReaction(engine *mcs.Engine, rxn *Reaction) (*mcs.Result, error) {
	res, err := engine.Compare(rxn.Reactant, rxn.Product)
	if err != nil {
		return nil, err
	}
	if res.MappedAtoms() == 0 {
		return res, errors.New(errors.ErrCodeReactionUnmapped, "no atom of the reactants maps onto the products").
			WithDetail("reaction=" + rxn.ID)
	}
	rxn.Mapping = res.FirstMapping()
	return res, nil
}

//Personal.AI order the ending
