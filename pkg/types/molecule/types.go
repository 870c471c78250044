// Package molecule defines the data transfer objects exchanged with keyip-mcs
// through fixture files, the CLI and the HTTP API.  No domain logic lives
// here; the types are safe to import from any layer.
package molecule

import (
	"fmt"

	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Molecular graph
// ─────────────────────────────────────────────────────────────────────────────

// AtomDTO describes one atom.  Stereo is "R", "S", "E", "Z", "?" or empty.
type AtomDTO struct {
	Symbol     string `json:"symbol" yaml:"symbol"`
	Charge     int    `json:"charge,omitempty" yaml:"charge,omitempty"`
	Aromatic   bool   `json:"aromatic,omitempty" yaml:"aromatic,omitempty"`
	Stereo     string `json:"stereo,omitempty" yaml:"stereo,omitempty"`
	ImplicitH  int    `json:"implicit_h,omitempty" yaml:"implicit_h,omitempty"`
	MassNumber int    `json:"mass_number,omitempty" yaml:"mass_number,omitempty"`
	Label      string `json:"label,omitempty" yaml:"label,omitempty"`
}

// BondDTO describes one bond between two zero-based atom indices.  Order
// accepts names ("double"), numerals ("2") or symbols ("=").
type BondDTO struct {
	From     int    `json:"from" yaml:"from"`
	To       int    `json:"to" yaml:"to"`
	Order    string `json:"order,omitempty" yaml:"order,omitempty"`
	Aromatic bool   `json:"aromatic,omitempty" yaml:"aromatic,omitempty"`
	Stereo   string `json:"stereo,omitempty" yaml:"stereo,omitempty"`
}

// MoleculeDTO is a complete molecular graph.
type MoleculeDTO struct {
	ID    string    `json:"id" yaml:"id"`
	Name  string    `json:"name,omitempty" yaml:"name,omitempty"`
	Atoms []AtomDTO `json:"atoms" yaml:"atoms"`
	Bonds []BondDTO `json:"bonds,omitempty" yaml:"bonds,omitempty"`
}

// Validate performs structural checks that need no chemistry knowledge.
func (m *MoleculeDTO) Validate() error {
	for i, a := range m.Atoms {
		if a.Symbol == "" {
			return errors.New(errors.ErrCodeMoleculeInvalidFormat, "atom without element symbol").
				WithDetail(fmt.Sprintf("molecule=%s atom=%d", m.ID, i))
		}
	}
	for i, b := range m.Bonds {
		if b.From < 0 || b.From >= len(m.Atoms) || b.To < 0 || b.To >= len(m.Atoms) {
			return errors.New(errors.ErrCodeAtomIndexOutOfRange, "bond references a missing atom").
				WithDetail(fmt.Sprintf("molecule=%s bond=%d (%d-%d)", m.ID, i, b.From, b.To))
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Matching
// ─────────────────────────────────────────────────────────────────────────────

// MappingPairDTO is one query→target (or reactant→product) atom pair.
type MappingPairDTO struct {
	Query  int `json:"query" yaml:"query"`
	Target int `json:"target" yaml:"target"`
}

// MatchOptionsDTO carries matcher strictness, algorithm choice and ranking
// switches.  Nil pointers mean "use the configured default".
type MatchOptionsDTO struct {
	Algorithm      string `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	MatchBondOrder *bool  `json:"match_bond_order,omitempty" yaml:"match_bond_order,omitempty"`
	MatchRings     *bool  `json:"match_rings,omitempty" yaml:"match_rings,omitempty"`
	MatchAtomType  *bool  `json:"match_atom_type,omitempty" yaml:"match_atom_type,omitempty"`
	IterationCap   int    `json:"iteration_cap,omitempty" yaml:"iteration_cap,omitempty"`
	RankEnergy     *bool  `json:"rank_energy,omitempty" yaml:"rank_energy,omitempty"`
	RankFragments  *bool  `json:"rank_fragments,omitempty" yaml:"rank_fragments,omitempty"`
	RankStereo     *bool  `json:"rank_stereo,omitempty" yaml:"rank_stereo,omitempty"`
}

// CompareRequest asks for the common substructure of two molecules.
type CompareRequest struct {
	Query   MoleculeDTO     `json:"query" yaml:"query"`
	Target  MoleculeDTO     `json:"target" yaml:"target"`
	Options MatchOptionsDTO `json:"options,omitempty" yaml:"options,omitempty"`
}

// SolutionDTO is one ranked mapping with its chemical scores.
type SolutionDTO struct {
	Mapping        []MappingPairDTO `json:"mapping"`
	BondEnergy     float64          `json:"bond_energy"`
	FragmentCount  int              `json:"fragment_count"`
	StereoScore    int              `json:"stereo_score"`
	StereoMismatch bool             `json:"stereo_mismatch"`
}

// CompareResponse summarises the outcome of a comparison.
type CompareResponse struct {
	ID                string        `json:"id"`
	QueryID           string        `json:"query_id"`
	TargetID          string        `json:"target_id"`
	QueryHeavyAtoms   int           `json:"query_heavy_atoms"`
	TargetHeavyAtoms  int           `json:"target_heavy_atoms"`
	Strategy          string        `json:"strategy"`
	MappedAtoms       int           `json:"mapped_atoms"`
	IsSubgraph        bool          `json:"is_subgraph"`
	Tanimoto          float64       `json:"tanimoto"`
	EuclideanDistance float64       `json:"euclidean_distance"`
	StereoMismatch    bool          `json:"stereo_mismatch"`
	Truncated         bool          `json:"truncated"`
	FallbackUsed      bool          `json:"fallback_used"`
	DurationMillis    float64       `json:"duration_ms"`
	Solutions         []SolutionDTO `json:"solutions,omitempty"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Reactions
// ─────────────────────────────────────────────────────────────────────────────

// ReactionDTO is a reaction with optional atom mapping.  Mapping indices
// refer to the reactant and product sides after each side's molecules are
// concatenated in order.  An empty mapping asks the service to derive one.
type ReactionDTO struct {
	ID        string           `json:"id" yaml:"id"`
	Reactants []MoleculeDTO    `json:"reactants" yaml:"reactants"`
	Products  []MoleculeDTO    `json:"products" yaml:"products"`
	Mapping   []MappingPairDTO `json:"mapping,omitempty" yaml:"mapping,omitempty"`
	// Options steer the mapping search when Mapping is empty.
	Options MatchOptionsDTO `json:"options,omitempty" yaml:"options,omitempty"`
	// CompressHydrogens adds a view of the reaction with unchanged mapped
	// hydrogens folded into their heavy neighbours.
	CompressHydrogens bool `json:"compress_hydrogens,omitempty" yaml:"compress_hydrogens,omitempty"`
}

// Validate checks both sides.
func (r *ReactionDTO) Validate() error {
	if len(r.Reactants) == 0 || len(r.Products) == 0 {
		return errors.New(errors.ErrCodeReactionInvalid, "reaction needs at least one reactant and one product").
			WithDetail("reaction=" + r.ID)
	}
	for i := range r.Reactants {
		if err := r.Reactants[i].Validate(); err != nil {
			return err
		}
	}
	for i := range r.Products {
		if err := r.Products[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BondChangeDTO is one classified bond change.  Atoms are reactant-side
// indices.
type BondChangeDTO struct {
	Kind         string `json:"kind"`
	ReactantBond int    `json:"reactant_bond"`
	ProductBond  int    `json:"product_bond"`
	Atoms        [2]int `json:"atoms"`
	Fingerprint  string `json:"fingerprint"`
}

// ReactionAnalysisResponse is the bond-change report for a reaction.
type ReactionAnalysisResponse struct {
	ID                   string           `json:"id"`
	ReactionID           string           `json:"reaction_id"`
	Mapping              []MappingPairDTO `json:"mapping"`
	MappingDerived       bool             `json:"mapping_derived"`
	Changes              []BondChangeDTO  `json:"changes"`
	StereoChangedAtoms   []int            `json:"stereo_changed_atoms"`
	ReactionCenter       []int            `json:"reaction_center"`
	EnergySum            float64          `json:"energy_sum"`
	EnergyDelta          float64          `json:"energy_delta"`
	SmallestFragmentSize int              `json:"smallest_fragment_size"`
	Fingerprints         map[string]int   `json:"fingerprints"`
	Transformations      []string         `json:"transformations,omitempty"`
	HydrogenView         *HydrogenViewDTO `json:"hydrogen_view,omitempty"`
}

// HydrogenViewDTO is a reaction with every mapped hydrogen that takes part
// in no change folded into the implicit count of its heavy neighbour.
type HydrogenViewDTO struct {
	Reactant         MoleculeDTO      `json:"reactant"`
	Product          MoleculeDTO      `json:"product"`
	Mapping          []MappingPairDTO `json:"mapping"`
	RemovedHydrogens int              `json:"removed_hydrogens"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Batch
// ─────────────────────────────────────────────────────────────────────────────

// PairDTO names two molecules of a batch by ID.
type PairDTO struct {
	Query  string `json:"query" yaml:"query"`
	Target string `json:"target" yaml:"target"`
}

// BatchDTO is a set of molecules plus the pairs to compare.  An empty Pairs
// list means every molecule against every other.
type BatchDTO struct {
	Molecules []MoleculeDTO   `json:"molecules" yaml:"molecules"`
	Pairs     []PairDTO       `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Options   MatchOptionsDTO `json:"options,omitempty" yaml:"options,omitempty"`
	// MinFingerprintSimilarity skips pairs whose fingerprint Tanimoto falls
	// below it before running the exact search.
	MinFingerprintSimilarity float64 `json:"min_fingerprint_similarity,omitempty" yaml:"min_fingerprint_similarity,omitempty"`
}

// BatchResponse carries one entry per compared pair in request order.
type BatchResponse struct {
	Results []CompareResponse `json:"results"`
	Skipped []PairDTO         `json:"skipped,omitempty"`
}

//Personal.AI order the ending
