package comparison

import (
	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/domain/reaction"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// mergeOptions overlays the request options on the configured defaults.
func mergeOptions(base mcs.Options, o mtypes.MatchOptionsDTO) (mcs.Options, error) {
	if o.Algorithm != "" {
		alg, err := mcs.ParseAlgorithm(o.Algorithm)
		if err != nil {
			return base, err
		}
		base.Algorithm = alg
	}
	if o.MatchBondOrder != nil {
		base.Flags.MatchBondOrder = *o.MatchBondOrder
	}
	if o.MatchRings != nil {
		base.Flags.MatchRings = *o.MatchRings
	}
	if o.MatchAtomType != nil {
		base.Flags.MatchAtomType = *o.MatchAtomType
	}
	if o.IterationCap > 0 {
		base.IterationCap = o.IterationCap
	}
	if o.RankEnergy != nil {
		base.Ranking.Energy = *o.RankEnergy
	}
	if o.RankFragments != nil {
		base.Ranking.Fragments = *o.RankFragments
	}
	if o.RankStereo != nil {
		base.Ranking.Stereo = *o.RankStereo
	}
	// Matchers are rebuilt from the merged flags.
	base.AtomMatcher = nil
	base.BondMatcher = nil
	return base, nil
}

func isZero(o mtypes.MatchOptionsDTO) bool {
	return o.Algorithm == "" && o.MatchBondOrder == nil && o.MatchRings == nil &&
		o.MatchAtomType == nil && o.IterationCap == 0 && o.RankEnergy == nil &&
		o.RankFragments == nil && o.RankStereo == nil
}

func pairsToDTO(pairs [][2]int) []mtypes.MappingPairDTO {
	out := make([]mtypes.MappingPairDTO, len(pairs))
	for i, p := range pairs {
		out[i] = mtypes.MappingPairDTO{Query: p[0], Target: p[1]}
	}
	return out
}

func mappingFromDTO(pairs []mtypes.MappingPairDTO) (*mcs.Mapping, error) {
	m := mcs.NewMapping()
	for _, p := range pairs {
		if err := m.Put(p.Query, p.Target); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func compareResponse(res *mcs.Result) *mtypes.CompareResponse {
	out := &mtypes.CompareResponse{
		ID:                res.ID,
		QueryID:           res.Query.ID,
		TargetID:          res.Target.ID,
		QueryHeavyAtoms:   res.Query.HeavyAtomCount(),
		TargetHeavyAtoms:  res.Target.HeavyAtomCount(),
		Strategy:          res.Strategy().String(),
		MappedAtoms:       res.MappedAtoms(),
		IsSubgraph:        res.IsSubgraph(),
		Tanimoto:          res.TanimotoSimilarity(),
		EuclideanDistance: res.EuclideanDistance(),
		StereoMismatch:    res.IsStereoMisMatch(),
		Truncated:         res.Truncated(),
		FallbackUsed:      res.FallbackUsed(),
		DurationMillis:    float64(res.Duration.Microseconds()) / 1000,
	}
	for _, s := range res.Solutions() {
		out.Solutions = append(out.Solutions, mtypes.SolutionDTO{
			Mapping:        pairsToDTO(s.Mapping.Pairs()),
			BondEnergy:     s.BondEnergy,
			FragmentCount:  s.FragmentCount,
			StereoScore:    s.StereoScore,
			StereoMismatch: s.StereoMismatch,
		})
	}
	return out
}

func reactionFromDTO(dto *mtypes.ReactionDTO) (*reaction.Reaction, error) {
	if dto == nil {
		return nil, errors.InvalidParam("reaction is required")
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	reactants, err := moleculesFromDTO(dto.Reactants)
	if err != nil {
		return nil, err
	}
	products, err := moleculesFromDTO(dto.Products)
	if err != nil {
		return nil, err
	}
	var mapping *mcs.Mapping
	if len(dto.Mapping) > 0 {
		if mapping, err = mappingFromDTO(dto.Mapping); err != nil {
			return nil, err
		}
	}
	return reaction.NewReaction(dto.ID, reactants, products, mapping)
}

func moleculesFromDTO(dtos []mtypes.MoleculeDTO) ([]*molecule.Molecule, error) {
	out := make([]*molecule.Molecule, 0, len(dtos))
	for i := range dtos {
		m, err := molecule.FromDTO(&dtos[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func analysisResponse(id string, rxn *reaction.Reaction, cs *reaction.ChangeSet, derived bool) *mtypes.ReactionAnalysisResponse {
	out := &mtypes.ReactionAnalysisResponse{
		ID:                   id,
		ReactionID:           rxn.ID,
		Mapping:              pairsToDTO(rxn.Mapping.Pairs()),
		MappingDerived:       derived,
		Changes:              []mtypes.BondChangeDTO{},
		StereoChangedAtoms:   cs.StereoChanged,
		ReactionCenter:       cs.ReactionCenter,
		EnergySum:            cs.EnergySum,
		EnergyDelta:          cs.EnergyDelta,
		SmallestFragmentSize: cs.SmallestFragmentSize,
		Fingerprints:         cs.Fingerprints,
		Transformations:      cs.Transformations,
	}
	for _, c := range cs.Changes() {
		out.Changes = append(out.Changes, mtypes.BondChangeDTO{
			Kind:         c.Kind.String(),
			ReactantBond: c.ReactantBond,
			ProductBond:  c.ProductBond,
			Atoms:        c.Atoms,
			Fingerprint:  c.Fingerprint,
		})
	}
	return out
}

func hydrogenView(rxn, view *reaction.Reaction) *mtypes.HydrogenViewDTO {
	return &mtypes.HydrogenViewDTO{
		Reactant:         molecule.ToDTO(view.Reactant),
		Product:          molecule.ToDTO(view.Product),
		Mapping:          pairsToDTO(view.Mapping.Pairs()),
		RemovedHydrogens: rxn.Reactant.AtomCount() - view.Reactant.AtomCount(),
	}
}

//Personal.AI order the ending
