package mcs

import (
	"sort"

	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
)

// RankingOptions enables the chemical tie-break filters.
type RankingOptions struct {
	Energy    bool `mapstructure:"energy" yaml:"energy" json:"energy"`
	Fragments bool `mapstructure:"fragments" yaml:"fragments" json:"fragments"`
	Stereo    bool `mapstructure:"stereo" yaml:"stereo" json:"stereo"`
}

// DefaultRankingOptions enables every filter.
func DefaultRankingOptions() RankingOptions {
	return RankingOptions{Energy: true, Fragments: true, Stereo: true}
}

// Any reports whether at least one filter is enabled.
func (o RankingOptions) Any() bool { return o.Energy || o.Fragments || o.Stereo }

// Ranker scores equally sized solutions and orders them by chemical
// plausibility.  Filters apply as sort keys in the order energy, fragment
// count, stereo score.
type Ranker struct {
	opts   RankingOptions
	stereo molecule.StereoProvider
	logger logging.Logger
}

// NewRanker returns a ranker.  A nil stereo provider reads the atom and bond
// attributes.
func NewRanker(opts RankingOptions, stereo molecule.StereoProvider, logger logging.Logger) *Ranker {
	if stereo == nil {
		stereo = molecule.AttributeStereo{}
	}
	return &Ranker{opts: opts, stereo: stereo, logger: logging.OrDefault(logger)}
}

// Options returns the enabled filters.
func (r *Ranker) Options() RankingOptions { return r.opts }

// Score fills the chemical scores of s for the query and target it maps.
func (r *Ranker) Score(s *Solution, query, target *molecule.Molecule) {
	conserved := s.Mapping.ConservedBonds(query, target)
	keptQ := make(map[int]bool, len(conserved))
	keptT := make(map[int]bool, len(conserved))
	for _, c := range conserved {
		keptQ[c[0]] = true
		keptT[c[1]] = true
	}
	brokenQ := brokenBonds(query, keptQ)
	brokenT := brokenBonds(target, keptT)

	s.BondEnergy = r.energy(query, brokenQ) + r.energy(target, brokenT)
	s.FragmentCount = query.WithoutBonds(brokenQ...).FragmentCount() +
		target.WithoutBonds(brokenT...).FragmentCount()

	s.StereoScore = 0
	s.StereoMismatch = false
	for _, c := range conserved {
		qs := r.bondStereo(query, c[0])
		ts := r.bondStereo(target, c[1])
		if qs == ts {
			s.StereoScore++
		} else {
			s.StereoMismatch = true
		}
	}
	s.scored = true
}

// Rank stably orders solutions by the enabled filters.  Unscored solutions
// must be scored first.  Applying Rank to its own output changes nothing.
func (r *Ranker) Rank(solutions []*Solution) {
	if !r.opts.Any() || len(solutions) < 2 {
		return
	}
	sort.SliceStable(solutions, func(i, j int) bool {
		a, b := solutions[i], solutions[j]
		if r.opts.Energy && a.BondEnergy != b.BondEnergy {
			return a.BondEnergy < b.BondEnergy
		}
		if r.opts.Fragments && a.FragmentCount != b.FragmentCount {
			return a.FragmentCount < b.FragmentCount
		}
		if r.opts.Stereo && a.StereoScore != b.StereoScore {
			return a.StereoScore > b.StereoScore
		}
		return false
	})
}

func brokenBonds(m *molecule.Molecule, kept map[int]bool) []int {
	var out []int
	for i := 0; i < m.BondCount(); i++ {
		if !kept[i] {
			out = append(out, i)
		}
	}
	return out
}

func (r *Ranker) energy(m *molecule.Molecule, bonds []int) float64 {
	total := 0.0
	for _, i := range bonds {
		e, ok := m.BondEnergy(i)
		if !ok {
			r.logger.Debug("no tabulated energy for bond",
				logging.String("molecule", m.ID), logging.Int("bond", i))
			continue
		}
		total += e
	}
	return total
}

// bondStereo asks the provider for a bond descriptor; provider failures
// count as no descriptor.
func (r *Ranker) bondStereo(m *molecule.Molecule, i int) molecule.BondStereo {
	st, err := r.stereo.BondStereo(m, i)
	if err != nil {
		r.logger.Warn("stereo lookup failed, ignoring descriptor",
			logging.String("molecule", m.ID), logging.Int("bond", i), logging.Err(err))
		return molecule.BondStereoNone
	}
	return st
}

//Personal.AI order the ending
