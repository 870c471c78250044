// Package mcs finds maximum common substructures of two molecules and the
// atom-atom mappings that realise them.  Engine picks a strategy per pair,
// runs the searches in package clique or a VF-style state search, and ranks
// tied solutions with a Ranker.
package mcs

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/keyip-mcs/internal/domain/matcher"
	"github.com/turtacn/keyip-mcs/internal/domain/mcs/clique"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/keyip-mcs/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Algorithm
// ─────────────────────────────────────────────────────────────────────────────

// Algorithm selects the search run by Engine.Compare.
type Algorithm string

const (
	// AlgorithmDefault tries a substructure check, then the Koch search, then
	// Bron–Kerbosch when Koch was cut short with an incomplete answer.
	AlgorithmDefault Algorithm = "DEFAULT"
	// AlgorithmVFLike runs the VF-style maximum common substructure search.
	AlgorithmVFLike Algorithm = "VF_LIKE"
	// AlgorithmCliqueBased runs Bron–Kerbosch on the compatibility graph.
	AlgorithmCliqueBased Algorithm = "CLIQUE_BASED"
	// AlgorithmSubgraphOnly only checks whether the query embeds in the target.
	AlgorithmSubgraphOnly Algorithm = "SUBGRAPH_ONLY"
)

// IsValid checks if the algorithm is known.
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmDefault, AlgorithmVFLike, AlgorithmCliqueBased, AlgorithmSubgraphOnly:
		return true
	default:
		return false
	}
}

func (a Algorithm) String() string { return string(a) }

// ParseAlgorithm accepts algorithm names in any case, with '-' or '_'.  An
// empty name selects AlgorithmDefault.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AlgorithmDefault, nil
	}
	a := Algorithm(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	if !a.IsValid() {
		return "", errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm").WithDetail(s)
	}
	return a, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Options
// ─────────────────────────────────────────────────────────────────────────────

// DefaultMaxSolutions caps how many tied mappings a result keeps.
const DefaultMaxSolutions = 16

// Options configures an Engine.
type Options struct {
	Flags     matcher.Flags
	Algorithm Algorithm
	// IterationCap caps the clique and VF search budgets; zero or less uses
	// clique.DefaultIterationCap.
	IterationCap int
	// SubstructureStepLimit bounds the substructure check; zero or less uses
	// DefaultSubstructureStepLimit.
	SubstructureStepLimit int
	// MaxSolutions caps the tied mappings kept; zero or less uses
	// DefaultMaxSolutions.
	MaxSolutions int
	// CollectTies lets the Koch search explore branches that can only tie
	// the best clique, so that the ranker has alternatives to order.
	CollectTies bool
	Ranking     RankingOptions

	// AtomMatcher and BondMatcher override the predicates derived from Flags.
	AtomMatcher matcher.AtomMatcher
	BondMatcher matcher.BondMatcher
	// Stereo answers stereo queries; nil reads atom and bond attributes.
	Stereo molecule.StereoProvider
}

// DefaultOptions returns bond-order-sensitive matching with the default
// cascade and every ranking filter on.
func DefaultOptions() Options {
	return Options{
		Flags:                 matcher.DefaultFlags(),
		Algorithm:             AlgorithmDefault,
		IterationCap:          clique.DefaultIterationCap,
		SubstructureStepLimit: DefaultSubstructureStepLimit,
		MaxSolutions:          DefaultMaxSolutions,
		Ranking:               DefaultRankingOptions(),
	}
}

func (o *Options) applyDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = AlgorithmDefault
	}
	if o.IterationCap <= 0 {
		o.IterationCap = clique.DefaultIterationCap
	}
	if o.SubstructureStepLimit <= 0 {
		o.SubstructureStepLimit = DefaultSubstructureStepLimit
	}
	if o.MaxSolutions <= 0 {
		o.MaxSolutions = DefaultMaxSolutions
	}
	am, bm := matcher.New(o.Flags)
	if o.AtomMatcher == nil {
		o.AtomMatcher = am
	}
	if o.BondMatcher == nil {
		o.BondMatcher = bm
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine
// ─────────────────────────────────────────────────────────────────────────────

// Engine compares molecule pairs.  It holds no per-comparison state, so one
// Engine may serve concurrent callers.
type Engine struct {
	opts   Options
	ranker *Ranker
	logger logging.Logger
}

// NewEngine validates opts and returns an Engine.
func NewEngine(opts Options, logger logging.Logger) (*Engine, error) {
	if !opts.Algorithm.IsValid() && opts.Algorithm != "" {
		return nil, errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm").WithDetail(string(opts.Algorithm))
	}
	opts.applyDefaults()
	logger = logging.OrDefault(logger).Named("mcs")
	return &Engine{
		opts:   opts,
		ranker: NewRanker(opts.Ranking, opts.Stereo, logger),
		logger: logger,
	}, nil
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Ranker returns the ranker applied to tied solutions.
func (e *Engine) Ranker() *Ranker { return e.ranker }

// Compare finds the best mappings of query onto target.  Failing to find a
// correspondence is not an error; the result is then empty.  Only a mapping
// integrity failure is returned as an error.
func (e *Engine) Compare(query, target *molecule.Molecule) (*Result, error) {
	if query == nil || target == nil {
		return nil, errors.InvalidParam("query and target molecules are required")
	}
	start := time.Now()
	res := &Result{
		ID:        uuid.NewString(),
		Query:     query,
		Target:    target,
		Algorithm: e.opts.Algorithm,
		strategy:  StrategyNone,
	}
	log := e.logger.With(
		logging.String("comparison_id", res.ID),
		logging.String("query", query.ID),
		logging.String("target", target.ID),
	)

	var candidates [][][2]int
	switch {
	case query.AtomCount() == 0 || target.AtomCount() == 0:
		log.Debug("empty molecule, nothing to map")
	case isTrivial(query) || isTrivial(target):
		res.strategy = StrategyTrivial
		if pair, ok := e.trivialPair(query, target); ok {
			candidates = [][][2]int{{pair}}
		}
	default:
		candidates = e.search(query, target, res, log)
	}

	if err := e.finish(res, candidates); err != nil {
		log.Error("mapping integrity violated", logging.Err(err))
		return nil, err
	}
	res.Duration = time.Since(start)
	log.Debug("comparison finished",
		logging.String("strategy", res.strategy.String()),
		logging.Int("mapped_atoms", res.MappedAtoms()),
		logging.Int("solutions", len(res.solutions)),
		logging.Bool("truncated", res.truncated),
		logging.Bool("fallback", res.fallbackUsed),
		logging.Duration("duration", res.Duration),
	)
	return res, nil
}

func isTrivial(m *molecule.Molecule) bool {
	return m.AtomCount() > 0 && m.BondCount() == 0
}

// trivialPair maps the first query atom, in index order, that has a
// compatible target atom onto the first such target atom.
func (e *Engine) trivialPair(query, target *molecule.Molecule) ([2]int, bool) {
	for qi, qa := range query.Atoms() {
		for ti, ta := range target.Atoms() {
			if e.opts.AtomMatcher.Matches(qa, ta) {
				return [2]int{qi, ti}, true
			}
		}
	}
	return [2]int{}, false
}

func (e *Engine) search(query, target *molecule.Molecule, res *Result, log logging.Logger) [][][2]int {
	switch e.opts.Algorithm {
	case AlgorithmSubgraphOnly:
		return e.runSubstructure(query, target, res, log)
	case AlgorithmVFLike:
		return e.runVF(query, target, res)
	case AlgorithmCliqueBased:
		g := e.buildGraph(query, target, res)
		return e.runClique(g, clique.NewBronKerbosch(g, e.budget(g)), StrategyBronKerbosch, res)
	}

	if found := e.runSubstructure(query, target, res, log); len(found) > 0 {
		return found
	}
	// An inconclusive substructure check is not a truncated MCS search.
	res.truncated = false

	g := e.buildGraph(query, target, res)
	koch := clique.NewKoch(g, e.budget(g))
	koch.CollectTies = e.opts.CollectTies
	best := e.runClique(g, koch, StrategyKoch, res)

	full := min(query.AtomCount(), target.AtomCount())
	if !koch.Truncated() || size(best) >= full {
		return best
	}
	log.Debug("koch search truncated with incomplete mapping, falling back",
		logging.Int("mapped", size(best)), logging.Int("possible", full))
	res.fallbackUsed = true
	bk := clique.NewBronKerbosch(g, e.budget(g))
	fallback := e.runClique(g, bk, StrategyBronKerbosch, res)
	if size(fallback) > size(best) {
		return fallback
	}
	res.strategy = StrategyKoch
	res.truncated = true
	return best
}

func size(candidates [][][2]int) int {
	if len(candidates) == 0 {
		return 0
	}
	return len(candidates[0])
}

func (e *Engine) budget(g *clique.Graph) *clique.Budget {
	return clique.NewBudget(g.Len(), e.opts.IterationCap)
}

func (e *Engine) buildGraph(query, target *molecule.Molecule, res *Result) *clique.Graph {
	g := clique.Build(query, target, e.opts.AtomMatcher, e.opts.BondMatcher)
	res.graphStats = g.Stats()
	return g
}

func (e *Engine) runSubstructure(query, target *molecule.Molecule, res *Result, log logging.Logger) [][][2]int {
	pairs, exhausted := findSubstructure(query, target, e.opts.AtomMatcher, e.opts.BondMatcher, e.opts.SubstructureStepLimit)
	if exhausted {
		log.Debug("substructure check inconclusive", logging.Int("step_limit", e.opts.SubstructureStepLimit))
		res.truncated = true
	}
	if len(pairs) == 0 {
		return nil
	}
	res.strategy = StrategySubstructure
	return [][][2]int{pairs}
}

func (e *Engine) runVF(query, target *molecule.Molecule, res *Result) [][][2]int {
	nodes := 0
	for _, qa := range query.Atoms() {
		for _, ta := range target.Atoms() {
			if e.opts.AtomMatcher.Matches(qa, ta) {
				nodes++
			}
		}
	}
	solutions, truncated := findVFMCS(query, target, e.opts.AtomMatcher, e.opts.BondMatcher,
		clique.NewBudget(nodes, e.opts.IterationCap), e.opts.MaxSolutions)
	res.truncated = truncated
	res.strategy = StrategyVFLike
	return solutions
}

func (e *Engine) runClique(g *clique.Graph, f clique.Finder, strategy Strategy, res *Result) [][][2]int {
	cliques := f.MaxCliques()
	res.truncated = f.Truncated()
	res.strategy = strategy
	out := make([][][2]int, 0, min(len(cliques), e.opts.MaxSolutions))
	for _, c := range cliques {
		if len(out) == e.opts.MaxSolutions {
			break
		}
		nodes := g.Pairs(c)
		pairs := make([][2]int, len(nodes))
		for i, n := range nodes {
			pairs[i] = [2]int{n.Query, n.Target}
		}
		out = append(out, pairs)
	}
	return out
}

// finish converts candidate pair lists into validated, scored and ranked
// solutions.  Duplicate mappings are dropped.
func (e *Engine) finish(res *Result, candidates [][][2]int) error {
	for _, pairs := range candidates {
		m, err := MappingFromPairs(pairs)
		if err != nil {
			return err
		}
		if err := m.Validate(res.Query, res.Target); err != nil {
			return err
		}
		if duplicate(res.solutions, m) {
			continue
		}
		s := &Solution{Mapping: m, Subgraph: isSubgraph(m, res.Query, res.Target)}
		e.ranker.Score(s, res.Query, res.Target)
		res.solutions = append(res.solutions, s)
	}
	e.ranker.Rank(res.solutions)
	return nil
}

func duplicate(solutions []*Solution, m *Mapping) bool {
	for _, s := range solutions {
		if s.Mapping.Equal(m) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
