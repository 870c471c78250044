// Package comparison is the application service behind the CLI and the HTTP
// API.  It turns transfer objects into molecules, runs the matching engine
// and the bond-change calculator, and records metrics for every outcome.
package comparison

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/turtacn/keyip-mcs/internal/domain/mcs"
	"github.com/turtacn/keyip-mcs/internal/domain/molecule"
	"github.com/turtacn/keyip-mcs/internal/domain/reaction"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	prom "github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// Service defines the comparison use cases.
type Service interface {
	Compare(ctx context.Context, req *mtypes.CompareRequest) (*mtypes.CompareResponse, error)
	AnalyzeReaction(ctx context.Context, rxn *mtypes.ReactionDTO) (*mtypes.ReactionAnalysisResponse, error)
	BatchCompare(ctx context.Context, batch *mtypes.BatchDTO) (*mtypes.BatchResponse, error)
}

// DefaultConcurrency is the number of batch pairs compared at once when
// Config.Concurrency is unset.
const DefaultConcurrency = 4

// DefaultFingerprintRadius is the neighbourhood radius of batch prefilter
// fingerprints.
const DefaultFingerprintRadius = 2

// Config holds the service settings.
type Config struct {
	// Defaults are the engine options requests start from.
	Defaults          mcs.Options
	Concurrency       int
	FingerprintRadius int
}

// DefaultConfig returns the engine defaults with a small worker pool.
func DefaultConfig() Config {
	return Config{
		Defaults:          mcs.DefaultOptions(),
		Concurrency:       DefaultConcurrency,
		FingerprintRadius: DefaultFingerprintRadius,
	}
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cfg        Config
	engine     *mcs.Engine
	calculator *reaction.Calculator
	metrics    *prom.MCSMetrics
	logger     logging.Logger
}

// NewService validates cfg and builds the default engine.  A nil metrics
// set discards every update.
func NewService(cfg Config, metrics *prom.MCSMetrics, logger logging.Logger) (Service, error) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.FingerprintRadius < 0 {
		cfg.FingerprintRadius = DefaultFingerprintRadius
	}
	if metrics == nil {
		metrics = prom.NewNoopMCSMetrics()
	}
	logger = logging.OrDefault(logger)
	engine, err := mcs.NewEngine(cfg.Defaults, logger)
	if err != nil {
		return nil, err
	}
	return &serviceImpl{
		cfg:        cfg,
		engine:     engine,
		calculator: reaction.NewCalculator(cfg.Defaults.Stereo, logger),
		metrics:    metrics,
		logger:     logger.Named("comparison"),
	}, nil
}

// engineFor returns the default engine, or a new one when the request
// overrides any option.
func (s *serviceImpl) engineFor(o mtypes.MatchOptionsDTO) (*mcs.Engine, error) {
	if isZero(o) {
		return s.engine, nil
	}
	opts, err := mergeOptions(s.cfg.Defaults, o)
	if err != nil {
		return nil, err
	}
	return mcs.NewEngine(opts, s.logger)
}

func (s *serviceImpl) fail(op string, err error) error {
	prom.RecordError(s.metrics, "comparison", errors.GetCode(err).String())
	s.logger.Warn(op+" failed", logging.Err(err))
	return err
}

func (s *serviceImpl) record(engine *mcs.Engine, res *mcs.Result) {
	prom.RecordSearch(s.metrics, engine.Options().Algorithm.String(), res.Strategy().String(),
		res.Truncated(), res.GraphStats().Nodes, res.MappedAtoms(), res.Duration)
}

func (s *serviceImpl) Compare(ctx context.Context, req *mtypes.CompareRequest) (*mtypes.CompareResponse, error) {
	if req == nil {
		return nil, errors.InvalidParam("compare request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCanceled, "compare canceled")
	}
	engine, err := s.engineFor(req.Options)
	if err != nil {
		return nil, s.fail("compare", err)
	}
	query, err := molecule.FromDTO(&req.Query)
	if err != nil {
		return nil, s.fail("compare", err)
	}
	target, err := molecule.FromDTO(&req.Target)
	if err != nil {
		return nil, s.fail("compare", err)
	}
	res, err := engine.Compare(query, target)
	if err != nil {
		return nil, s.fail("compare", err)
	}
	s.record(engine, res)
	s.logger.WithContext(ctx).Info("comparison completed",
		logging.String("comparison_id", res.ID),
		logging.String("strategy", res.Strategy().String()),
		logging.Int("mapped_atoms", res.MappedAtoms()),
		logging.Bool("truncated", res.Truncated()),
	)
	return compareResponse(res), nil
}

func (s *serviceImpl) AnalyzeReaction(ctx context.Context, dto *mtypes.ReactionDTO) (*mtypes.ReactionAnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCanceled, "analysis canceled")
	}
	rxn, err := reactionFromDTO(dto)
	if err != nil {
		return nil, s.fail("reaction analysis", err)
	}
	derived := rxn.Mapping == nil
	if derived {
		engine, err := s.engineFor(dto.Options)
		if err != nil {
			return nil, s.fail("reaction analysis", err)
		}
		res, err := reaction.MapReaction(engine, rxn)
		if res != nil {
			s.record(engine, res)
		}
		if err != nil {
			return nil, s.fail("reaction analysis", err)
		}
	}
	cs, err := s.calculator.Calculate(rxn)
	if err != nil {
		return nil, s.fail("reaction analysis", err)
	}
	for _, kind := range []reaction.ChangeKind{
		reaction.KindCleaved, reaction.KindFormed, reaction.KindOrderChanged, reaction.KindStereoChanged,
	} {
		prom.RecordBondChanges(s.metrics, kind.String(), cs.Count(kind))
	}
	out := analysisResponse(uuid.NewString(), rxn, cs, derived)
	if dto.CompressHydrogens {
		view, err := reaction.CompressHydrogens(rxn, cs)
		if err != nil {
			return nil, s.fail("reaction analysis", err)
		}
		out.HydrogenView = hydrogenView(rxn, view)
	}
	s.logger.WithContext(ctx).Info("reaction analysed",
		logging.String("analysis_id", out.ID),
		logging.String("reaction", rxn.ID),
		logging.Bool("mapping_derived", derived),
		logging.Int("changes", len(cs.Changes())),
	)
	return out, nil
}

type batchJob struct {
	pair          mtypes.PairDTO
	query, target *molecule.Molecule
}

func (s *serviceImpl) BatchCompare(ctx context.Context, batch *mtypes.BatchDTO) (*mtypes.BatchResponse, error) {
	if batch == nil {
		return nil, errors.InvalidParam("batch is required")
	}
	start := time.Now()
	engine, err := s.engineFor(batch.Options)
	if err != nil {
		return nil, s.fail("batch", err)
	}
	table := molecule.NewTable()
	for i := range batch.Molecules {
		m, err := molecule.FromDTO(&batch.Molecules[i])
		if err != nil {
			return nil, s.fail("batch", err)
		}
		if err := table.Put(m, false); err != nil {
			return nil, s.fail("batch", err)
		}
	}

	jobs, skipped, err := s.plan(table, batch)
	if err != nil {
		return nil, s.fail("batch", err)
	}

	results := make([]*mcs.Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := engine.Compare(job.query, job.target)
			if err != nil {
				s.metrics.BatchPairsTotal.WithLabelValues("failed").Inc()
				return errors.Wrap(err, errors.CodeUnknown, "batch pair failed").
					WithDetailf("query=%s target=%s", job.pair.Query, job.pair.Target)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			err = errors.Wrap(err, errors.ErrCodeCanceled, "batch canceled")
		}
		return nil, s.fail("batch", err)
	}

	out := &mtypes.BatchResponse{Results: make([]mtypes.CompareResponse, 0, len(results)), Skipped: skipped}
	for _, res := range results {
		s.record(engine, res)
		s.metrics.BatchPairsTotal.WithLabelValues("compared").Inc()
		out.Results = append(out.Results, *compareResponse(res))
	}
	s.logger.WithContext(ctx).Info("batch completed",
		logging.Int("molecules", table.Len()),
		logging.Int("compared", len(results)),
		logging.Int("skipped", len(skipped)),
		logging.Duration("duration", time.Since(start)),
	)
	return out, nil
}

// plan resolves the batch pairs against table and drops those whose
// fingerprint similarity is below the batch threshold.  Without explicit
// pairs every molecule is compared with every later one in ID order.
func (s *serviceImpl) plan(table *molecule.Table, batch *mtypes.BatchDTO) ([]batchJob, []mtypes.PairDTO, error) {
	pairs := batch.Pairs
	if len(pairs) == 0 {
		ids := table.IDs()
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				pairs = append(pairs, mtypes.PairDTO{Query: ids[i], Target: ids[j]})
			}
		}
	}

	fps := make(map[string]*molecule.Fingerprint)
	fingerprint := func(m *molecule.Molecule) *molecule.Fingerprint {
		fp, ok := fps[m.ID]
		if !ok {
			fp = molecule.NewFingerprint(m, s.cfg.FingerprintRadius, molecule.DefaultFingerprintLength)
			fps[m.ID] = fp
		}
		return fp
	}

	var jobs []batchJob
	var skipped []mtypes.PairDTO
	for _, p := range pairs {
		q, err := table.Get(p.Query)
		if err != nil {
			return nil, nil, err
		}
		t, err := table.Get(p.Target)
		if err != nil {
			return nil, nil, err
		}
		if batch.MinFingerprintSimilarity > 0 {
			sim, err := fingerprint(q).Tanimoto(fingerprint(t))
			if err != nil {
				return nil, nil, err
			}
			if sim < batch.MinFingerprintSimilarity {
				s.metrics.BatchPairsTotal.WithLabelValues("skipped").Inc()
				skipped = append(skipped, p)
				continue
			}
		}
		jobs = append(jobs, batchJob{pair: p, query: q, target: t})
	}
	return jobs, skipped, nil
}

//Personal.AI order the ending
