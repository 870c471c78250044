package main

import (
	"context"
	"sync/atomic"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// swappableService forwards to the current service so that a config reload
// can replace engine defaults without restarting the listener.
type swappableService struct {
	cur atomic.Pointer[comparison.Service]
}

func newSwappableService(svc comparison.Service) *swappableService {
	s := &swappableService{}
	s.Store(svc)
	return s
}

func (s *swappableService) Store(svc comparison.Service) { s.cur.Store(&svc) }

func (s *swappableService) load() comparison.Service { return *s.cur.Load() }

func (s *swappableService) Compare(ctx context.Context, req *mtypes.CompareRequest) (*mtypes.CompareResponse, error) {
	return s.load().Compare(ctx, req)
}

func (s *swappableService) AnalyzeReaction(ctx context.Context, rxn *mtypes.ReactionDTO) (*mtypes.ReactionAnalysisResponse, error) {
	return s.load().AnalyzeReaction(ctx, rxn)
}

func (s *swappableService) BatchCompare(ctx context.Context, batch *mtypes.BatchDTO) (*mtypes.BatchResponse, error) {
	return s.load().BatchCompare(ctx, batch)
}

// engineHealthAdapter reports ready once a two-atom self comparison maps
// both atoms.
type engineHealthAdapter struct {
	svc comparison.Service
}

func (a *engineHealthAdapter) Name() string {
	return "engine"
}

func (a *engineHealthAdapter) Check(ctx context.Context) error {
	probe := mtypes.MoleculeDTO{
		ID:    "probe",
		Atoms: []mtypes.AtomDTO{{Symbol: "C"}, {Symbol: "O"}},
		Bonds: []mtypes.BondDTO{{From: 0, To: 1, Order: "single"}},
	}
	resp, err := a.svc.Compare(ctx, &mtypes.CompareRequest{Query: probe, Target: probe})
	if err != nil {
		return err
	}
	if resp.MappedAtoms != 2 {
		return errors.Newf(errors.ErrCodeSearchFailed, "probe mapped %d of 2 atoms", resp.MappedAtoms)
	}
	return nil
}

//Personal.AI order the ending
