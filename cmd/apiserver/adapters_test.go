package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/testutil"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

type stubService struct {
	comparison.Service
	mapped int
}

func (s stubService) Compare(context.Context, *mtypes.CompareRequest) (*mtypes.CompareResponse, error) {
	return &mtypes.CompareResponse{MappedAtoms: s.mapped}, nil
}

func TestEngineHealthAdapter(t *testing.T) {
	svc, err := comparison.NewService(comparison.DefaultConfig(), nil, testutil.NewNopLogger())
	require.NoError(t, err)

	a := &engineHealthAdapter{svc: svc}
	assert.Equal(t, "engine", a.Name())
	assert.NoError(t, a.Check(context.Background()))

	err = (&engineHealthAdapter{svc: stubService{mapped: 1}}).Check(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSearchFailed))
}

func TestSwappableService(t *testing.T) {
	s := newSwappableService(stubService{mapped: 1})
	resp, err := s.Compare(context.Background(), &mtypes.CompareRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.MappedAtoms)

	s.Store(stubService{mapped: 7})
	resp, err = s.Compare(context.Background(), &mtypes.CompareRequest{})
	require.NoError(t, err)
	assert.Equal(t, 7, resp.MappedAtoms)
}

//Personal.AI order the ending
