package client

import (
	"context"

	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// HealthStatus is the body of GET /healthz.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Compare calls POST /api/v1/compare.
func (c *Client) Compare(ctx context.Context, req *mtypes.CompareRequest) (*mtypes.CompareResponse, error) {
	var out mtypes.CompareResponse
	if err := c.post(ctx, "/api/v1/compare", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AnalyzeReaction calls POST /api/v1/reactions/analyze.
func (c *Client) AnalyzeReaction(ctx context.Context, rxn *mtypes.ReactionDTO) (*mtypes.ReactionAnalysisResponse, error) {
	var out mtypes.ReactionAnalysisResponse
	if err := c.post(ctx, "/api/v1/reactions/analyze", rxn, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BatchCompare calls POST /api/v1/batch.
func (c *Client) BatchCompare(ctx context.Context, batch *mtypes.BatchDTO) (*mtypes.BatchResponse, error) {
	var out mtypes.BatchResponse
	if err := c.post(ctx, "/api/v1/batch", batch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls GET /healthz.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/healthz", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
