package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/keyip-mcs/internal/application/comparison"
	"github.com/turtacn/keyip-mcs/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/keyip-mcs/pkg/errors"
	mtypes "github.com/turtacn/keyip-mcs/pkg/types/molecule"
)

// ComparisonHandler serves the comparison and reaction endpoints.
type ComparisonHandler struct {
	svc    comparison.Service
	logger logging.Logger
}

// NewComparisonHandler creates a new ComparisonHandler.
func NewComparisonHandler(svc comparison.Service, logger logging.Logger) *ComparisonHandler {
	return &ComparisonHandler{svc: svc, logger: logging.OrDefault(logger).Named("http")}
}

// RegisterRoutes mounts the handler under rg.
func (h *ComparisonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/compare", h.Compare)
	rg.POST("/reactions/analyze", h.AnalyzeReaction)
	rg.POST("/batch", h.BatchCompare)
}

// Compare handles POST /api/v1/compare.
func (h *ComparisonHandler) Compare(c *gin.Context) {
	var req mtypes.CompareRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.svc.Compare(c.Request.Context(), &req)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AnalyzeReaction handles POST /api/v1/reactions/analyze.
func (h *ComparisonHandler) AnalyzeReaction(c *gin.Context) {
	var rxn mtypes.ReactionDTO
	if !bindJSON(c, &rxn) {
		return
	}
	resp, err := h.svc.AnalyzeReaction(c.Request.Context(), &rxn)
	if err != nil {
		writeAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BatchCompare handles POST /api/v1/batch.
func (h *ComparisonHandler) BatchCompare(c *gin.Context) {
	var batch mtypes.BatchDTO
	if !bindJSON(c, &batch) {
		return
	}
	if len(batch.Molecules) < 2 {
		writeError(c, http.StatusBadRequest, errors.CodeInvalidParam, "batch needs at least two molecules", "")
		return
	}
	resp, err := h.svc.BatchCompare(c.Request.Context(), &batch)
	if err != nil {
		writeAppError(c, err)
		return
	}
	h.logger.WithContext(c.Request.Context()).Debug("batch served",
		logging.Int("results", len(resp.Results)),
		logging.Int("skipped", len(resp.Skipped)))
	c.JSON(http.StatusOK, resp)
}

//Personal.AI order the ending
