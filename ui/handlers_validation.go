package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
	"benchfuse/internal/errors"
	"benchfuse/internal/fusion"
	"benchfuse/internal/validator"
	"benchfuse/ports"
)

// validateRequest is the wire shape of a validation call.
type validateRequest struct {
	Discovery   artifact.Discovery `json:"discovery" binding:"required"`
	Context     *artifact.Context  `json:"context"`
	BypassCache bool               `json:"bypass_cache"`
	// Benchmarks restricts the panel; used by the subset endpoint only.
	Benchmarks []string `json:"benchmarks"`
}

// handleValidate runs the full benchmark panel
func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.orchestrator.ValidateWithOptions(c.Request.Context(), req.Discovery, req.Context,
		validator.Options{BypassCache: req.BypassCache})
	if err != nil {
		s.log.Error("validation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.GetCode(err)})
		return
	}

	s.persistRun(c, req.Discovery, result)
	c.JSON(http.StatusOK, result)
}

// handleValidatePhysics runs only the physical-limits benchmark
func (s *Server) handleValidatePhysics(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := s.orchestrator.ValidatePhysics(c.Request.Context(), req.Discovery, req.Context)
	if err != nil {
		s.log.Error("physics validation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleValidateSubset runs a caller-selected benchmark subset
func (s *Server) handleValidateSubset(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Benchmarks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "benchmarks list is required"})
		return
	}

	kinds := make([]benchmark.Kind, 0, len(req.Benchmarks))
	for _, name := range req.Benchmarks {
		kinds = append(kinds, benchmark.Kind(name))
	}

	result, err := s.orchestrator.ValidateSubset(c.Request.Context(), req.Discovery, req.Context, kinds)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleListRuns returns recent validation runs from the repository
func (s *Server) handleListRuns(c *gin.Context) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history not configured"})
		return
	}
	records, err := s.runs.ListRecent(c.Request.Context(), 20)
	if err != nil {
		s.log.Error("listing runs failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, records)
}

// handleGetRun returns one stored validation run
func (s *Server) handleGetRun(c *gin.Context) {
	record, ok := s.loadRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleRunReport renders one stored run as an HTML report
func (s *Server) handleRunReport(c *gin.Context) {
	record, ok := s.loadRun(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", fusion.RenderHTML(record.Result))
}

// handleCacheStats exposes result-cache counters
func (s *Server) handleCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.orchestrator.CacheStats())
}

func (s *Server) loadRun(c *gin.Context) (*ports.RunRecord, bool) {
	if s.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history not configured"})
		return nil, false
	}
	id, err := core.ParseValidationID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	record, err := s.runs.GetRun(c.Request.Context(), id)
	if err != nil {
		if errors.HasCode(err, errors.CodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "validation run not found"})
			return nil, false
		}
		s.log.Error("loading run %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.GetCode(err)})
		return nil, false
	}
	return record, true
}

// persistRun stores the run when a repository is configured. Best effort:
// a failed save is logged, never surfaced to the caller.
func (s *Server) persistRun(c *gin.Context, d artifact.Discovery, result *verdict.AggregatedValidation) {
	if s.runs == nil || result == nil {
		return
	}
	record := &ports.RunRecord{
		ValidationID: result.ValidationID,
		ArtifactHash: d.Fingerprint(),
		Result:       result,
		CreatedAt:    result.CreatedAt,
	}
	if err := s.runs.SaveRun(c.Request.Context(), record); err != nil {
		s.log.Warn("saving run %s failed: %v", result.ValidationID, err)
	}
}
