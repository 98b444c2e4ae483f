package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"benchfuse/internal/config"
	"benchfuse/internal/logging"
	"benchfuse/internal/validator"
	"benchfuse/ports"
)

// Server is the validation API surface. All domain work happens in the
// orchestrator; handlers only translate HTTP to and from it.
type Server struct {
	router       *gin.Engine
	orchestrator *validator.Orchestrator
	runs         ports.ValidationRunRepository
	log          *logging.Logger
}

// NewServer creates the API server. The run repository is optional; without
// it the history endpoints respond 503.
func NewServer(cfg config.ServerConfig, orch *validator.Orchestrator, runs ports.ValidationRunRepository) *Server {
	gin.SetMode(cfg.GinMode)
	s := &Server{
		router:       gin.Default(),
		orchestrator: orch,
		runs:         runs,
		log:          logging.NewDefaultLogger("Server"),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/validate", s.handleValidate)
	api.POST("/validate/physics", s.handleValidatePhysics)
	api.POST("/validate/subset", s.handleValidateSubset)

	api.GET("/validations", s.handleListRuns)
	api.GET("/validations/:id", s.handleGetRun)
	api.GET("/validations/:id/report", s.handleRunReport)

	api.GET("/cache/stats", s.handleCacheStats)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving the API on the given port.
func (s *Server) Start(port string) error {
	addr := ":" + port
	s.log.Info("validation API listening on %s", addr)
	return s.router.Run(addr)
}
