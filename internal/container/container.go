package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"benchfuse/adapters/openai"
	pgadapter "benchfuse/adapters/postgres"
	"benchfuse/domain/benchmark"
	"benchfuse/internal/cache"
	"benchfuse/internal/config"
	"benchfuse/internal/logging"
	"benchfuse/internal/scorer"
	"benchfuse/internal/validator"
	"benchfuse/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB *sqlx.DB

	// Caches
	ResultCache    *cache.ValidationCache
	AlignmentCache *cache.AlignmentCache

	// Model provider (nil when no key is configured)
	LLM ports.LLMClient

	// Core engine
	Scorers      []scorer.Scorer
	Orchestrator *validator.Orchestrator

	// Persistence
	RunRepo ports.ValidationRunRepository

	log *logging.Logger
}

// New creates the container and wires the in-process engine. Database-backed
// components are attached separately via InitWithDatabase.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		log:    logging.NewDefaultLogger("Container"),
	}

	c.ResultCache = cache.NewValidationCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	c.AlignmentCache = cache.NewAlignmentCache(cfg.Cache.AlignmentCapacity, cfg.Cache.AlignmentTTL)

	literature := scorer.NewLiteratureScorer(c.AlignmentCache)
	if cfg.AI.OpenAIKey != "" {
		c.LLM = openai.NewClient(cfg.AI)
		literature = literature.WithJudge(openai.NewAlignmentJudge(c.LLM, cfg.AI.Model))
		c.log.Info("literature alignment judge enabled (model=%s)", cfg.AI.Model)
	} else {
		c.log.Info("no OpenAI key configured; literature alignment uses the lexical heuristic")
	}

	c.Scorers = []scorer.Scorer{
		scorer.NewExternalRubricScorer(),
		scorer.NewPhysicalLimitsScorer(),
		scorer.NewPracticalityScorer(),
		literature,
		scorer.NewConvergenceScorer(),
	}
	c.Orchestrator = validator.New(cfg.Validation, c.ResultCache, c.Scorers)

	return c, nil
}

// InitWithDatabase attaches the run-history repository. Optional: the engine
// runs fully in-process without it.
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.DB = db
	c.RunRepo = pgadapter.NewRunRepository(db)
	c.log.Info("container initialized with database connection")
	return nil
}

// EnabledKinds reports the configured panel in its enabled order.
func (c *Container) EnabledKinds() []benchmark.Kind {
	kinds := make([]benchmark.Kind, 0, len(c.Scorers))
	for _, s := range c.Scorers {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}

// Close releases held resources.
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
