package validator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"benchfuse/domain/artifact"
	"benchfuse/domain/benchmark"
	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
	"benchfuse/internal/cache"
	"benchfuse/internal/config"
	"benchfuse/internal/errors"
	"benchfuse/internal/fusion"
	"benchfuse/internal/logging"
	"benchfuse/internal/scorer"
)

// Orchestrator owns the enabled scorer panel and drives one validation run:
// cache lookup, scorer execution with per-scorer failure isolation, fusion,
// recommendation building, cache store.
type Orchestrator struct {
	scorers    []scorer.Scorer
	aggregator *fusion.Aggregator
	builder    *fusion.RecommendationBuilder
	cache      *cache.ValidationCache
	cfg        config.ValidationConfig
	sem        *semaphore.Weighted
	log        *logging.Logger
}

// Options adjusts one validation call.
type Options struct {
	// BypassCache skips the cache lookup and forces a fresh run.
	BypassCache bool
}

// New creates an orchestrator over the given scorer panel. The panel order
// is the enabled order and stays stable through to recommendation output.
func New(cfg config.ValidationConfig, vcache *cache.ValidationCache, scorers []scorer.Scorer) *Orchestrator {
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Orchestrator{
		scorers: scorers,
		aggregator: fusion.NewAggregator(fusion.Options{
			BaseWeights:   benchmark.DefaultBaseWeights(),
			MinConfidence: cfg.MinConfidence,
			PassThreshold: cfg.PassThreshold,
			Strict:        cfg.StrictMode,
		}),
		builder: fusion.NewRecommendationBuilder(),
		cache:   vcache,
		cfg:     cfg,
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		log:     logging.NewDefaultLogger("Orchestrator"),
	}
}

// NewDefault builds an orchestrator with the full benchmark panel in
// canonical order.
func NewDefault(cfg config.ValidationConfig, vcache *cache.ValidationCache) (*Orchestrator, error) {
	panel, err := scorer.Panel(benchmark.AllKinds())
	if err != nil {
		return nil, err
	}
	return New(cfg, vcache, panel), nil
}

// Validate runs the full panel with default options.
func (o *Orchestrator) Validate(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (*verdict.AggregatedValidation, error) {
	return o.ValidateWithOptions(ctx, d, vctx, Options{})
}

// ValidateWithOptions is the primary entry point. A cache hit returns the
// stored result with no side effects. On bypass the lookup is skipped; the
// fresh result still refreshes the cache when RefreshOnBypass is set.
func (o *Orchestrator) ValidateWithOptions(ctx context.Context, d artifact.Discovery, vctx *artifact.Context, opts Options) (*verdict.AggregatedValidation, error) {
	if d == nil {
		return nil, errors.InvalidInput("discovery artifact is nil")
	}

	key := cache.ComputeKey(d, vctx, o.enabledKinds())

	if !opts.BypassCache && o.cache != nil {
		if cached, hit := o.cache.Get(key); hit {
			o.log.Debug("cache hit for %s", key)
			return cached, nil
		}
	}

	results := o.runScorers(ctx, d, vctx)

	id := core.NewValidationID()
	aggregated := o.aggregator.Aggregate(id, results)
	if len(aggregated.Benchmarks) == 0 {
		aggregated.Recommendations = []verdict.Recommendation{fusion.CompletenessRecommendation()}
	} else {
		aggregated.Recommendations = o.builder.Build(
			aggregated.Benchmarks, aggregated.Discrepancies, aggregated.AgreementLevel)
	}

	if o.cache != nil && (!opts.BypassCache || o.cfg.RefreshOnBypass) {
		o.cache.Set(key, &aggregated)
	}
	return &aggregated, nil
}

// ValidateSubset runs a restricted benchmark panel for one call. The subset
// reuses the orchestrator's own scorer instances in caller order, so wired
// collaborators (judges, caches) carry over into the restricted run.
func (o *Orchestrator) ValidateSubset(ctx context.Context, d artifact.Discovery, vctx *artifact.Context, kinds []benchmark.Kind) (*verdict.AggregatedValidation, error) {
	byKind := make(map[benchmark.Kind]scorer.Scorer, len(o.scorers))
	for _, s := range o.scorers {
		byKind[s.Kind()] = s
	}
	panel := make([]scorer.Scorer, 0, len(kinds))
	for _, kind := range kinds {
		s, ok := byKind[kind]
		if !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("benchmark %s is not in the enabled panel", kind))
		}
		panel = append(panel, s)
	}
	sub := New(o.cfg, o.cache, panel)
	return sub.Validate(ctx, d, vctx)
}

// ValidatePhysics runs only the physical-limits benchmark. Convenience for
// callers that want a fast hard-constraint check before a full run.
func (o *Orchestrator) ValidatePhysics(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) (*verdict.AggregatedValidation, error) {
	return o.ValidateSubset(ctx, d, vctx, []benchmark.Kind{benchmark.KindPhysicalLimits})
}

// CacheStats exposes the result cache's counters for observability.
func (o *Orchestrator) CacheStats() cache.Stats {
	if o.cache == nil {
		return cache.Stats{}
	}
	return o.cache.Stats()
}

func (o *Orchestrator) enabledKinds() []benchmark.Kind {
	kinds := make([]benchmark.Kind, 0, len(o.scorers))
	for _, s := range o.scorers {
		kinds = append(kinds, s.Kind())
	}
	return kinds
}

// scorerJob carries one scorer's outcome back to the collector.
type scorerJob struct {
	index    int
	kind     benchmark.Kind
	result   benchmark.Result
	err      error
	duration time.Duration
}

// runScorers executes the panel, parallel or sequential per configuration.
// A scorer that errors, times out, or panics is logged and excluded; one
// scorer's failure never aborts the run. Surviving results come back in
// panel order.
func (o *Orchestrator) runScorers(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) []benchmark.Result {
	if !o.cfg.Parallel {
		return o.runSequential(ctx, d, vctx)
	}

	jobs := make(chan scorerJob, len(o.scorers))
	for i, s := range o.scorers {
		go func(index int, s scorer.Scorer) {
			if err := o.sem.Acquire(ctx, 1); err != nil {
				jobs <- scorerJob{index: index, kind: s.Kind(), err: errors.ScorerUnavailable(string(s.Kind()), err)}
				return
			}
			defer o.sem.Release(1)
			jobs <- o.invoke(ctx, s, index, d, vctx)
		}(i, s)
	}

	collected := make([]*scorerJob, len(o.scorers))
	for range o.scorers {
		job := <-jobs
		collected[job.index] = &job
	}

	results := make([]benchmark.Result, 0, len(o.scorers))
	for _, job := range collected {
		if job.err != nil {
			o.log.Warn("benchmark %s excluded: %v", job.kind, job.err)
			continue
		}
		o.log.Debug("benchmark %s scored %.2f in %v", job.kind, job.result.Score, job.duration)
		results = append(results, job.result)
	}
	return results
}

func (o *Orchestrator) runSequential(ctx context.Context, d artifact.Discovery, vctx *artifact.Context) []benchmark.Result {
	results := make([]benchmark.Result, 0, len(o.scorers))
	for i, s := range o.scorers {
		job := o.invoke(ctx, s, i, d, vctx)
		if job.err != nil {
			o.log.Warn("benchmark %s excluded: %v", job.kind, job.err)
			continue
		}
		results = append(results, job.result)
	}
	return results
}

// invoke runs one scorer under its time budget with panic isolation.
func (o *Orchestrator) invoke(ctx context.Context, s scorer.Scorer, index int, d artifact.Discovery, vctx *artifact.Context) (job scorerJob) {
	job = scorerJob{index: index, kind: s.Kind()}
	defer func() {
		if r := recover(); r != nil {
			job.err = errors.ScorerUnavailable(string(s.Kind()), fmt.Errorf("panic: %v", r))
		}
	}()

	scorerCtx := ctx
	if o.cfg.ScorerTimeout > 0 {
		var cancel context.CancelFunc
		scorerCtx, cancel = context.WithTimeout(ctx, o.cfg.ScorerTimeout)
		defer cancel()
	}

	start := time.Now()
	result, err := s.Evaluate(scorerCtx, d, vctx)
	job.duration = time.Since(start)

	if err != nil {
		if scorerCtx.Err() == context.DeadlineExceeded {
			job.err = errors.ScorerTimeout(string(s.Kind()), err)
		} else {
			job.err = err
		}
		return job
	}
	if err := result.Validate(); err != nil {
		job.err = errors.Wrap(err, "scorer produced a malformed result")
		return job
	}
	job.result = result
	return job
}
