package ports

import (
	"context"

	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
)

// RunRecord is one persisted validation run: the fused verdict plus the
// request identity it was computed for.
type RunRecord struct {
	ValidationID core.ValidationID             `json:"validation_id"`
	ArtifactHash core.ArtifactHash             `json:"artifact_hash"`
	Result       *verdict.AggregatedValidation `json:"result"`
	CreatedAt    core.Timestamp                `json:"created_at"`
}

// ValidationRunRepository persists validation run history for audit and
// trend analysis. Persistence is best-effort from the caller's point of
// view: a failed save never fails the validation itself.
type ValidationRunRepository interface {
	// SaveRun stores one completed validation run.
	SaveRun(ctx context.Context, record *RunRecord) error

	// GetRun retrieves a run by validation ID.
	GetRun(ctx context.Context, id core.ValidationID) (*RunRecord, error)

	// ListRecent returns the most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*RunRecord, error)

	// ListByArtifact returns all runs recorded for one artifact hash,
	// newest first.
	ListByArtifact(ctx context.Context, hash core.ArtifactHash) ([]*RunRecord, error)
}
