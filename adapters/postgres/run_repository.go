package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"benchfuse/domain/core"
	"benchfuse/domain/verdict"
	"benchfuse/internal/errors"
	"benchfuse/ports"
)

// RunRepositoryImpl implements ValidationRunRepository for PostgreSQL. The
// fused verdict is stored as JSONB; the artifact hash is indexed for trend
// queries over repeated validations of the same discovery.
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL validation-run repository
func NewRunRepository(db *sqlx.DB) ports.ValidationRunRepository {
	return &RunRepositoryImpl{db: db}
}

// Connect opens and pings a PostgreSQL connection.
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to postgres")
	}
	return db, nil
}

// EnsureSchema creates the validation_runs table if it does not exist.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS validation_runs (
			validation_id TEXT PRIMARY KEY,
			artifact_hash TEXT NOT NULL,
			result        JSONB NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_validation_runs_artifact
			ON validation_runs (artifact_hash, created_at DESC);
	`)
	if err != nil {
		return errors.Wrap(err, "creating validation_runs schema")
	}
	return nil
}

// SaveRun stores one completed validation run
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, record *ports.RunRecord) error {
	if record == nil || record.Result == nil {
		return errors.InvalidInput("run record must carry a result")
	}
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return errors.Wrap(err, "marshaling validation result")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO validation_runs (validation_id, artifact_hash, result, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (validation_id) DO UPDATE
		SET result = EXCLUDED.result
	`, record.ValidationID.String(), string(record.ArtifactHash), payload, record.Result.CreatedAt.Time())

	if err != nil {
		return errors.Wrap(err, "saving validation run")
	}
	return nil
}

// GetRun retrieves a run by validation ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.ValidationID) (*ports.RunRecord, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT validation_id, artifact_hash, result, created_at
		FROM validation_runs
		WHERE validation_id = $1
	`, id.String())
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("validation run")
	}
	if err != nil {
		return nil, errors.Wrap(err, "loading validation run")
	}
	return row.toRecord()
}

// ListRecent returns the most recent runs, newest first
func (r *RunRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*ports.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT validation_id, artifact_hash, result, created_at
		FROM validation_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing recent validation runs")
	}
	return toRecords(rows)
}

// ListByArtifact returns all runs recorded for one artifact hash, newest first
func (r *RunRepositoryImpl) ListByArtifact(ctx context.Context, hash core.ArtifactHash) ([]*ports.RunRecord, error) {
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT validation_id, artifact_hash, result, created_at
		FROM validation_runs
		WHERE artifact_hash = $1
		ORDER BY created_at DESC
	`, string(hash))
	if err != nil {
		return nil, errors.Wrap(err, "listing runs by artifact")
	}
	return toRecords(rows)
}

// runRow is the scan target for validation_runs.
type runRow struct {
	ValidationID string          `db:"validation_id"`
	ArtifactHash string          `db:"artifact_hash"`
	Result       json.RawMessage `db:"result"`
	CreatedAt    sql.NullTime    `db:"created_at"`
}

func (row runRow) toRecord() (*ports.RunRecord, error) {
	var result verdict.AggregatedValidation
	if err := json.Unmarshal(row.Result, &result); err != nil {
		return nil, errors.Wrap(err, "unmarshaling stored validation result")
	}
	record := &ports.RunRecord{
		ValidationID: core.ValidationID(row.ValidationID),
		ArtifactHash: core.ArtifactHash(row.ArtifactHash),
		Result:       &result,
	}
	if row.CreatedAt.Valid {
		record.CreatedAt = core.NewTimestamp(row.CreatedAt.Time)
	}
	return record, nil
}

func toRecords(rows []runRow) ([]*ports.RunRecord, error) {
	records := make([]*ports.RunRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
