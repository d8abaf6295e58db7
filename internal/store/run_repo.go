package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/horizonfp/horizon/internal/domain"
)

// RunRepo stores run headers for projections and simulations. Each row
// carries a few queryable scalars plus the full result as JSONB, so the
// exact decimal values survive the round trip.
type RunRepo struct {
	pool *pgxpool.Pool
}

// NewRunRepo creates a repository over the given pool.
func NewRunRepo(pool *pgxpool.Pool) *RunRepo {
	return &RunRepo{pool: pool}
}

// SaveProjection upserts one deterministic run keyed by run id.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS horizon_runs (
//   run_id TEXT PRIMARY KEY,
//   scenario TEXT,
//   state TEXT,
//   depleted BOOLEAN,
//   months_survived INT,
//   terminal_value DOUBLE PRECISION,
//   synthetic BOOLEAN,
//   result JSONB,
//   updated_at TIMESTAMPTZ
// );
func (r *RunRepo) SaveProjection(ctx context.Context, result *domain.ProjectionResult) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal projection result: %w", err)
	}

	query := `
		INSERT INTO horizon_runs (
			run_id, scenario, state, depleted, months_survived,
			terminal_value, synthetic, result, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_id)
		DO UPDATE SET
			scenario = EXCLUDED.scenario,
			state = EXCLUDED.state,
			depleted = EXCLUDED.depleted,
			months_survived = EXCLUDED.months_survived,
			terminal_value = EXCLUDED.terminal_value,
			synthetic = EXCLUDED.synthetic,
			result = EXCLUDED.result,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = r.pool.Exec(ctx, query,
		result.RunID.String(), result.Scenario, result.State.String(),
		result.Depleted, result.MonthsSurvived,
		result.TerminalValue().InexactFloat64(), result.Synthetic,
		resultJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save projection run: %w", err)
	}
	return nil
}

// SaveSimulation upserts one Monte Carlo run keyed by run id.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS horizon_simulations (
//   run_id TEXT PRIMARY KEY,
//   scenario TEXT,
//   n INT,
//   horizon_months INT,
//   seed BIGINT,
//   synthetic BOOLEAN,
//   success_rate DOUBLE PRECISION,
//   median DOUBLE PRECISION,
//   percentile_5 DOUBLE PRECISION,
//   percentile_95 DOUBLE PRECISION,
//   average_ending DOUBLE PRECISION,
//   p_depleted DOUBLE PRECISION,
//   failed_paths INT,
//   duration_ms BIGINT,
//   result JSONB,
//   updated_at TIMESTAMPTZ
// );
func (r *RunRepo) SaveSimulation(ctx context.Context, result *domain.SimulationResult) error {
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal simulation result: %w", err)
	}

	query := `
		INSERT INTO horizon_simulations (
			run_id, scenario, n, horizon_months, seed, synthetic,
			success_rate, median, percentile_5, percentile_95,
			average_ending, p_depleted, failed_paths, duration_ms,
			result, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (run_id)
		DO UPDATE SET
			success_rate = EXCLUDED.success_rate,
			median = EXCLUDED.median,
			percentile_5 = EXCLUDED.percentile_5,
			percentile_95 = EXCLUDED.percentile_95,
			average_ending = EXCLUDED.average_ending,
			p_depleted = EXCLUDED.p_depleted,
			failed_paths = EXCLUDED.failed_paths,
			duration_ms = EXCLUDED.duration_ms,
			result = EXCLUDED.result,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = r.pool.Exec(ctx, query,
		result.RunID.String(), result.Scenario, result.N, result.HorizonMonths,
		result.Seed, result.Synthetic,
		result.SuccessRate.InexactFloat64(), result.Median.InexactFloat64(),
		result.Percentile5.InexactFloat64(), result.Percentile95.InexactFloat64(),
		result.AverageEnding.InexactFloat64(), result.PDepleted.InexactFloat64(),
		result.FailedPaths, result.Duration.Milliseconds(),
		resultJSON, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}
	return nil
}

// LoadProjection retrieves a stored projection by run id, rebuilt from the
// JSONB payload.
func (r *RunRepo) LoadProjection(ctx context.Context, runID string) (*domain.ProjectionResult, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	query := `SELECT result FROM horizon_runs WHERE run_id = $1`

	var resultJSON []byte
	err := r.pool.QueryRow(ctx, query, runID).Scan(&resultJSON)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no stored run %s", runID)
		}
		return nil, fmt.Errorf("failed to load projection run: %w", err)
	}

	var result domain.ProjectionResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal projection result: %w", err)
	}
	return &result, nil
}

// RunSummary is one row of the stored-run listing.
type RunSummary struct {
	RunID          string
	Scenario       string
	Depleted       bool
	MonthsSurvived int
	TerminalValue  float64
	UpdatedAt      time.Time
}

// RecentRuns lists the most recently written projection runs.
func (r *RunRepo) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, scenario, depleted, months_survived, terminal_value, updated_at
		FROM horizon_runs
		ORDER BY updated_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.Scenario, &s.Depleted, &s.MonthsSurvived, &s.TerminalValue, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
