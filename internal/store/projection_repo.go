package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/horizonfp/horizon/internal/domain"
)

// RowRepo stores the monthly time series behind a projection run. A full
// horizon is hundreds of rows, so writes go through the COPY protocol.
type RowRepo struct {
	pool *pgxpool.Pool
}

// NewRowRepo creates a repository over the given pool.
func NewRowRepo(pool *pgxpool.Pool) *RowRepo {
	return &RowRepo{pool: pool}
}

// Schema assumption:
// CREATE TABLE IF NOT EXISTS horizon_rows (
//   run_id TEXT,
//   month_index INT,
//   month_date TIMESTAMPTZ,
//   age_primary INT,
//   total_income DOUBLE PRECISION,
//   total_expenses DOUBLE PRECISION,
//   net_cash_flow DOUBLE PRECISION,
//   contributions DOUBLE PRECISION,
//   growth DOUBLE PRECISION,
//   total_withdrawals DOUBLE PRECISION,
//   federal_tax DOUBLE PRECISION,
//   state_tax DOUBLE PRECISION,
//   irmaa_surcharge DOUBLE PRECISION,
//   niit_tax DOUBLE PRECISION,
//   total_tax DOUBLE PRECISION,
//   balance_taxable DOUBLE PRECISION,
//   balance_traditional_ira DOUBLE PRECISION,
//   balance_traditional_401k DOUBLE PRECISION,
//   balance_roth_ira DOUBLE PRECISION,
//   balance_hsa DOUBLE PRECISION,
//   total_balance DOUBLE PRECISION,
//   notes TEXT,
//   PRIMARY KEY (run_id, month_index)
// );
var rowColumns = []string{
	"run_id", "month_index", "month_date", "age_primary",
	"total_income", "total_expenses", "net_cash_flow",
	"contributions", "growth", "total_withdrawals",
	"federal_tax", "state_tax", "irmaa_surcharge", "niit_tax", "total_tax",
	"balance_taxable", "balance_traditional_ira", "balance_traditional_401k",
	"balance_roth_ira", "balance_hsa", "total_balance",
	"notes",
}

// SaveRows replaces the stored time series for a run. Existing rows for the
// run id are deleted first so a re-run overwrites cleanly.
func (r *RowRepo) SaveRows(ctx context.Context, runID string, rows []domain.TimeSeriesRow) error {
	if len(rows) == 0 {
		return nil
	}
	if r.pool == nil {
		return fmt.Errorf("database pool not configured")
	}

	if _, err := r.pool.Exec(ctx, "DELETE FROM horizon_rows WHERE run_id = $1", runID); err != nil {
		return fmt.Errorf("failed to clear rows for run %s: %w", runID, err)
	}

	copied, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"horizon_rows"},
		rowColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rowValues(runID, rows[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to copy rows for run %s: %w", runID, err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copied %d of %d rows for run %s", copied, len(rows), runID)
	}
	return nil
}

// rowValues flattens one monthly row into COPY values, ordered to match
// rowColumns. Decimals become float64 here; the exact values live in the
// run header's JSONB payload.
func rowValues(runID string, row domain.TimeSeriesRow) []any {
	return []any{
		runID, row.MonthIndex, row.MonthDate, row.AgePrimary,
		row.TotalIncome.InexactFloat64(), row.TotalExpenses.InexactFloat64(), row.NetCashFlow.InexactFloat64(),
		row.Contributions.InexactFloat64(), row.Growth.InexactFloat64(), row.TotalWithdrawals.InexactFloat64(),
		row.FederalTax.InexactFloat64(), row.StateTax.InexactFloat64(), row.IRMAASurcharge.InexactFloat64(),
		row.NIITTax.InexactFloat64(), row.TotalTax.InexactFloat64(),
		row.BalanceTaxable.InexactFloat64(), row.BalanceTraditionalIRA.InexactFloat64(),
		row.BalanceTraditional401k.InexactFloat64(), row.BalanceRothIRA.InexactFloat64(),
		row.BalanceHSA.InexactFloat64(), row.TotalBalance().InexactFloat64(),
		row.Notes,
	}
}
