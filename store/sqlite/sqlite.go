/*
Package sqlite provides the SQLite-backed implementation of the report
history store.

PURPOSE:

	Implements report.Store using an embedded SQLite database so report
	history survives process restarts. The logical contract (one report
	per upload date, replace-on-reupload, date-ascending order) lives in
	the interface; this package maps it to SQL.

KEY TABLES:

	reports:         One row per upload date. upload_date is the primary
	                 key, so upsert-by-date is a single ON CONFLICT write.
	agent_summaries: Per-agent leaderboard rows behind each report
	                 revision, positioned in statement order.

UPSERT ATOMICITY:

	A re-upload replaces both the report row and its summaries inside one
	SQL transaction. Readers never observe a report from one upload paired
	with summaries from another.

AMOUNTS:

	Dollar amounts are stored as decimal strings, never REAL. They round-
	trip through shopspring/decimal without precision loss.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
	- Multiple readers don't block
	- Single writer at a time
	- Better crash recovery

USAGE:

	store, err := sqlite.New("./data/commission.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

SEE ALSO:
  - report/report.go: Interface definition
  - report/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/hcs/commission-engine/commission"
	"github.com/hcs/commission-engine/report"
)

// Store implements report.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Report history, one row per upload date
	CREATE TABLE IF NOT EXISTS reports (
		upload_date TEXT PRIMARY KEY,
		batch_id TEXT NOT NULL,
		total_deals INTEGER NOT NULL,
		agent_payout TEXT NOT NULL,
		owner_revenue TEXT NOT NULL,
		owner_profit TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Per-agent leaderboard rows behind each report revision
	CREATE TABLE IF NOT EXISTS agent_summaries (
		upload_date TEXT NOT NULL REFERENCES reports(upload_date) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		agent TEXT NOT NULL,
		paid_deals INTEGER NOT NULL,
		agent_payout TEXT NOT NULL,
		owner_profit TEXT NOT NULL,
		net_paid TEXT NOT NULL,
		PRIMARY KEY (upload_date, position)
	);

	CREATE INDEX IF NOT EXISTS idx_agent_summaries_agent
		ON agent_summaries(agent);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// REPORT STORE (report.Store interface)
// =============================================================================

// Upsert writes the report and its summaries for one upload date,
// replacing any previous revision, atomically.
func (s *Store) Upsert(ctx context.Context, r report.Report, summaries []commission.AgentSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports
		(upload_date, batch_id, total_deals, agent_payout, owner_revenue, owner_profit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(upload_date) DO UPDATE SET
			batch_id = excluded.batch_id,
			total_deals = excluded.total_deals,
			agent_payout = excluded.agent_payout,
			owner_revenue = excluded.owner_revenue,
			owner_profit = excluded.owner_profit,
			updated_at = excluded.updated_at
	`,
		r.UploadDate,
		r.BatchID.String(),
		r.TotalDeals,
		r.AgentPayout.String(),
		r.OwnerRevenue.String(),
		r.OwnerProfit.String(),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert report: %w", err)
	}

	// Replace the summaries wholesale; a revision is all-or-nothing.
	if _, err := tx.ExecContext(ctx, `DELETE FROM agent_summaries WHERE upload_date = ?`, r.UploadDate); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}

	for i, sum := range summaries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO agent_summaries
			(upload_date, position, agent, paid_deals, agent_payout, owner_profit, net_paid)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			r.UploadDate,
			i,
			sum.Agent,
			sum.PaidDeals,
			sum.AgentPayout.String(),
			sum.OwnerProfit.String(),
			sum.NetPaid.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert summary for %s: %w", sum.Agent, err)
		}
	}

	return tx.Commit()
}

// Latest returns the report with the maximum upload date.
func (s *Store) Latest(ctx context.Context) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT upload_date, batch_id, total_deals, agent_payout, owner_revenue, owner_profit
		FROM reports
		ORDER BY upload_date DESC
		LIMIT 1
	`)
	return scanReport(row)
}

// Get returns the report for one upload date.
func (s *Store) Get(ctx context.Context, uploadDate string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT upload_date, batch_id, total_deals, agent_payout, owner_revenue, owner_profit
		FROM reports
		WHERE upload_date = ?
	`, uploadDate)
	return scanReport(row)
}

// All returns the full history ordered by upload date ascending.
func (s *Store) All(ctx context.Context) ([]report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT upload_date, batch_id, total_deals, agent_payout, owner_revenue, owner_profit
		FROM reports
		ORDER BY upload_date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var out []report.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summaries returns the per-agent rows behind one report, in statement
// order.
func (s *Store) Summaries(ctx context.Context, uploadDate string) ([]commission.AgentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// The date must have a report even when it has zero summary rows.
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reports WHERE upload_date = ?`, uploadDate).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check report: %w", err)
	}
	if exists == 0 {
		return nil, report.ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT agent, paid_deals, agent_payout, owner_profit, net_paid
		FROM agent_summaries
		WHERE upload_date = ?
		ORDER BY position ASC
	`, uploadDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []commission.AgentSummary
	for rows.Next() {
		var sum commission.AgentSummary
		var payout, profit, netPaid string
		if err := rows.Scan(&sum.Agent, &sum.PaidDeals, &payout, &profit, &netPaid); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		if sum.AgentPayout, err = decimal.NewFromString(payout); err != nil {
			return nil, fmt.Errorf("corrupt agent_payout for %s: %w", sum.Agent, err)
		}
		if sum.OwnerProfit, err = decimal.NewFromString(profit); err != nil {
			return nil, fmt.Errorf("corrupt owner_profit for %s: %w", sum.Agent, err)
		}
		if sum.NetPaid, err = decimal.NewFromString(netPaid); err != nil {
			return nil, fmt.Errorf("corrupt net_paid for %s: %w", sum.Agent, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (report.Report, error) {
	var r report.Report
	var batchID, payout, revenue, profit string

	err := row.Scan(&r.UploadDate, &batchID, &r.TotalDeals, &payout, &revenue, &profit)
	if err == sql.ErrNoRows {
		return report.Report{}, report.ErrNotFound
	}
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to scan report: %w", err)
	}

	if r.BatchID, err = uuid.Parse(batchID); err != nil {
		return report.Report{}, fmt.Errorf("corrupt batch_id %q: %w", batchID, err)
	}
	if r.AgentPayout, err = decimal.NewFromString(payout); err != nil {
		return report.Report{}, fmt.Errorf("corrupt agent_payout: %w", err)
	}
	if r.OwnerRevenue, err = decimal.NewFromString(revenue); err != nil {
		return report.Report{}, fmt.Errorf("corrupt owner_revenue: %w", err)
	}
	if r.OwnerProfit, err = decimal.NewFromString(profit); err != nil {
		return report.Report{}, fmt.Errorf("corrupt owner_profit: %w", err)
	}
	return r, nil
}
