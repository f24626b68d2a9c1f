package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hostbus/eventroute/internal/core/audit"
)

// AuditAdapter implements storage.AuditStore on event_log and dispatch_log.
type AuditAdapter struct {
	db *sql.DB
}

// NewAuditAdapter wraps a shared connection.
func NewAuditAdapter(db *sql.DB) *AuditAdapter {
	return &AuditAdapter{db: db}
}

// AppendEvents writes a batch in one transaction.
func (a *AuditAdapter) AppendEvents(ctx context.Context, entries []audit.EventLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return a.appendRows(ctx, queryInsertEventLog, len(entries), func(i int) (string, []interface{}) {
		e := entries[i]
		return "event log entry " + e.ID, []interface{}{
			e.ID,
			e.Source,
			e.Type,
			e.Time,
			e.Subject,
			jsonbSafe(e.Payload),
			e.ReceivedAt,
			e.RuleRevision,
			e.MatchedRules,
		}
	})
}

// AppendDispatches writes a batch in one transaction. Records already stored are skipped.
func (a *AuditAdapter) AppendDispatches(ctx context.Context, records []audit.DispatchRecord) error {
	if len(records) == 0 {
		return nil
	}
	return a.appendRows(ctx, queryInsertDispatchLog, len(records), func(i int) (string, []interface{}) {
		r := records[i]
		return "dispatch record " + r.ID, []interface{}{
			r.ID,
			r.EventID,
			r.RuleID,
			r.RuleRevision,
			r.ActionKind,
			r.Target,
			string(r.Outcome),
			r.Error,
			nullableJSON(jsonbSafe(r.Result)),
			r.StartedAt,
			int64(r.Duration),
		}
	})
}

// appendRows inserts n rows in one transaction. If the batch fails it is
// retried row by row, so a row postgres rejects only loses itself; the
// returned error then names every row that could not be stored.
func (a *AuditAdapter) appendRows(ctx context.Context, query string, n int, row func(i int) (string, []interface{})) error {
	batchErr := a.inTx(ctx, query, func(stmt *sql.Stmt) error {
		for i := 0; i < n; i++ {
			name, args := row(i)
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("failed to insert %s: %w", name, err)
			}
		}
		return nil
	})
	if batchErr == nil || n == 1 || ctx.Err() != nil {
		return batchErr
	}

	slog.Warn("[AuditStore] Batch insert failed, retrying rows individually", "error", batchErr, "rows", n)

	var errs []error
	for i := 0; i < n; i++ {
		name, args := row(i)
		if _, err := a.db.ExecContext(ctx, query, args...); err != nil {
			errs = append(errs, fmt.Errorf("failed to insert %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func (a *AuditAdapter) inTx(ctx context.Context, query string, fn func(stmt *sql.Stmt) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer stmt.Close()

	if err := fn(stmt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit audit transaction: %w", err)
	}
	return nil
}

func (a *AuditAdapter) QueryEvents(ctx context.Context, q audit.Query) ([]audit.EventLogEntry, error) {
	var w whereBuilder
	if !q.From.IsZero() {
		w.add("received_at >= $%d", q.From)
	}
	if !q.To.IsZero() {
		w.add("received_at < $%d", q.To)
	}
	if q.EventID != "" {
		w.add("id = $%d", q.EventID)
	}
	query, args := w.finish(querySelectEventLog, "received_at ASC, seq ASC", q.EffectiveLimit())

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query event log: %w", err)
	}
	defer rows.Close()

	var out []audit.EventLogEntry
	for rows.Next() {
		var e audit.EventLogEntry
		var payload []byte
		if err := rows.Scan(
			&e.ID,
			&e.Source,
			&e.Type,
			&e.Time,
			&e.Subject,
			&payload,
			&e.ReceivedAt,
			&e.RuleRevision,
			&e.MatchedRules,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event log row: %w", err)
		}
		e.Payload = payload
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event log: %w", err)
	}
	return out, nil
}

func (a *AuditAdapter) QueryDispatches(ctx context.Context, q audit.Query) ([]audit.DispatchRecord, error) {
	var w whereBuilder
	if !q.From.IsZero() {
		w.add("started_at >= $%d", q.From)
	}
	if !q.To.IsZero() {
		w.add("started_at < $%d", q.To)
	}
	if q.RuleID != "" {
		w.add("rule_id = $%d", q.RuleID)
	}
	if q.EventID != "" {
		w.add("event_id = $%d", q.EventID)
	}
	if q.Outcome != "" {
		w.add("outcome = $%d", string(q.Outcome))
	}
	query, args := w.finish(querySelectDispatchLog, "started_at ASC, id ASC", q.EffectiveLimit())

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatch log: %w", err)
	}
	defer rows.Close()

	var out []audit.DispatchRecord
	for rows.Next() {
		var r audit.DispatchRecord
		var outcome string
		var result []byte
		var durationNS int64
		if err := rows.Scan(
			&r.ID,
			&r.EventID,
			&r.RuleID,
			&r.RuleRevision,
			&r.ActionKind,
			&r.Target,
			&outcome,
			&r.Error,
			&result,
			&r.StartedAt,
			&durationNS,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch row: %w", err)
		}
		r.Outcome = audit.Outcome(outcome)
		r.Result = result
		r.Duration = time.Duration(durationNS)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dispatch log: %w", err)
	}
	return out, nil
}

// PruneBefore removes both logs' entries older than cutoff.
func (a *AuditAdapter) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	for _, query := range []string{queryPruneEventLog, queryPruneDispatchLog} {
		res, err := a.db.ExecContext(ctx, query, cutoff)
		if err != nil {
			return removed, fmt.Errorf("failed to prune audit log: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return removed, fmt.Errorf("failed to read rows affected: %w", err)
		}
		removed += n
	}

	if removed > 0 {
		slog.Debug("[Postgres] Pruned audit log", "cutoff", cutoff, "removed", removed)
	}
	return removed, nil
}
