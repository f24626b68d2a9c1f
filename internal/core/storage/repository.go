package storage

import (
	"context"
	"time"

	"github.com/hostbus/eventroute/internal/core/audit"
	"github.com/hostbus/eventroute/internal/core/rule"
)

// RuleRepository persists routing rules. It does no validation; the rules
// service owns that. Missing ids surface as rule.ErrNotFound.
type RuleRepository interface {
	Insert(ctx context.Context, r rule.Rule) error

	// Replace overwrites every mutable field of an existing rule.
	Replace(ctx context.Context, r rule.Rule) error

	Delete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (rule.Rule, error)

	// List returns all rules ordered by (created_at, seq).
	List(ctx context.Context) ([]rule.Rule, error)

	// MaxSeq returns the highest creation sequence stored, 0 when empty.
	// Used to continue numbering after a restart.
	MaxSeq(ctx context.Context) (int64, error)
}

// AuditStore is the append-only audit log plus its query surface.
type AuditStore interface {
	AppendEvents(ctx context.Context, entries []audit.EventLogEntry) error
	AppendDispatches(ctx context.Context, records []audit.DispatchRecord) error

	// QueryEvents filters on received_at and returns entries oldest first.
	QueryEvents(ctx context.Context, q audit.Query) ([]audit.EventLogEntry, error)

	// QueryDispatches filters on started_at, rule, event and outcome, oldest first.
	QueryDispatches(ctx context.Context, q audit.Query) ([]audit.DispatchRecord, error)

	// PruneBefore deletes entries and records older than cutoff and reports how many went.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
