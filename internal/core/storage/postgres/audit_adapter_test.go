package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hostbus/eventroute/internal/core/audit"
	"github.com/stretchr/testify/require"
)

func TestAuditAdapter_AppendDispatches(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	started := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	records := []audit.DispatchRecord{
		{
			ID: "d-1", EventID: "e-1", RuleID: "r-1", RuleRevision: 3,
			ActionKind: "invoke_plugin_tool", Target: "p/t",
			Outcome: audit.OutcomeSuccess, Result: json.RawMessage(`{"ok":true}`),
			StartedAt: started, Duration: 15 * time.Millisecond,
		},
		{
			ID: "d-2", EventID: "e-1", RuleID: "r-2", RuleRevision: 3,
			ActionKind: "call_extension", Target: "e/op",
			Outcome: audit.OutcomePolicyDenied, Error: "extension gateway disabled",
			StartedAt: started,
		},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertDispatchLog))
	prep.ExpectExec().
		WithArgs("d-1", "e-1", "r-1", int64(3), "invoke_plugin_tool", "p/t", "success", "",
			[]byte(`{"ok":true}`), started, int64(15*time.Millisecond)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs("d-2", "e-1", "r-2", int64(3), "call_extension", "e/op", "policy_denied",
			"extension gateway disabled", nil, started, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	adapter := NewAuditAdapter(db)
	require.NoError(t, adapter.AppendDispatches(context.Background(), records))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_AppendEventsRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEventLog)).
		ExpectExec().
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	adapter := NewAuditAdapter(db)
	err = adapter.AppendEvents(context.Background(), []audit.EventLogEntry{
		{ID: "e-1", Source: "/s", Type: "t", Time: now, Payload: json.RawMessage(`{}`), ReceivedAt: now},
	})
	require.ErrorContains(t, err, "failed to insert event log entry e-1")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_AppendEventsFallsBackToSingleRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)
	entries := []audit.EventLogEntry{
		{ID: "e-1", Source: "/s", Type: "t", Time: now, Payload: json.RawMessage(`{"n":1}`), ReceivedAt: now},
		{ID: "e-2", Source: "/s", Type: "t", Time: now, Payload: json.RawMessage(`{"n":2}`), ReceivedAt: now},
		{ID: "e-3", Source: "/s", Type: "t", Time: now, Payload: json.RawMessage(`{"n":3}`), ReceivedAt: now},
	}
	args := func(e audit.EventLogEntry) []driver.Value {
		return []driver.Value{e.ID, e.Source, e.Type, e.Time, e.Subject, []byte(e.Payload), e.ReceivedAt, e.RuleRevision, e.MatchedRules}
	}
	rejected := errors.New("value too long for type")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(queryInsertEventLog))
	prep.ExpectExec().WithArgs(args(entries[0])...).WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs(args(entries[1])...).WillReturnError(rejected)
	mock.ExpectRollback()

	insert := regexp.QuoteMeta(queryInsertEventLog)
	mock.ExpectExec(insert).WithArgs(args(entries[0])...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).WithArgs(args(entries[1])...).WillReturnError(rejected)
	mock.ExpectExec(insert).WithArgs(args(entries[2])...).WillReturnResult(sqlmock.NewResult(3, 1))

	adapter := NewAuditAdapter(db)
	err = adapter.AppendEvents(context.Background(), entries)
	require.ErrorIs(t, err, rejected)
	require.ErrorContains(t, err, "event log entry e-2")
	require.NotContains(t, err.Error(), "e-1")
	require.NotContains(t, err.Error(), "e-3")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_AppendDispatchesStripsNULEscapes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	started := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectPrepare(regexp.QuoteMeta(queryInsertDispatchLog)).
		ExpectExec().
		WithArgs("d-1", "e-1", "r-1", int64(1), "invoke_plugin_tool", "p/t", "success", "",
			[]byte(`{"out":"a\ufffdb","path":"c:\\u0000"}`), started, int64(0)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	adapter := NewAuditAdapter(db)
	require.NoError(t, adapter.AppendDispatches(context.Background(), []audit.DispatchRecord{{
		ID: "d-1", EventID: "e-1", RuleID: "r-1", RuleRevision: 1,
		ActionKind: "invoke_plugin_tool", Target: "p/t", Outcome: audit.OutcomeSuccess,
		Result:    json.RawMessage(`{"out":"a\u0000b","path":"c:\\u0000"}`),
		StartedAt: started,
	}}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJSONBSafe(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"untouched", `{"a":"b"}`, `{"a":"b"}`},
		{"nul escape", `{"a":"x\u0000y"}`, `{"a":"x\ufffdy"}`},
		{"escaped backslash", `{"a":"\\u0000"}`, `{"a":"\\u0000"}`},
		{"mixed", `["\\\u0000"]`, `["\\\ufffd"]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := jsonbSafe([]byte(tc.in))
			require.Equal(t, tc.want, string(got))
			require.True(t, json.Valid(got))
		})
	}
}

func TestAuditAdapter_AppendEmptyIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	adapter := NewAuditAdapter(db)
	require.NoError(t, adapter.AppendEvents(context.Background(), nil))
	require.NoError(t, adapter.AppendDispatches(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_QueryDispatchesBuildsFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	started := from.Add(time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE started_at >= $1 AND rule_id = $2 AND outcome = $3 ORDER BY started_at ASC, id ASC LIMIT $4")).
		WithArgs(from, "r-1", "timeout", 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "event_id", "rule_id", "rule_revision", "action_kind", "target",
			"outcome", "error", "result", "started_at", "duration_ns",
		}).AddRow("d-1", "e-1", "r-1", int64(2), "call_extension", "e/op",
			"timeout", "deadline exceeded", nil, started, int64(5*time.Second)))

	adapter := NewAuditAdapter(db)
	out, err := adapter.QueryDispatches(context.Background(), audit.Query{
		From:    from,
		RuleID:  "r-1",
		Outcome: audit.OutcomeTimeout,
		Limit:   50,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, audit.OutcomeTimeout, out[0].Outcome)
	require.Equal(t, 5*time.Second, out[0].Duration)
	require.Nil(t, out[0].Result)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_QueryEventsDefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY received_at ASC, seq ASC LIMIT $1")).
		WithArgs(audit.DefaultQueryLimit).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "source", "type", "occurred_at", "subject", "payload",
			"received_at", "rule_revision", "matched_rules",
		}).AddRow("e-1", "/chat", "chat.message", at, "", []byte(`{"id":"e-1"}`), at, int64(4), 2))

	adapter := NewAuditAdapter(db)
	out, err := adapter.QueryEvents(context.Background(), audit.Query{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 2, out[0].MatchedRules)
	require.JSONEq(t, `{"id":"e-1"}`, string(out[0].Payload))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditAdapter_PruneBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(queryPruneEventLog)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(queryPruneDispatchLog)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 6))

	adapter := NewAuditAdapter(db)
	removed, err := adapter.PruneBefore(context.Background(), cutoff)
	require.NoError(t, err)
	require.Equal(t, int64(10), removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
