// Package audit defines the append-only records the routing engine keeps for
// operator inspection.
package audit

import (
	"encoding/json"
	"fmt"
	"time"
)

// Outcome classifies a dispatch attempt.
type Outcome string

const (
	// OutcomeSuccess means the external port accepted the call.
	OutcomeSuccess Outcome = "success"
	// OutcomePolicyDenied means the enablement cascade vetoed the target. Expected, not an error.
	OutcomePolicyDenied Outcome = "policy_denied"
	// OutcomeFailure means the port returned an error or the call could not be made.
	OutcomeFailure Outcome = "failure"
	// OutcomeTimeout means the port did not answer within the dispatch budget.
	OutcomeTimeout Outcome = "timeout"
)

// ParseOutcome validates an outcome name from a query string.
func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeSuccess, OutcomePolicyDenied, OutcomeFailure, OutcomeTimeout:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}

// EventLogEntry is written exactly once per received event.
type EventLogEntry struct {
	ID           string          `json:"id"`
	Source       string          `json:"source"`
	Type         string          `json:"type"`
	Time         time.Time       `json:"time"`
	Subject      string          `json:"subject,omitempty"`
	Payload      json.RawMessage `json:"payload"`
	ReceivedAt   time.Time       `json:"received_at"`
	RuleRevision int64           `json:"rule_revision"`
	MatchedRules int             `json:"matched_rules"`
}

// DispatchRecord is written exactly once per matched rule.
type DispatchRecord struct {
	ID           string          `json:"id"`
	EventID      string          `json:"event_id"`
	RuleID       string          `json:"rule_id"`
	RuleRevision int64           `json:"rule_revision"`
	ActionKind   string          `json:"action_kind"`
	Target       string          `json:"target"`
	Outcome      Outcome         `json:"outcome"`
	Error        string          `json:"error,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     time.Duration   `json:"duration_ns"`
}

// Query filters audit reads. Zero values mean "no constraint"; From is
// inclusive and To exclusive.
type Query struct {
	From    time.Time
	To      time.Time
	RuleID  string
	EventID string
	Outcome Outcome
	Limit   int
}

const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = 1000
)

// EffectiveLimit clamps Limit into (0, MaxQueryLimit].
func (q Query) EffectiveLimit() int {
	switch {
	case q.Limit <= 0:
		return DefaultQueryLimit
	case q.Limit > MaxQueryLimit:
		return MaxQueryLimit
	default:
		return q.Limit
	}
}

// InRange reports whether t falls inside [From, To).
func (q Query) InRange(t time.Time) bool {
	if !q.From.IsZero() && t.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && !t.Before(q.To) {
		return false
	}
	return true
}

// MatchesDispatch applies every dispatch filter of q.
func (q Query) MatchesDispatch(r DispatchRecord) bool {
	if !q.InRange(r.StartedAt) {
		return false
	}
	if q.RuleID != "" && r.RuleID != q.RuleID {
		return false
	}
	if q.EventID != "" && r.EventID != q.EventID {
		return false
	}
	if q.Outcome != "" && r.Outcome != q.Outcome {
		return false
	}
	return true
}
