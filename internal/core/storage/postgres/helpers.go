package postgres

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/filter"
	"github.com/hostbus/eventroute/internal/core/rule"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

// marshalRuleJSON encodes the filter tree and action for the JSONB columns.
// A nil filter list is stored as [] so that the column stays NOT NULL.
func marshalRuleJSON(r rule.Rule) (filtersJSON, actionJSON []byte, err error) {
	filters := r.Filters
	if filters == nil {
		filters = []filter.Filter{}
	}
	filtersJSON, err = filter.MarshalList(filters)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal filters: %w", err)
	}

	actionJSON, err = action.Marshal(r.Action)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal action: %w", err)
	}
	return filtersJSON, actionJSON, nil
}

// scanRuleRow reads one routing_rules row. Works for sql.Row and sql.Rows.
func scanRuleRow(row scanner) (rule.Rule, error) {
	var r rule.Rule
	var filtersJSON, actionJSON []byte

	err := row.Scan(
		&r.ID,
		&r.Seq,
		&r.Name,
		&filtersJSON,
		&actionJSON,
		&r.Enabled,
		&r.CreatedBy,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return rule.Rule{}, err
	}

	r.Filters, err = filter.UnmarshalList(filtersJSON)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("rule %s: failed to unmarshal filters: %w", r.ID, err)
	}
	r.Action, err = action.Unmarshal(actionJSON)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("rule %s: failed to unmarshal action: %w", r.ID, err)
	}
	return r, nil
}

// whereBuilder collects positional predicates for the audit queries.
type whereBuilder struct {
	clauses []string
	args    []interface{}
}

func (w *whereBuilder) add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

// finish appends WHERE, ORDER BY and LIMIT to base.
func (w *whereBuilder) finish(base, orderBy string, limit int) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(base)
	if len(w.clauses) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(w.clauses, " AND "))
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(orderBy)
	w.args = append(w.args, limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(w.args))
	return sb.String(), w.args
}

// jsonbSafe rewrites \u0000 escapes, which jsonb refuses, to \ufffd. Escaped
// backslashes are copied pairwise so a literal "\\u0000" is left alone.
func jsonbSafe(raw []byte) []byte {
	if !bytes.Contains(raw, []byte(`\u0000`)) {
		return raw
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			continue
		}
		if raw[i+1] == 'u' && i+6 <= len(raw) && string(raw[i+2:i+6]) == "0000" {
			out = append(out, `\ufffd`...)
			i += 5
			continue
		}
		out = append(out, c, raw[i+1])
		i++
	}
	return out
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func closeAll(stmts ...*sql.Stmt) {
	for _, s := range stmts {
		if s != nil {
			s.Close()
		}
	}
}
