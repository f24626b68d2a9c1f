package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hostbus/eventroute/internal/core/rule"
)

// RuleAdapter implements storage.RuleRepository on the routing_rules table.
type RuleAdapter struct {
	db          *sql.DB
	stmtInsert  *sql.Stmt
	stmtReplace *sql.Stmt
	stmtDelete  *sql.Stmt
	stmtSelect  *sql.Stmt
	stmtList    *sql.Stmt
}

// NewRuleAdapter prepares the rule statements on db.
func NewRuleAdapter(db *sql.DB) (*RuleAdapter, error) {
	a := &RuleAdapter{db: db}

	prepared := []struct {
		dst   **sql.Stmt
		query string
		name  string
	}{
		{&a.stmtInsert, queryInsertRule, "insertRule"},
		{&a.stmtReplace, queryReplaceRule, "replaceRule"},
		{&a.stmtDelete, queryDeleteRule, "deleteRule"},
		{&a.stmtSelect, querySelectRule, "selectRule"},
		{&a.stmtList, queryListRules, "listRules"},
	}
	for _, p := range prepared {
		stmt, err := db.Prepare(p.query)
		if err != nil {
			a.closeStatements()
			return nil, fmt.Errorf("failed to prepare %s statement: %w", p.name, err)
		}
		*p.dst = stmt
	}

	slog.Info("[Postgres] Rule adapter initialized with prepared statements")
	return a, nil
}

func (a *RuleAdapter) Insert(ctx context.Context, r rule.Rule) error {
	filtersJSON, actionJSON, err := marshalRuleJSON(r)
	if err != nil {
		return err
	}

	_, err = a.stmtInsert.ExecContext(ctx,
		r.ID,
		r.Seq,
		r.Name,
		filtersJSON,
		actionJSON,
		r.Enabled,
		r.CreatedBy,
		r.CreatedAt,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	slog.Debug("[Postgres] Inserted rule", "rule_id", r.ID, "seq", r.Seq)
	return nil
}

func (a *RuleAdapter) Replace(ctx context.Context, r rule.Rule) error {
	filtersJSON, actionJSON, err := marshalRuleJSON(r)
	if err != nil {
		return err
	}

	res, err := a.stmtReplace.ExecContext(ctx,
		r.ID,
		r.Name,
		filtersJSON,
		actionJSON,
		r.Enabled,
		r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace rule: %w", err)
	}
	return requireOneRow(res, r.ID)
}

func (a *RuleAdapter) Delete(ctx context.Context, id string) error {
	res, err := a.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return requireOneRow(res, id)
}

func (a *RuleAdapter) Get(ctx context.Context, id string) (rule.Rule, error) {
	r, err := scanRuleRow(a.stmtSelect.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return rule.Rule{}, &rule.NotFoundError{ID: id}
	}
	if err != nil {
		return rule.Rule{}, fmt.Errorf("failed to get rule: %w", err)
	}
	return r, nil
}

func (a *RuleAdapter) List(ctx context.Context) ([]rule.Rule, error) {
	rows, err := a.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []rule.Rule
	for rows.Next() {
		r, err := scanRuleRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rules: %w", err)
	}
	return rules, nil
}

func (a *RuleAdapter) MaxSeq(ctx context.Context) (int64, error) {
	var seq int64
	if err := a.db.QueryRowContext(ctx, queryMaxRuleSeq).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to read max rule seq: %w", err)
	}
	return seq, nil
}

// Close releases the prepared statements. The shared *sql.DB is closed by its owner.
func (a *RuleAdapter) Close() error {
	a.closeStatements()
	return nil
}

func (a *RuleAdapter) closeStatements() {
	closeAll(a.stmtInsert, a.stmtReplace, a.stmtDelete, a.stmtSelect, a.stmtList)
}

func requireOneRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return &rule.NotFoundError{ID: id}
	}
	return nil
}
