package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hostbus/eventroute/internal/core/enablement"
)

// EnablementAdapter implements enablement.Store. Every call reads the tables
// directly, so flag changes apply to the next dispatch without a cache.
type EnablementAdapter struct {
	db             *sql.DB
	defaultGateway bool
	now            func() time.Time
}

// NewEnablementAdapter creates a store whose missing gateway rows read as defaultGateway.
func NewEnablementAdapter(db *sql.DB, defaultGateway bool) *EnablementAdapter {
	return &EnablementAdapter{
		db:             db,
		defaultGateway: defaultGateway,
		now:            time.Now,
	}
}

func (a *EnablementAdapter) Flags(ctx context.Context, scope enablement.Scope, target, member string) (enablement.Flags, error) {
	if _, err := enablement.ParseScope(string(scope)); err != nil {
		return enablement.Flags{}, err
	}

	gateway, err := a.gateway(ctx, scope)
	if err != nil {
		return enablement.Flags{}, err
	}
	flags := enablement.Flags{Gateway: gateway}

	rows, err := a.db.QueryContext(ctx, querySelectOverrides, string(scope), target, member)
	if err != nil {
		return enablement.Flags{}, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m string
		var enabled bool
		if err := rows.Scan(&m, &enabled); err != nil {
			return enablement.Flags{}, fmt.Errorf("failed to scan override row: %w", err)
		}
		if m == "" {
			flags.Target = enablement.Bool(enabled)
		} else {
			flags.Member = enablement.Bool(enabled)
		}
	}
	if err := rows.Err(); err != nil {
		return enablement.Flags{}, fmt.Errorf("error iterating overrides: %w", err)
	}
	return flags, nil
}

func (a *EnablementAdapter) gateway(ctx context.Context, scope enablement.Scope) (bool, error) {
	var enabled bool
	err := a.db.QueryRowContext(ctx, querySelectGateway, string(scope)).Scan(&enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return a.defaultGateway, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read gateway flag: %w", err)
	}
	return enabled, nil
}

func (a *EnablementAdapter) SetGateway(ctx context.Context, scope enablement.Scope, enabled bool) error {
	if _, err := enablement.ParseScope(string(scope)); err != nil {
		return err
	}
	if _, err := a.db.ExecContext(ctx, queryUpsertGateway, string(scope), enabled, a.now().UTC()); err != nil {
		return fmt.Errorf("failed to set gateway flag: %w", err)
	}
	return nil
}

func (a *EnablementAdapter) SetTargetOverride(ctx context.Context, scope enablement.Scope, target string, enabled *bool) error {
	return a.setOverride(ctx, scope, target, "", enabled)
}

func (a *EnablementAdapter) SetMemberOverride(ctx context.Context, scope enablement.Scope, target, member string, enabled *bool) error {
	if member == "" {
		return fmt.Errorf("member is required")
	}
	return a.setOverride(ctx, scope, target, member, enabled)
}

func (a *EnablementAdapter) setOverride(ctx context.Context, scope enablement.Scope, target, member string, enabled *bool) error {
	if _, err := enablement.ParseScope(string(scope)); err != nil {
		return err
	}

	if enabled == nil {
		if _, err := a.db.ExecContext(ctx, queryDeleteOverride, string(scope), target, member); err != nil {
			return fmt.Errorf("failed to clear override: %w", err)
		}
		return nil
	}

	if _, err := a.db.ExecContext(ctx, queryUpsertOverride, string(scope), target, member, *enabled, a.now().UTC()); err != nil {
		return fmt.Errorf("failed to set override: %w", err)
	}
	return nil
}

func (a *EnablementAdapter) Describe(ctx context.Context, scope enablement.Scope) (enablement.Overview, error) {
	if _, err := enablement.ParseScope(string(scope)); err != nil {
		return enablement.Overview{}, err
	}

	gateway, err := a.gateway(ctx, scope)
	if err != nil {
		return enablement.Overview{}, err
	}
	ov := enablement.Overview{
		Scope:   scope,
		Gateway: gateway,
		Targets: make(map[string]bool),
		Members: make(map[string]map[string]bool),
	}

	rows, err := a.db.QueryContext(ctx, queryDescribeOverrides, string(scope))
	if err != nil {
		return enablement.Overview{}, fmt.Errorf("failed to query overrides: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target, member string
		var enabled bool
		if err := rows.Scan(&target, &member, &enabled); err != nil {
			return enablement.Overview{}, fmt.Errorf("failed to scan override row: %w", err)
		}
		if member == "" {
			ov.Targets[target] = enabled
			continue
		}
		if ov.Members[target] == nil {
			ov.Members[target] = make(map[string]bool)
		}
		ov.Members[target][member] = enabled
	}
	if err := rows.Err(); err != nil {
		return enablement.Overview{}, fmt.Errorf("error iterating overrides: %w", err)
	}
	return ov, nil
}
