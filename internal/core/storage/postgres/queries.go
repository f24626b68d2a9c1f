package postgres

// SQL for the rules, enablement and audit tables created by internal/migrations.

const (
	queryInsertRule = `
		INSERT INTO routing_rules (
			id, seq, name, filters, action, enabled, created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	queryReplaceRule = `
		UPDATE routing_rules
		SET name = $2, filters = $3, action = $4, enabled = $5, updated_at = $6
		WHERE id = $1
	`

	queryDeleteRule = `DELETE FROM routing_rules WHERE id = $1`

	querySelectRule = `
		SELECT id, seq, name, filters, action, enabled, created_by, created_at, updated_at
		FROM routing_rules
		WHERE id = $1
	`

	// List order is part of the rule contract: creation time, then seq.
	queryListRules = `
		SELECT id, seq, name, filters, action, enabled, created_by, created_at, updated_at
		FROM routing_rules
		ORDER BY created_at ASC, seq ASC
	`

	queryMaxRuleSeq = `SELECT COALESCE(MAX(seq), 0) FROM routing_rules`

	querySelectGateway = `SELECT enabled FROM enablement_gateways WHERE scope = $1`

	queryUpsertGateway = `
		INSERT INTO enablement_gateways (scope, enabled, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (scope) DO UPDATE SET
			enabled    = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
	`

	// member = '' is the target-level row.
	querySelectOverrides = `
		SELECT member, enabled
		FROM enablement_overrides
		WHERE scope = $1 AND target = $2 AND (member = '' OR member = $3)
	`

	queryUpsertOverride = `
		INSERT INTO enablement_overrides (scope, target, member, enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scope, target, member) DO UPDATE SET
			enabled    = EXCLUDED.enabled,
			updated_at = EXCLUDED.updated_at
	`

	queryDeleteOverride = `
		DELETE FROM enablement_overrides
		WHERE scope = $1 AND target = $2 AND member = $3
	`

	queryDescribeOverrides = `
		SELECT target, member, enabled
		FROM enablement_overrides
		WHERE scope = $1
		ORDER BY target, member
	`

	queryInsertEventLog = `
		INSERT INTO event_log (
			id, source, type, occurred_at, subject, payload,
			received_at, rule_revision, matched_rules
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	queryInsertDispatchLog = `
		INSERT INTO dispatch_log (
			id, event_id, rule_id, rule_revision, action_kind, target,
			outcome, error, result, started_at, duration_ns
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`

	querySelectEventLog = `
		SELECT id, source, type, occurred_at, subject, payload,
			received_at, rule_revision, matched_rules
		FROM event_log
	`

	querySelectDispatchLog = `
		SELECT id, event_id, rule_id, rule_revision, action_kind, target,
			outcome, error, result, started_at, duration_ns
		FROM dispatch_log
	`

	queryPruneEventLog    = `DELETE FROM event_log WHERE received_at < $1`
	queryPruneDispatchLog = `DELETE FROM dispatch_log WHERE started_at < $1`
)
