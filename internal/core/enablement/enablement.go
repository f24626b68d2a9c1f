// Package enablement resolves whether an action target may fire, from a
// global gateway flag plus optional per-target and per-member overrides.
package enablement

import (
	"context"
	"errors"
	"fmt"
)

// Scope separates the plugin and extension policy trees.
type Scope string

const (
	// ScopePlugin gates invoke_plugin_tool: target = plugin id, member = tool name.
	ScopePlugin Scope = "plugin"
	// ScopeExtension gates call_extension: target = extension id, member = operation.
	ScopeExtension Scope = "extension"
)

// ErrUnknownScope is returned for scopes other than plugin and extension.
var ErrUnknownScope = errors.New("unknown enablement scope")

// ParseScope validates a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopePlugin, ScopeExtension:
		return Scope(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScope, s)
	}
}

// State is the top level of the cascade for one scope.
type State struct {
	Scope          Scope
	GatewayEnabled bool
}

// EffectiveEnabled resolves the cascade. Deny wins: the gateway must be on,
// and an explicit false at the target or member level vetoes regardless of
// what the other level says. Absent overrides inherit, so the default once
// the gateway is on is enabled.
func EffectiveEnabled(scope State, pluginOverride, toolOverride *bool) bool {
	if !scope.GatewayEnabled {
		return false
	}
	if pluginOverride != nil && !*pluginOverride {
		return false
	}
	if toolOverride != nil && !*toolOverride {
		return false
	}
	return true
}

// Flags is what a store returns for one (scope, target, member) lookup.
type Flags struct {
	Gateway bool
	Target  *bool
	Member  *bool
}

// Enabled applies EffectiveEnabled to the flags.
func (f Flags) Enabled(scope Scope) bool {
	return EffectiveEnabled(State{Scope: scope, GatewayEnabled: f.Gateway}, f.Target, f.Member)
}

// Overview is the full flag set of one scope, for the admin surface.
type Overview struct {
	Scope   Scope                      `json:"scope"`
	Gateway bool                       `json:"gateway"`
	Targets map[string]bool            `json:"targets"`
	Members map[string]map[string]bool `json:"members"`
}

// Store persists the three flag levels. Implementations must be safe for
// concurrent use; callers re-read on every decision.
type Store interface {
	Flags(ctx context.Context, scope Scope, target, member string) (Flags, error)
	SetGateway(ctx context.Context, scope Scope, enabled bool) error
	// SetTargetOverride sets or, with nil, clears a target-level override.
	SetTargetOverride(ctx context.Context, scope Scope, target string, enabled *bool) error
	// SetMemberOverride sets or, with nil, clears a member-level override.
	SetMemberOverride(ctx context.Context, scope Scope, target, member string, enabled *bool) error
	Describe(ctx context.Context, scope Scope) (Overview, error)
}

// Bool returns a pointer to b, for overrides.
func Bool(b bool) *bool {
	return &b
}
