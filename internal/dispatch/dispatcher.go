// Package dispatch executes a matched rule's action against the external
// ports, gated by the enablement cascade and bounded by a timeout.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/audit"
	"github.com/hostbus/eventroute/internal/core/enablement"
)

// DefaultTimeout bounds a port call when none is configured.
const DefaultTimeout = 10 * time.Second

var (
	// ErrPortUnavailable means no port is wired for the action kind.
	ErrPortUnavailable = errors.New("port not configured")
	// ErrPolicyDenied explains a PolicyDenied result.
	ErrPolicyDenied = errors.New("disabled by enablement policy")
)

// Result is the outcome of one dispatch. Err is set for every outcome except
// success; Output carries the port's reply when it has one.
type Result struct {
	Outcome  audit.Outcome
	Err      error
	Output   json.RawMessage
	Duration time.Duration
}

// Dispatcher never returns an error from Dispatch: every failure becomes a Result.
type Dispatcher struct {
	gate     enablement.Store
	tools    ToolInvoker
	exts     ExtensionCaller
	frontend Broadcaster
	timeout  time.Duration
}

// New creates a dispatcher. Nil ports are allowed; dispatches to them fail
// with ErrPortUnavailable.
func New(gate enablement.Store, tools ToolInvoker, exts ExtensionCaller, frontend Broadcaster, timeout time.Duration) *Dispatcher {
	if gate == nil {
		panic("dispatch: enablement store must not be nil")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		gate:     gate,
		tools:    tools,
		exts:     exts,
		frontend: frontend,
		timeout:  timeout,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, act action.Action, evt *v1.Event) Result {
	start := time.Now()
	res := d.dispatch(ctx, act, evt)
	res.Duration = time.Since(start)

	if res.Outcome == audit.OutcomeFailure || res.Outcome == audit.OutcomeTimeout {
		slog.Warn("[Dispatcher] Dispatch did not succeed",
			"event_id", evt.ID,
			"action_kind", kindOf(act),
			"outcome", res.Outcome,
			"error", res.Err)
	} else {
		slog.Debug("[Dispatcher] Dispatch finished",
			"event_id", evt.ID,
			"action_kind", kindOf(act),
			"outcome", res.Outcome,
			"duration", res.Duration)
	}
	return res
}

func (d *Dispatcher) dispatch(ctx context.Context, act action.Action, evt *v1.Event) Result {
	switch a := act.(type) {
	case action.InvokePluginTool:
		if res, ok := d.checkGate(ctx, enablement.ScopePlugin, a.PluginID, a.ToolName); !ok {
			return res
		}
		if d.tools == nil {
			return failure(fmt.Errorf("plugin tool %s: %w", a.Target(), ErrPortUnavailable))
		}
		args, err := action.Render(a.ArgsTemplate, evt)
		if err != nil {
			return failure(fmt.Errorf("render args: %w", err))
		}
		return d.call(ctx, func(ctx context.Context) (json.RawMessage, error) {
			return d.tools.InvokeTool(ctx, a.PluginID, a.ToolName, args)
		})

	case action.CallExtension:
		if res, ok := d.checkGate(ctx, enablement.ScopeExtension, a.ExtensionID, a.Operation); !ok {
			return res
		}
		if d.exts == nil {
			return failure(fmt.Errorf("extension operation %s: %w", a.Target(), ErrPortUnavailable))
		}
		args, err := action.Render(a.ArgsTemplate, evt)
		if err != nil {
			return failure(fmt.Errorf("render args: %w", err))
		}
		return d.call(ctx, func(ctx context.Context) (json.RawMessage, error) {
			return d.exts.CallOperation(ctx, a.ExtensionID, a.Operation, args)
		})

	case action.EmitFrontend:
		if d.frontend == nil {
			return failure(fmt.Errorf("frontend %s: %w", a.Target(), ErrPortUnavailable))
		}
		payload := evt.Payload()
		return d.call(ctx, func(ctx context.Context) (json.RawMessage, error) {
			return nil, d.frontend.Broadcast(ctx, a.Channel, payload)
		})

	case nil:
		return failure(errors.New("rule has no action"))

	default:
		return failure(fmt.Errorf("unsupported action %T", act))
	}
}

// checkGate re-reads the enablement flags. Store errors fail closed.
func (d *Dispatcher) checkGate(ctx context.Context, scope enablement.Scope, target, member string) (Result, bool) {
	flags, err := d.gate.Flags(ctx, scope, target, member)
	if err != nil {
		return failure(fmt.Errorf("enablement lookup for %s %s/%s: %w", scope, target, member, err)), false
	}
	if !flags.Enabled(scope) {
		return Result{
			Outcome: audit.OutcomePolicyDenied,
			Err:     fmt.Errorf("%s %s/%s: %w", scope, target, member, ErrPolicyDenied),
		}, false
	}
	return Result{}, true
}

type reply struct {
	out json.RawMessage
	err error
}

// call runs fn under the dispatch timeout. The wait is on the deadline, not
// on fn, so a port that ignores its context still times out on schedule.
func (d *Dispatcher) call(ctx context.Context, fn func(ctx context.Context) (json.RawMessage, error)) Result {
	callCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	done := make(chan reply, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- reply{err: fmt.Errorf("port panicked: %v", p)}
			}
		}()
		out, err := fn(callCtx)
		done <- reply{out: out, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			if errors.Is(r.err, context.DeadlineExceeded) && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
				return Result{Outcome: audit.OutcomeTimeout, Err: r.err}
			}
			return failure(r.err)
		}
		return Result{Outcome: audit.OutcomeSuccess, Output: r.out}
	case <-callCtx.Done():
		err := callCtx.Err()
		if errors.Is(err, context.DeadlineExceeded) {
			return Result{Outcome: audit.OutcomeTimeout, Err: fmt.Errorf("no reply within %s: %w", d.timeout, err)}
		}
		return failure(fmt.Errorf("dispatch cancelled: %w", err))
	}
}

func failure(err error) Result {
	return Result{Outcome: audit.OutcomeFailure, Err: err}
}

func kindOf(act action.Action) string {
	if act == nil {
		return ""
	}
	return string(act.Kind())
}
