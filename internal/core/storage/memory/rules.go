// Package memory holds in-process implementations of the storage interfaces.
// Useful for tests, development and single-node deployments without postgres.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hostbus/eventroute/internal/core/filter"
	"github.com/hostbus/eventroute/internal/core/rule"
)

// RuleRepository is an in-memory storage.RuleRepository.
type RuleRepository struct {
	mu    sync.RWMutex
	rules map[string]rule.Rule
}

// NewRuleRepository creates an empty repository.
func NewRuleRepository() *RuleRepository {
	return &RuleRepository{
		rules: make(map[string]rule.Rule),
	}
}

func (r *RuleRepository) Insert(_ context.Context, rl rule.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules[rl.ID] = cloneRule(rl)
	return nil
}

func (r *RuleRepository) Replace(_ context.Context, rl rule.Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rl.ID]; !exists {
		return rule.ErrNotFound
	}
	r.rules[rl.ID] = cloneRule(rl)
	return nil
}

func (r *RuleRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[id]; !exists {
		return rule.ErrNotFound
	}
	delete(r.rules, id)
	return nil
}

func (r *RuleRepository) Get(_ context.Context, id string) (rule.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rl, exists := r.rules[id]
	if !exists {
		return rule.Rule{}, rule.ErrNotFound
	}
	return cloneRule(rl), nil
}

func (r *RuleRepository) List(_ context.Context) ([]rule.Rule, error) {
	r.mu.RLock()
	out := make([]rule.Rule, 0, len(r.rules))
	for _, rl := range r.rules {
		out = append(out, cloneRule(rl))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Seq < out[j].Seq
	})
	return out, nil
}

func (r *RuleRepository) MaxSeq(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var highest int64
	for _, rl := range r.rules {
		if rl.Seq > highest {
			highest = rl.Seq
		}
	}
	return highest, nil
}

// cloneRule copies the filter slice so callers cannot alter stored state.
// Filter nodes and actions are immutable values once validated.
func cloneRule(rl rule.Rule) rule.Rule {
	if rl.Filters != nil {
		filters := make([]filter.Filter, len(rl.Filters))
		copy(filters, rl.Filters)
		rl.Filters = filters
	}
	return rl
}
