// Package rules is the rule store service: validated CRUD over a
// storage.RuleRepository, a monotonically increasing revision and change
// notifications for the routing coordinator.
package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hostbus/eventroute/internal/core/rule"
	"github.com/hostbus/eventroute/internal/core/storage"
)

// ChangeNotice tells subscribers that the rule set reached Revision.
// Notices coalesce: a slow subscriber only ever sees the latest one.
type ChangeNotice struct {
	Revision int64
}

// Store serializes mutations per rule id and bumps the revision after every
// successful write.
type Store struct {
	repo  storage.RuleRepository
	locks *keyedMutex

	seq      atomic.Int64
	revision atomic.Int64

	subMu sync.Mutex
	subs  map[chan ChangeNotice]struct{}

	now   func() time.Time
	newID func() string
}

// NewStore resumes creation numbering from what repo already holds.
func NewStore(ctx context.Context, repo storage.RuleRepository) (*Store, error) {
	if repo == nil {
		panic("rules: repository must not be nil")
	}

	maxSeq, err := repo.MaxSeq(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule sequence: %w", err)
	}

	s := &Store{
		repo:  repo,
		locks: newKeyedMutex(),
		subs:  make(map[chan ChangeNotice]struct{}),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	s.seq.Store(maxSeq)
	s.revision.Store(1)
	return s, nil
}

// Revision is the current rule set revision. It starts at 1.
func (s *Store) Revision() int64 {
	return s.revision.Load()
}

func (s *Store) Create(ctx context.Context, d rule.Draft) (rule.Rule, error) {
	if err := rule.ValidateDraft(d); err != nil {
		return rule.Rule{}, err
	}

	now := s.now()
	r := rule.Rule{
		ID:        s.newID(),
		Name:      d.Name,
		Filters:   d.Filters,
		Action:    d.Action,
		Enabled:   d.Enabled,
		CreatedBy: d.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	unlock := s.locks.Lock(r.ID)
	defer unlock()

	r.Seq = s.seq.Add(1)
	if err := s.repo.Insert(ctx, r); err != nil {
		return rule.Rule{}, fmt.Errorf("failed to store rule: %w", err)
	}

	rev := s.bump()
	slog.Info("[RuleStore] Rule created", "rule_id", r.ID, "name", r.Name, "created_by", r.CreatedBy, "revision", rev)
	return r, nil
}

// Update applies p to the stored rule and re-validates the merged result.
func (s *Store) Update(ctx context.Context, id string, p rule.Patch) (rule.Rule, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return rule.Rule{}, notFound(id, err)
	}

	updated := p.Apply(current)
	if err := rule.Validate(updated.Name, updated.Filters, updated.Action); err != nil {
		return rule.Rule{}, err
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, updated); err != nil {
		return rule.Rule{}, notFound(id, err)
	}

	rev := s.bump()
	slog.Info("[RuleStore] Rule updated", "rule_id", id, "enabled", updated.Enabled, "revision", rev)
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(id, err)
	}

	rev := s.bump()
	slog.Info("[RuleStore] Rule deleted", "rule_id", id, "revision", rev)
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (rule.Rule, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return rule.Rule{}, notFound(id, err)
	}
	return r, nil
}

// List returns every rule ordered by creation time, then creation sequence.
func (s *Store) List(ctx context.Context) ([]rule.Rule, error) {
	rules, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return rules, nil
}

// Snapshot returns the rule set together with a revision no newer than it.
// The revision is read first: a write racing with List can only make the
// content newer than its label, which the next notice then corrects.
func (s *Store) Snapshot(ctx context.Context) (int64, []rule.Rule, error) {
	rev := s.revision.Load()
	rules, err := s.List(ctx)
	if err != nil {
		return 0, nil, err
	}
	return rev, rules, nil
}

// Subscribe registers for change notices. The returned func unsubscribes
// and closes the channel.
func (s *Store) Subscribe() (<-chan ChangeNotice, func()) {
	ch := make(chan ChangeNotice, 1)

	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) bump() int64 {
	rev := s.revision.Add(1)
	notice := ChangeNotice{Revision: rev}

	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- notice:
		default:
			// Replace the stale notice with the newer one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- notice:
			default:
			}
		}
	}
	return rev
}

func notFound(id string, err error) error {
	if errors.Is(err, rule.ErrNotFound) {
		return &rule.NotFoundError{ID: id}
	}
	return err
}
