package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hostbus/eventroute/internal/core/audit"
)

// AuditStore is an in-memory storage.AuditStore.
type AuditStore struct {
	mu         sync.RWMutex
	events     []audit.EventLogEntry
	dispatches []audit.DispatchRecord
}

// NewAuditStore creates an empty audit log.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) AppendEvents(_ context.Context, entries []audit.EventLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, entries...)
	return nil
}

func (s *AuditStore) AppendDispatches(_ context.Context, records []audit.DispatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dispatches = append(s.dispatches, records...)
	return nil
}

func (s *AuditStore) QueryEvents(_ context.Context, q audit.Query) ([]audit.EventLogEntry, error) {
	s.mu.RLock()
	var out []audit.EventLogEntry
	for _, e := range s.events {
		if !q.InRange(e.ReceivedAt) {
			continue
		}
		if q.EventID != "" && e.ID != q.EventID {
			continue
		}
		out = append(out, e)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	if limit := q.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AuditStore) QueryDispatches(_ context.Context, q audit.Query) ([]audit.DispatchRecord, error) {
	s.mu.RLock()
	var out []audit.DispatchRecord
	for _, r := range s.dispatches {
		if q.MatchesDispatch(r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	if limit := q.EffectiveLimit(); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *AuditStore) PruneBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	keptEvents := s.events[:0]
	for _, e := range s.events {
		if e.ReceivedAt.Before(cutoff) {
			removed++
			continue
		}
		keptEvents = append(keptEvents, e)
	}
	s.events = keptEvents

	keptDispatches := s.dispatches[:0]
	for _, r := range s.dispatches {
		if r.StartedAt.Before(cutoff) {
			removed++
			continue
		}
		keptDispatches = append(keptDispatches, r)
	}
	s.dispatches = keptDispatches

	return removed, nil
}
