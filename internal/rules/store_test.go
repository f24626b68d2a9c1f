package rules

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hostbus/eventroute/internal/core/action"
	"github.com/hostbus/eventroute/internal/core/filter"
	"github.com/hostbus/eventroute/internal/core/rule"
	"github.com/hostbus/eventroute/internal/core/storage/memory"
	storagemocks "github.com/hostbus/eventroute/internal/mocks/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(context.Background(), memory.NewRuleRepository())
	require.NoError(t, err)
	return s
}

func validDraft(name string) rule.Draft {
	return rule.Draft{
		Name:      name,
		Filters:   []filter.Filter{filter.Exact{"type": "com.example.created"}},
		Action:    action.EmitFrontend{Channel: "ui.refresh"},
		Enabled:   true,
		CreatedBy: "tester",
	}
}

func TestStore_CreateAssignsIdentityAndBumpsRevision(t *testing.T) {
	s := newTestStore(t)
	require.Equal(t, int64(1), s.Revision())

	r, err := s.Create(context.Background(), validDraft("first"))
	require.NoError(t, err)
	require.NotEmpty(t, r.ID)
	require.Equal(t, int64(1), r.Seq)
	require.False(t, r.CreatedAt.IsZero())
	require.Equal(t, r.CreatedAt, r.UpdatedAt)
	require.Equal(t, int64(2), s.Revision())

	got, err := s.Get(context.Background(), r.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)
}

func TestStore_CreateRejectsInvalidDraft(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name  string
		draft rule.Draft
		field string
	}{
		{"missing creator", rule.Draft{Action: action.EmitFrontend{Channel: "c"}}, "created_by"},
		{"missing action", rule.Draft{CreatedBy: "a"}, "action"},
		{"empty channel", rule.Draft{CreatedBy: "a", Action: action.EmitFrontend{}}, "action.channel"},
		{"empty exact", rule.Draft{CreatedBy: "a", Action: action.EmitFrontend{Channel: "c"}, Filters: []filter.Filter{filter.Exact{}}}, "filters[0].exact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tt.draft)
			var verr *rule.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tt.field, verr.Field)
		})
	}
	require.Equal(t, int64(1), s.Revision(), "rejected writes must not bump the revision")
}

func TestStore_CreateWithoutToolNameIsNotStored(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	kept, err := s.Create(ctx, validDraft("kept"))
	require.NoError(t, err)

	draft := validDraft("no tool")
	draft.Action = action.InvokePluginTool{PluginID: "weather"}
	_, err = s.Create(ctx, draft)
	var verr *rule.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "action.tool_name", verr.Field)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, kept.ID, list[0].ID)
}

func TestStore_UpdateMergesAndRevalidates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r, err := s.Create(ctx, validDraft("orig"))
	require.NoError(t, err)

	disabled := false
	updated, err := s.Update(ctx, r.ID, rule.Patch{Enabled: &disabled})
	require.NoError(t, err)
	require.False(t, updated.Enabled)
	require.Equal(t, "orig", updated.Name)
	require.Equal(t, r.CreatedAt, updated.CreatedAt)
	require.Equal(t, int64(3), s.Revision())

	_, err = s.Update(ctx, r.ID, rule.Patch{Action: action.InvokePluginTool{PluginID: "weather"}})
	var verr *rule.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "action.tool_name", verr.Field)
	require.Equal(t, int64(3), s.Revision())

	_, err = s.Update(ctx, "missing", rule.Patch{Enabled: &disabled})
	var nf *rule.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "missing", nf.ID)
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	r, err := s.Create(ctx, validDraft("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, r.ID))
	require.Equal(t, int64(3), s.Revision())

	_, err = s.Get(ctx, r.ID)
	require.ErrorIs(t, err, rule.ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, r.ID), rule.ErrNotFound)
	require.Equal(t, int64(3), s.Revision())
}

func TestStore_DeleteUnknownLeavesListUnchanged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, validDraft(fmt.Sprintf("r%d", i)))
		require.NoError(t, err)
	}
	before, err := s.List(ctx)
	require.NoError(t, err)

	err = s.Delete(ctx, "00000000-0000-0000-0000-000000000000")
	var nf *rule.NotFoundError
	require.ErrorAs(t, err, &nf)

	after, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestStore_ListOrdersByCreation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	var ids []string
	for i := 0; i < 5; i++ {
		r, err := s.Create(ctx, validDraft(fmt.Sprintf("r%d", i)))
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, r := range list {
		require.Equal(t, ids[i], r.ID, "same timestamp falls back to creation sequence")
	}
}

func TestStore_ResumesSequenceFromRepository(t *testing.T) {
	repo := storagemocks.NewRuleRepository(t)
	repo.EXPECT().MaxSeq(mock.Anything).Return(int64(41), nil).Once()
	repo.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(r rule.Rule) bool {
		return r.Seq == 42
	})).Return(nil).Once()

	s, err := NewStore(context.Background(), repo)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), validDraft("next"))
	require.NoError(t, err)
}

func TestStore_NewStoreFailsOnSequenceError(t *testing.T) {
	repo := storagemocks.NewRuleRepository(t)
	repo.EXPECT().MaxSeq(mock.Anything).Return(int64(0), errors.New("db down")).Once()

	_, err := NewStore(context.Background(), repo)
	require.ErrorContains(t, err, "db down")
}

func TestStore_RepositoryErrorDoesNotBumpRevision(t *testing.T) {
	repo := storagemocks.NewRuleRepository(t)
	repo.EXPECT().MaxSeq(mock.Anything).Return(int64(0), nil).Once()
	repo.EXPECT().Insert(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	s, err := NewStore(context.Background(), repo)
	require.NoError(t, err)

	_, err = s.Create(context.Background(), validDraft("x"))
	require.ErrorContains(t, err, "disk full")
	require.Equal(t, int64(1), s.Revision())
}

func TestStore_SnapshotReadsRevisionBeforeRules(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.Create(ctx, validDraft("a"))
	require.NoError(t, err)

	rev, list, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), rev)
	require.Len(t, list, 1)
}

func TestStore_SubscribeCoalescesNotices(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ch, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, validDraft(fmt.Sprintf("r%d", i)))
		require.NoError(t, err)
	}

	select {
	case n := <-ch:
		require.Equal(t, int64(4), n.Revision, "only the latest notice is kept")
	case <-time.After(time.Second):
		t.Fatal("expected a change notice")
	}

	select {
	case n := <-ch:
		t.Fatalf("unexpected extra notice %+v", n)
	default:
	}
}

func TestStore_UnsubscribeClosesChannel(t *testing.T) {
	s := newTestStore(t)
	ch, cancel := s.Subscribe()
	cancel()
	cancel()

	_, ok := <-ch
	require.False(t, ok)

	_, err := s.Create(context.Background(), validDraft("after"))
	require.NoError(t, err)
}

func TestStore_ConcurrentWritesProduceDistinctRevisions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Create(ctx, validDraft(fmt.Sprintf("c%d", i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1+writers), s.Revision())
	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, writers)

	seen := make(map[int64]bool)
	for _, r := range list {
		require.False(t, seen[r.Seq])
		seen[r.Seq] = true
	}
}
