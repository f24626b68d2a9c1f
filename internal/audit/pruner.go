package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/hostbus/eventroute/internal/core/storage"
)

// Pruner deletes audit entries older than the retention window on every tick.
type Pruner struct {
	store     storage.AuditStore
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

func NewPruner(store storage.AuditStore, retention, interval time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Start prunes once, then on every interval until ctx is cancelled.
// A zero retention keeps everything and returns immediately.
func (p *Pruner) Start(ctx context.Context) error {
	if p.retention <= 0 {
		slog.Info("[AuditPruner] Retention disabled, audit log kept forever")
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	slog.Info("[AuditPruner] Starting", "retention", p.retention, "interval", p.interval)
	p.PruneOnce(ctx)

	for {
		select {
		case <-ticker.C:
			p.PruneOnce(ctx)
		case <-ctx.Done():
			slog.Info("[AuditPruner] Stopping (context cancelled)")
			return nil
		}
	}
}

// PruneOnce removes everything older than now minus retention.
func (p *Pruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.now().Add(-p.retention).UTC()
	removed, err := p.store.PruneBefore(ctx, cutoff)
	if err != nil {
		slog.Error("[AuditPruner] Prune failed", "error", err, "cutoff", cutoff)
		return removed
	}
	if removed > 0 {
		slog.Info("[AuditPruner] Pruned audit log", "cutoff", cutoff, "removed", removed)
	}
	return removed
}
