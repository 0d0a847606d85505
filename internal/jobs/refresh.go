package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/Spok95/school-analytics/internal/dashboard"
	"github.com/Spok95/school-analytics/internal/loader"
)

// Snapshotter пересобирает дашборд и хранит последний снимок.
type Snapshotter struct {
	loader *loader.Loader
	opts   dashboard.Options
	now    func() time.Time

	mu   sync.RWMutex
	last *dashboard.Dashboard
}

func NewSnapshotter(l *loader.Loader, opts dashboard.Options) *Snapshotter {
	return &Snapshotter{loader: l, opts: opts, now: time.Now}
}

// Refresh — задача для Runner: собрать снимок и обновить метрики.
func (s *Snapshotter) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d := s.Build(ctx)
	dashboard.Publish(d)
	s.mu.Lock()
	s.last = &d
	s.mu.Unlock()
	return nil
}

// Build собирает свежий снимок, не трогая кэш.
func (s *Snapshotter) Build(ctx context.Context) dashboard.Dashboard {
	opts := s.opts
	opts.Now = s.now()
	return dashboard.Build(ctx, s.loader, opts)
}

// Latest возвращает последний собранный снимок; если его ещё нет — собирает.
func (s *Snapshotter) Latest(ctx context.Context) dashboard.Dashboard {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()
	if last != nil {
		return *last
	}
	d := s.Build(ctx)
	return d
}
