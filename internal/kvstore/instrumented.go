package kvstore

import (
	"context"
	"time"

	"github.com/Spok95/school-analytics/internal/ctxutil"
	"github.com/Spok95/school-analytics/internal/metrics"
)

type instrumented struct {
	backend string
	next    Store
}

// Instrument оборачивает хранилище метриками латентности и ошибок.
// Метка op берётся из контекста (ctxutil.WithOp), иначе read/write.
func Instrument(backend string, s Store) Store {
	return &instrumented{backend: backend, next: s}
}

func (i *instrumented) Read(ctx context.Context, key string) (string, bool, error) {
	t0 := time.Now()
	v, ok, err := i.next.Read(ctx, key)
	metrics.ObserveStoreOp(i.backend, opName(ctx, "read"), time.Since(t0), err)
	return v, ok, err
}

func (i *instrumented) Write(ctx context.Context, key, value string) error {
	t0 := time.Now()
	err := i.next.Write(ctx, key, value)
	metrics.ObserveStoreOp(i.backend, opName(ctx, "write"), time.Since(t0), err)
	return err
}

func (i *instrumented) Ping(ctx context.Context) error {
	p, ok := i.next.(Pinger)
	if !ok {
		return nil
	}
	t0 := time.Now()
	err := p.Ping(ctx)
	metrics.ObserveStorePing(time.Since(t0))
	return err
}

func opName(ctx context.Context, def string) string {
	if op, ok := ctxutil.Op(ctx); ok && op != "" {
		return op
	}
	return def
}
