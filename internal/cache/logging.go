package cache

import (
	"context"
	"log/slog"
)

// operation names the structural change reported in debug logs.
type operation string

const (
	opExpire operation = "expire"
	opEvict  operation = "evict_lru"
	opSweep  operation = "sweep_expired"
	opClear  operation = "clear"
)

func newLogger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l.With("component", "lrucache")
}

// logOp emits a debug record for op. Callers hold c.mu.
func (c *Cache[K, V]) logOp(op operation, args ...any) {
	if !c.log.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := make([]any, 0, len(args)+2)
	attrs = append(attrs, "operation", string(op))
	attrs = append(attrs, args...)
	c.log.Debug("cache operation", attrs...)
}
