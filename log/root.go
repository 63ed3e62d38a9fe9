// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

var root atomic.Value

func init() {
	root.Store(&logger{slog.New(DiscardHandler())})
}

// SetDefault sets the default global logger
func SetDefault(l Logger) {
	root.Store(l)
	if lg, ok := l.(*logger); ok {
		slog.SetDefault(lg.inner)
	}
	// loggers created by WithContext before SetDefault pick up the new root lazily
	ctxLoggers.Range(func(_, v any) bool {
		v.(*ctxLogger).reset()
		return true
	})
}

// Root returns the root logger
func Root() Logger {
	return root.Load().(Logger)
}

var ctxLoggers sync.Map

// ctxLogger binds context to the current root logger, so package level loggers
// declared at init time follow later calls to SetDefault.
type ctxLogger struct {
	ctx   []any
	mu    sync.Mutex
	inner Logger
}

func (c *ctxLogger) reset() {
	c.mu.Lock()
	c.inner = nil
	c.mu.Unlock()
}

func (c *ctxLogger) get() Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inner == nil {
		c.inner = Root().With(c.ctx...)
	}
	return c.inner
}

// WithContext returns a logger carrying the given context pairs, e.g. WithContext("pkg", "api").
func WithContext(ctx ...any) Logger {
	l := &ctxLogger{ctx: ctx}
	ctxLoggers.Store(l, l)
	return l
}

func (c *ctxLogger) With(ctx ...any) Logger {
	return c.get().With(ctx...)
}

func (c *ctxLogger) Trace(msg string, ctx ...any) { c.get().Trace(msg, ctx...) }
func (c *ctxLogger) Debug(msg string, ctx ...any) { c.get().Debug(msg, ctx...) }
func (c *ctxLogger) Info(msg string, ctx ...any)  { c.get().Info(msg, ctx...) }
func (c *ctxLogger) Warn(msg string, ctx ...any)  { c.get().Warn(msg, ctx...) }
func (c *ctxLogger) Error(msg string, ctx ...any) { c.get().Error(msg, ctx...) }
func (c *ctxLogger) Crit(msg string, ctx ...any)  { c.get().Crit(msg, ctx...) }

func (c *ctxLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return c.get().Enabled(ctx, level)
}

func (c *ctxLogger) Handler() slog.Handler {
	return c.get().Handler()
}

// Trace is a convenient alias for Root().Trace
func Trace(msg string, ctx ...any) { Root().Trace(msg, ctx...) }

// Debug is a convenient alias for Root().Debug
func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }

// Info is a convenient alias for Root().Info
func Info(msg string, ctx ...any) { Root().Info(msg, ctx...) }

// Warn is a convenient alias for Root().Warn
func Warn(msg string, ctx ...any) { Root().Warn(msg, ctx...) }

// Error is a convenient alias for Root().Error
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }

// Crit is a convenient alias for Root().Crit
func Crit(msg string, ctx ...any) { Root().Crit(msg, ctx...) }
