package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Imported 2 statements (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// debugHooks logs pipeline and cache events at debug level through the
// logger attached to the event's context.
type debugHooks struct{}

func (debugHooks) OnImportStart(ctx context.Context, source string) {
	loggerFromContext(ctx).Debug("import started", "file", source)
}

func (debugHooks) OnImportComplete(ctx context.Context, source string, created, failed int, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("import finished", "file", source, "created", created, "failed", failed, "took", d, "err", err)
}

func (debugHooks) OnSummarizeStart(ctx context.Context, month string) {
	loggerFromContext(ctx).Debug("summarize started", "month", month)
}

func (debugHooks) OnSummarizeComplete(ctx context.Context, month string, transactions int, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("summarize finished", "month", month, "transactions", transactions, "took", d, "err", err)
}

func (debugHooks) OnRenderStart(ctx context.Context, formats []string) {
	loggerFromContext(ctx).Debug("render started", "formats", formats)
}

func (debugHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	loggerFromContext(ctx).Debug("render finished", "formats", formats, "took", d, "err", err)
}

func (debugHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (debugHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (debugHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache write", "type", keyType, "bytes", size)
}
