package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes emulator events to an slog.Logger.
// Useful for development when you want to see dispatch activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at a level matching its severity.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("stage", event.Stage.String()),
	}

	if event.DispatchID != "" {
		attrs = append(attrs, slog.String("dispatch_id", event.DispatchID))
	}
	if event.Category != 0 {
		attrs = append(attrs, slog.Uint64("category", uint64(event.Category)))
	}
	if event.SourceEID != 0 {
		attrs = append(attrs, slog.Uint64("src_eid", uint64(event.SourceEID)))
	}
	if event.PayloadSize != 0 {
		attrs = append(attrs, slog.Int("payload_size", event.PayloadSize))
	}
	if event.DelayMillis != 0 {
		attrs = append(attrs, slog.Int("delay_ms", int(event.DelayMillis)))
	}
	if event.Err != "" {
		attrs = append(attrs, slog.String("error", event.Err))
	}

	level := slog.LevelInfo
	switch event.Severity {
	case SeverityWarn:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}

	a.logger.LogAttrs(context.Background(), level, event.Detail, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
