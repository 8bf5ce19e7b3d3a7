package log

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see the UDP exchange in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}

	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}

	// Add type-specific attributes
	switch {
	case event.Datagram != nil:
		attrs = append(attrs,
			slog.Int("size", event.Datagram.Size),
			slog.Bool("truncated", event.Datagram.Truncated),
		)
	case event.Transaction != nil:
		attrs = append(attrs,
			slog.String("op", event.Transaction.Kind),
			slog.String("addr", fmt.Sprintf("0x%08x", event.Transaction.Addr)),
		)
		if event.Transaction.Value != nil {
			attrs = append(attrs, slog.String("value", fmt.Sprintf("0x%08x", *event.Transaction.Value)))
		}
		if event.Transaction.Attempt > 0 {
			attrs = append(attrs, slog.Int("attempt", event.Transaction.Attempt))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "etherbone", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
