// Package logging decouples the rest of the server from a concrete logging
// backend. Everything logs through the Logger interface; SlogLogger is the
// only implementation shipped.
package logging

import "context"

// Logger is a leveled, structured logger. The variadic args form key-value
// pairs, slog style:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger carrying the given key-value pairs on
	// every record.
	With(args ...any) Logger
}
