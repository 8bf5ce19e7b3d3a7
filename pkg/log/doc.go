// Package log provides structured protocol logging for the Etherbone
// engine.
//
// This package defines the Logger interface and Event types for
// capturing protocol-level events: datagrams on the wire, transaction
// attempts and retries, and decode errors. It is separate from
// operational logging (slog) - protocol capture provides a complete
// machine-readable trace of the UDP exchange for debugging flaky
// hardware links.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Logger = log.NewSlogAdapter(slog.Default())
//
//	// For debugging a link: write to binary file
//	cfg.Logger, _ = log.NewFileLogger("netcli.eblog")
//
//	// Both: use MultiLogger
//	cfg.Logger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events. Reader streams them
// back with optional filtering.
package log
