// Package commands implements the litex-eblog CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/litex-tools/netcli/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Direction *log.Direction
	Category  *log.Category
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] DIRECTION Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	connID := shortenConnID(event.ConnectionID)
	dir := event.Direction.String()

	var typeLabel string
	switch {
	case event.Datagram != nil:
		typeLabel = "Datagram"
	case event.Transaction != nil:
		typeLabel = capitalize(event.Transaction.Kind)
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [conn:%s] %-3s %s\n", ts, connID, dir, typeLabel)

	if event.RemoteAddr != "" {
		fmt.Fprintf(w, "  Remote: %s\n", event.RemoteAddr)
	}

	switch {
	case event.Datagram != nil:
		formatDatagramDetails(w, event.Datagram)
	case event.Transaction != nil:
		formatTransactionDetails(w, event.Transaction)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// capitalize upper-cases the first letter of an operation kind.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatDatagramDetails writes datagram-specific details.
func formatDatagramDetails(w io.Writer, d *log.DatagramEvent) {
	fmt.Fprintf(w, "  Size: %d bytes\n", d.Size)
	if len(d.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(d.Data))
		if d.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatTransactionDetails writes register operation details.
func formatTransactionDetails(w io.Writer, tx *log.TransactionEvent) {
	fmt.Fprintf(w, "  Addr: 0x%08x\n", tx.Addr)
	if tx.Value != nil {
		fmt.Fprintf(w, "  Value: 0x%08x\n", *tx.Value)
	}
	if tx.Attempt > 0 {
		fmt.Fprintf(w, "  Attempt: %d\n", tx.Attempt)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, e *log.ErrorEvent) {
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "datagram":
		return log.CategoryDatagram, nil
	case "transaction":
		return log.CategoryTransaction, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be datagram, transaction, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		if filter.Direction != nil && event.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
