package log

import (
	"time"
)

// Event represents one protocol log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the UDP socket lifetime (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates datagram flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the target address (IP:port).
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Datagram    *DatagramEvent    `cbor:"6,keyasint,omitempty"` // raw wire bytes
	Transaction *TransactionEvent `cbor:"7,keyasint,omitempty"` // register operation
	Error       *ErrorEvent       `cbor:"8,keyasint,omitempty"` // errors at any point
}

// Direction indicates the direction of datagram flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming datagram.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing datagram.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryDatagram indicates a raw datagram on the wire.
	CategoryDatagram Category = 0
	// CategoryTransaction indicates a register read or write attempt.
	CategoryTransaction Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDatagram:
		return "DATAGRAM"
	case CategoryTransaction:
		return "TRANSACTION"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// DatagramEvent captures one datagram's raw bytes.
type DatagramEvent struct {
	// Size is the datagram size in bytes.
	Size int `cbor:"1,keyasint"`

	// Data is the datagram payload (may be truncated).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates Data was capped for the log.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// TransactionEvent captures one register operation attempt.
type TransactionEvent struct {
	// Kind is "read" or "write".
	Kind string `cbor:"1,keyasint"`

	// Addr is the bus address of the operation.
	Addr uint32 `cbor:"2,keyasint"`

	// Value is the word written, or read back (nil before a read completes).
	Value *uint32 `cbor:"3,keyasint,omitempty"`

	// Attempt is the 1-based attempt number within the retry budget.
	Attempt int `cbor:"4,keyasint,omitempty"`
}

// ErrorEvent captures an error raised by the engine.
type ErrorEvent struct {
	// Message is the human-readable error text.
	Message string `cbor:"1,keyasint"`

	// Context describes what the engine was doing.
	Context string `cbor:"2,keyasint,omitempty"`
}
