package session

import (
	"errors"
	"fmt"

	"github.com/litex-tools/netcli/pkg/csr"
	"github.com/litex-tools/netcli/pkg/etherbone"
	"github.com/litex-tools/netcli/pkg/value"
)

// ErrorKind classifies command errors for the renderer and for tests.
type ErrorKind uint8

const (
	// ErrKindUsage indicates a malformed command invocation.
	ErrKindUsage ErrorKind = iota
	// ErrKindRequiresDirectory indicates a name lookup with no CSR
	// directory ever loaded.
	ErrKindRequiresDirectory
	// ErrKindNotFound indicates a name lookup that matched nothing.
	ErrKindNotFound
	// ErrKindInvalidValue indicates an unparsable value literal.
	ErrKindInvalidValue
	// ErrKindTimeout indicates an exhausted protocol retry budget.
	ErrKindTimeout
	// ErrKindProtocol indicates a structurally invalid reply or any
	// other transport-level failure.
	ErrKindProtocol
	// ErrKindFile indicates an unreadable or unparsable CSR source.
	ErrKindFile
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindUsage:
		return "usage"
	case ErrKindRequiresDirectory:
		return "requires-csr"
	case ErrKindNotFound:
		return "not-found"
	case ErrKindInvalidValue:
		return "invalid-value"
	case ErrKindTimeout:
		return "timeout"
	case ErrKindProtocol:
		return "protocol"
	case ErrKindFile:
		return "file"
	default:
		return "unknown"
	}
}

// CmdError is the classified form every command error takes at the
// session boundary.
type CmdError struct {
	Kind    ErrorKind
	Message string

	// Usage carries the canonical usage string for usage errors.
	Usage string

	// Suggestions carries the loaded register names for not-found
	// errors, in load order.
	Suggestions []string
}

func (e *CmdError) Error() string {
	return e.Message
}

// usageError builds a usage error for a command.
func usageError(msg, usage string) *CmdError {
	return &CmdError{Kind: ErrKindUsage, Message: msg, Usage: usage}
}

// classify converts lower-layer errors into a CmdError. Errors that
// are already classified pass through unchanged.
func classify(err error) *CmdError {
	var cerr *CmdError
	if errors.As(err, &cerr) {
		return cerr
	}
	var nferr *csr.NotFoundError
	switch {
	case errors.As(err, &nferr):
		return &CmdError{
			Kind:        ErrKindNotFound,
			Message:     nferr.Error(),
			Suggestions: nferr.Available,
		}
	case errors.Is(err, csr.ErrNoDirectory):
		return &CmdError{Kind: ErrKindRequiresDirectory, Message: err.Error()}
	case errors.Is(err, value.ErrInvalidValue):
		return &CmdError{Kind: ErrKindInvalidValue, Message: err.Error()}
	case errors.Is(err, etherbone.ErrTimeout):
		return &CmdError{Kind: ErrKindTimeout, Message: err.Error()}
	default:
		// Protocol violations and any other transport failure.
		return &CmdError{Kind: ErrKindProtocol, Message: err.Error()}
	}
}

// fileError builds a file error wrapping a loader failure.
func fileError(path string, err error) *CmdError {
	return &CmdError{
		Kind:    ErrKindFile,
		Message: fmt.Sprintf("cannot load %s: %v", path, err),
	}
}
