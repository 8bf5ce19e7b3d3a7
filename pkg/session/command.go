package session

import (
	"strings"
)

// Kind enumerates the commands the session understands. Adding a
// command means adding a variant here and a case in Execute.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindRead
	KindWrite
	KindRegs
	KindCsr
	KindHelp
	KindQuit
)

// String returns the command name.
func (k Kind) String() string {
	switch k {
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	case KindRegs:
		return "regs"
	case KindCsr:
		return "csr"
	case KindHelp:
		return "help"
	case KindQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is one tokenized command line.
type Command struct {
	Kind Kind
	Name string // the literal first token, kept for error messages
	Args []string
}

// Parse tokenizes one command line. It returns ok=false for a blank
// line (the external drivers filter comments and blanks already, but
// the tokenizer stays safe against them).
func Parse(line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return Command{}, false
	}
	name := strings.ToLower(fields[0])
	cmd := Command{Name: name, Args: fields[1:]}
	switch name {
	case "read":
		cmd.Kind = KindRead
	case "write":
		cmd.Kind = KindWrite
	case "regs":
		cmd.Kind = KindRegs
	case "csr":
		cmd.Kind = KindCsr
	case "help", "?":
		cmd.Kind = KindHelp
	case "quit", "exit":
		cmd.Kind = KindQuit
	default:
		cmd.Kind = KindUnknown
	}
	return cmd, true
}
