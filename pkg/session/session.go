package session

import (
	"context"
	"fmt"

	"github.com/litex-tools/netcli/pkg/csr"
	"github.com/litex-tools/netcli/pkg/value"
)

// Canonical usage strings, carried by usage errors.
const (
	UsageRead  = "read <addr>"
	UsageWrite = "write <addr> <value>"
	UsageRegs  = "regs [pattern]"
	UsageCsr   = "csr [file]"
)

// HelpText is the static command reference emitted by the help command.
const HelpText = `Commands:
  read  <addr>          Read a register (name or hex address)
  write <addr> <value>  Write a register and read back
  regs  [pattern]       Dump registers, optionally filtered by glob pattern
  csr   [file]          Load/show CSR CSV file
  help                  Show this help
  quit                  Exit interactive mode`

// Bus is the transport the session drives. etherbone.Client satisfies
// it; tests substitute a simulated bus.
type Bus interface {
	Read(ctx context.Context, addr uint32) (uint32, error)
	Write(ctx context.Context, addr, value uint32) error
}

// Result is the structured outcome of one register operation, carrying
// enough for both bare and decorated rendering without recomputation.
type Result struct {
	Addr         uint32
	Name         string
	ReadValue    *uint32
	WrittenValue *uint32

	// IPLike marks registers whose value should additionally render
	// as a dotted quad.
	IPLike bool

	// Err holds a per-register failure during a regs scan; the scan
	// continues past it.
	Err *CmdError
}

// Outcome is the structured result of one executed command.
type Outcome struct {
	Command Kind
	Results []Result

	// Message carries informational text (csr status, help).
	Message string

	// Quit marks the terminal command.
	Quit bool

	// Err is the command-level error, already classified. The command
	// loop reports it and continues; it never terminates the process.
	Err *CmdError
}

// Session executes commands against a Bus and owns the currently
// loaded register directory. Commands run strictly one at a time; the
// directory is replaced wholesale on csr loads, never mutated.
type Session struct {
	bus     Bus
	dir     *csr.Directory
	csrPath string
}

// New creates a session with no directory loaded.
func New(bus Bus) *Session {
	return &Session{bus: bus}
}

// Directory returns the current register directory (nil if none was
// ever loaded). The REPL uses it for name completion.
func (s *Session) Directory() *csr.Directory {
	return s.dir
}

// CSRPath returns the path of the currently loaded CSR file.
func (s *Session) CSRPath() string {
	return s.csrPath
}

// LoadCSR loads a csr.csv file, replacing the directory wholesale.
// Returns the number of registers loaded.
func (s *Session) LoadCSR(path string) (int, error) {
	dir, err := csr.LoadFile(path)
	if err != nil {
		return 0, fileError(path, err)
	}
	s.dir = dir
	s.csrPath = path
	return dir.Len(), nil
}

// Execute runs one parsed command to completion and shapes its
// outcome. Every error is classified here; none escapes the command.
func (s *Session) Execute(ctx context.Context, cmd Command) Outcome {
	out := Outcome{Command: cmd.Kind}
	switch cmd.Kind {
	case KindRead:
		s.execRead(ctx, cmd, &out)
	case KindWrite:
		s.execWrite(ctx, cmd, &out)
	case KindRegs:
		s.execRegs(ctx, cmd, &out)
	case KindCsr:
		s.execCsr(cmd, &out)
	case KindHelp:
		out.Message = HelpText
	case KindQuit:
		out.Quit = true
	default:
		out.Err = usageError(
			fmt.Sprintf("unknown command %q", cmd.Name),
			"type 'help' for commands")
	}
	return out
}

func (s *Session) execRead(ctx context.Context, cmd Command, out *Outcome) {
	if len(cmd.Args) != 1 {
		out.Err = usageError("read takes one register reference", UsageRead)
		return
	}
	entry, err := s.dir.Resolve(cmd.Args[0])
	if err != nil {
		out.Err = classify(err)
		return
	}
	v, err := s.bus.Read(ctx, entry.Addr)
	if err != nil {
		out.Err = classify(err)
		return
	}
	out.Results = []Result{{
		Addr:      entry.Addr,
		Name:      entry.Name,
		ReadValue: &v,
		IPLike:    value.IsIPLike(entry.Name),
	}}
}

// execWrite performs the write and immediately reads the register back.
// The read-back is the confirmation mechanism; two bus round trips per
// write are deliberate.
func (s *Session) execWrite(ctx context.Context, cmd Command, out *Outcome) {
	if len(cmd.Args) != 2 {
		out.Err = usageError("write takes a register reference and a value", UsageWrite)
		return
	}
	entry, err := s.dir.Resolve(cmd.Args[0])
	if err != nil {
		out.Err = classify(err)
		return
	}
	word, err := value.Parse(cmd.Args[1])
	if err != nil {
		out.Err = classify(err)
		return
	}
	if err := s.bus.Write(ctx, entry.Addr, word); err != nil {
		out.Err = classify(err)
		return
	}
	readback, err := s.bus.Read(ctx, entry.Addr)
	if err != nil {
		out.Err = classify(err)
		return
	}
	out.Results = []Result{{
		Addr:         entry.Addr,
		Name:         entry.Name,
		WrittenValue: &word,
		ReadValue:    &readback,
		IPLike:       value.IsIPLike(entry.Name),
	}}
}

// execRegs reads every register matching the glob pattern, in load
// order. A single register's failure is attached to its row and the
// scan continues.
func (s *Session) execRegs(ctx context.Context, cmd Command, out *Outcome) {
	if len(cmd.Args) > 1 {
		out.Err = usageError("regs takes at most one glob pattern", UsageRegs)
		return
	}
	if s.dir == nil {
		out.Err = &CmdError{
			Kind:    ErrKindRequiresDirectory,
			Message: "regs requires csr",
		}
		return
	}
	pattern := ""
	if len(cmd.Args) == 1 {
		pattern = cmd.Args[0]
	}
	for _, entry := range s.dir.Match(pattern) {
		res := Result{
			Addr:   entry.Addr,
			Name:   entry.Name,
			IPLike: value.IsIPLike(entry.Name),
		}
		if v, err := s.bus.Read(ctx, entry.Addr); err != nil {
			res.Err = classify(err)
		} else {
			res.ReadValue = &v
		}
		out.Results = append(out.Results, res)
	}
}

func (s *Session) execCsr(cmd Command, out *Outcome) {
	switch len(cmd.Args) {
	case 0:
		if s.dir == nil {
			out.Message = fmt.Sprintf("No CSR loaded. Usage: %s", UsageCsr)
			return
		}
		out.Message = fmt.Sprintf("Current CSR: %s (%d registers)", s.csrPath, s.dir.Len())
	case 1:
		n, err := s.LoadCSR(cmd.Args[0])
		if err != nil {
			out.Err = classify(err)
			return
		}
		out.Message = fmt.Sprintf("Loaded %d registers from %s", n, cmd.Args[0])
	default:
		out.Err = usageError("csr takes at most one file path", UsageCsr)
	}
}
