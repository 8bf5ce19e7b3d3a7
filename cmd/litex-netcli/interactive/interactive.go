// Package interactive provides the readline-driven command prompt for
// litex-netcli: persistent history plus tab completion for command
// names, loaded register names, and csr file paths.
package interactive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/litex-tools/netcli/pkg/render"
	"github.com/litex-tools/netcli/pkg/session"
)

// historyLimit caps the persistent command history.
const historyLimit = 1000

// Options configures the interactive prompt.
type Options struct {
	// HistoryFile is the persistent history path; empty keeps history
	// session-local.
	HistoryFile string
}

// Run drives the interactive command loop until quit, EOF, or context
// cancellation.
func Run(ctx context.Context, sess *session.Session, r *render.Renderer, opts Options) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "litex> ",
		HistoryFile:     opts.HistoryFile,
		HistoryLimit:    historyLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    newCompleter(sess),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "Interactive mode (type 'help' for commands, 'quit' to exit)")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		cmd, ok := session.Parse(line)
		if !ok {
			continue
		}
		out := sess.Execute(ctx, cmd)
		r.Render(out)
		if out.Quit {
			return nil
		}
	}
}

// newCompleter builds the tab completer: command names at the first
// token, register names after read/write/regs, file paths after csr.
func newCompleter(sess *session.Session) readline.AutoCompleter {
	registers := readline.PcItemDynamic(func(string) []string {
		return sess.Directory().Names()
	})
	return readline.NewPrefixCompleter(
		readline.PcItem("read", registers),
		readline.PcItem("write", registers),
		readline.PcItem("regs", registers),
		readline.PcItem("csr", readline.PcItemDynamic(completeFiles)),
		readline.PcItem("help"),
		readline.PcItem("quit"),
		readline.PcItem("exit"),
	)
}

// completeFiles completes a filesystem path for the csr command,
// appending a separator to directories so completion can descend.
func completeFiles(line string) []string {
	fields := strings.Fields(line)
	prefix := ""
	if len(fields) > 1 && !strings.HasSuffix(line, " ") {
		prefix = fields[len(fields)-1]
	}

	dir, base := filepath.Split(prefix)
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	}
	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}

	var matches []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		full := dir + name
		if e.IsDir() {
			full += string(filepath.Separator)
		}
		matches = append(matches, full)
	}
	return matches
}
