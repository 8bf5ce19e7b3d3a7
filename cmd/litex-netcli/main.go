// Command litex-netcli reads and writes CSR registers on a LiteX FPGA
// over Etherbone/UDP.
//
// Registers are addressed numerically or by name once a csr.csv file
// is loaded. Commands run from an inline batch, a script file, or an
// interactive prompt with history and tab completion.
//
// Usage:
//
//	litex-netcli [flags]
//
// Flags:
//
//	-t, -target string   FPGA target host[:port] (default "192.168.1.50:1234")
//	-c, -csr string      CSR CSV file to load at startup
//	-e, -exec string     Execute semicolon-delimited commands
//	-s, -script string   Script file to execute
//	-i, -interactive     Interactive command mode
//	-config string       YAML configuration file
//	-timeout duration    Per-attempt reply timeout (default 100ms)
//	-retries int         Send attempts per read (default 3)
//	-log-file string     Write a CBOR protocol event log to this file
//	-log-level string    Console log level: debug, info, warn, error
//
// Examples:
//
//	# Read one register by address, value only on stdout
//	litex-netcli -t 192.168.1.50 -e "read 0x0"
//
//	# Load the CSR file and poke a named register
//	litex-netcli -c csr.csv -e "write ctrl_scratch 0xdeadbeef"
//
//	# Interactive bring-up session with a protocol capture
//	litex-netcli -c csr.csv -i -log-file bringup.eblog
//
// Interactive Commands:
//
//	read  <addr>          Read a register (name or hex address)
//	write <addr> <value>  Write a register and read back
//	regs  [pattern]       Dump registers matching a glob pattern
//	csr   [file]          Load/show CSR CSV file
//	help                  Show this help
//	quit                  Exit interactive mode
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/litex-tools/netcli/cmd/litex-netcli/interactive"
	"github.com/litex-tools/netcli/pkg/etherbone"
	"github.com/litex-tools/netcli/pkg/log"
	"github.com/litex-tools/netcli/pkg/render"
	"github.com/litex-tools/netcli/pkg/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "litex-netcli: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, fs, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	if !cfg.ModeSelected() {
		fs.Usage()
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, closeLogs, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLogs()

	client, err := etherbone.Dial(cfg.Target, etherbone.Config{
		Timeout: cfg.Timeout,
		Retries: cfg.Retries,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer client.Close()

	sess := session.New(client)
	if cfg.CSR != "" {
		if _, err := sess.LoadCSR(cfg.CSR); err != nil {
			return err
		}
	}

	// The original tool decorates output only in interactive mode;
	// batch and script runs stay parse-clean.
	mode := render.Bare
	if cfg.Interactive {
		mode = render.Decorated
	}
	out, tty := render.Stdout()
	r := render.New(mode, out, tty)

	if cfg.Exec != "" {
		if quit := runBatch(ctx, sess, r, cfg.Exec); quit {
			return nil
		}
	}
	if cfg.Script != "" {
		if quit, err := runScript(ctx, sess, r, cfg.Script); err != nil {
			return err
		} else if quit {
			return nil
		}
	}
	if cfg.Interactive {
		return interactive.Run(ctx, sess, r, interactive.Options{
			HistoryFile: cfg.historyFile(),
		})
	}
	return nil
}

// runLine executes one command line and renders its outcome.
// Returns true when the line requested termination.
func runLine(ctx context.Context, sess *session.Session, r *render.Renderer, line string) bool {
	cmd, ok := session.Parse(line)
	if !ok {
		return false
	}
	out := sess.Execute(ctx, cmd)
	r.Render(out)
	return out.Quit
}

// runBatch executes a semicolon-delimited inline command batch.
func runBatch(ctx context.Context, sess *session.Session, r *render.Renderer, batch string) bool {
	for _, line := range strings.Split(batch, ";") {
		if ctx.Err() != nil {
			return true
		}
		if runLine(ctx, sess, r, line) {
			return true
		}
	}
	return false
}

// runScript executes a command script, one command per line. Blank
// lines and # comments are filtered here, before the session sees them.
func runScript(ctx context.Context, sess *session.Session, r *render.Renderer, path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return true, nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if runLine(ctx, sess, r, line) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// buildLogger assembles the protocol logger from the configuration:
// an optional CBOR file capture plus console output at debug level.
func buildLogger(cfg *Config) (log.Logger, func(), error) {
	var loggers []log.Logger
	closeLogs := func() {}

	if cfg.LogFile != "" {
		fl, err := log.NewFileLogger(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		loggers = append(loggers, fl)
		closeLogs = func() { fl.Close() }
	}

	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if level == slog.LevelDebug {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		loggers = append(loggers, log.NewSlogAdapter(slog.New(h)))
	}

	if len(loggers) == 0 {
		return log.NoopLogger{}, closeLogs, nil
	}
	return log.NewMultiLogger(loggers...), closeLogs, nil
}
