package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litex-tools/netcli/pkg/etherbone"
)

// DefaultTarget is the FPGA address used when none is configured.
const DefaultTarget = "192.168.1.50:1234"

// historyFileName is the readline history file kept in the home
// directory, shared across runs.
const historyFileName = ".litex_netcli_history"

// Config holds the resolved tool configuration: defaults, overlaid by
// the optional YAML config file, overlaid by explicit flags.
type Config struct {
	Target      string
	CSR         string
	Exec        string
	Script      string
	Interactive bool
	Timeout     time.Duration
	Retries     int
	LogFile     string
	LogLevel    string
}

// fileConfig mirrors the YAML configuration file.
type fileConfig struct {
	Target   string `yaml:"target"`
	CSR      string `yaml:"csr"`
	Timeout  string `yaml:"timeout"`
	Retries  int    `yaml:"retries"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// ModeSelected reports whether any execution mode was requested.
func (c *Config) ModeSelected() bool {
	return c.Exec != "" || c.Script != "" || c.Interactive
}

// loadConfig parses flags and the optional config file.
func loadConfig(args []string) (cfg *Config, fs *flag.FlagSet, err error) {
	cfg = &Config{
		Target:  DefaultTarget,
		Timeout: etherbone.DefaultTimeout,
		Retries: etherbone.DefaultRetries,
	}

	fs = flag.NewFlagSet("litex-netcli", flag.ContinueOnError)
	var configPath string
	fs.StringVar(&configPath, "config", "", "YAML configuration file")

	// Short and long spellings share the same destination, matching
	// the original tool's argument surface.
	fs.StringVar(&cfg.Target, "target", cfg.Target, "FPGA target host[:port]")
	fs.StringVar(&cfg.Target, "t", cfg.Target, "FPGA target host[:port] (shorthand)")
	fs.StringVar(&cfg.CSR, "csr", "", "CSR CSV file to load at startup")
	fs.StringVar(&cfg.CSR, "c", "", "CSR CSV file (shorthand)")
	fs.StringVar(&cfg.Exec, "exec", "", "execute semicolon-delimited commands")
	fs.StringVar(&cfg.Exec, "e", "", "execute commands (shorthand)")
	fs.StringVar(&cfg.Script, "script", "", "script file to execute")
	fs.StringVar(&cfg.Script, "s", "", "script file (shorthand)")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "interactive command mode")
	fs.BoolVar(&cfg.Interactive, "i", false, "interactive mode (shorthand)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "per-attempt reply timeout")
	fs.IntVar(&cfg.Retries, "retries", cfg.Retries, "send attempts per read")
	fs.StringVar(&cfg.LogFile, "log-file", "", "write CBOR protocol events to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "console log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if configPath != "" {
		set := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := applyFileConfig(cfg, configPath, set); err != nil {
			return nil, nil, err
		}
	}

	if _, err := etherbone.ParseTarget(cfg.Target); err != nil {
		return nil, nil, err
	}

	return cfg, fs, nil
}

// applyFileConfig overlays config-file values for every setting not
// explicitly given on the command line.
func applyFileConfig(cfg *Config, path string, set map[string]bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Target != "" && !set["target"] && !set["t"] {
		cfg.Target = fc.Target
	}
	if fc.CSR != "" && !set["csr"] && !set["c"] {
		cfg.CSR = fc.CSR
	}
	if fc.Timeout != "" && !set["timeout"] {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: invalid timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.Retries > 0 && !set["retries"] {
		cfg.Retries = fc.Retries
	}
	if fc.LogFile != "" && !set["log-file"] {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" && !set["log-level"] {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}

// historyFile returns the interactive history path, or empty when no
// home directory is available (history is then session-local).
func (c *Config) historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFileName)
}
