package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litex-tools/netcli/pkg/etherbone"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, _, err := loadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, etherbone.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, etherbone.DefaultRetries, cfg.Retries)
	assert.False(t, cfg.ModeSelected())
}

func TestLoadConfigFlags(t *testing.T) {
	cfg, _, err := loadConfig([]string{
		"-t", "10.0.0.2:2345",
		"-c", "build/csr.csv",
		"-e", "read 0x0; read 0x4",
		"-timeout", "250ms",
		"-retries", "5",
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.2:2345", cfg.Target)
	assert.Equal(t, "build/csr.csv", cfg.CSR)
	assert.Equal(t, "read 0x0; read 0x4", cfg.Exec)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 5, cfg.Retries)
	assert.True(t, cfg.ModeSelected())
}

func TestLoadConfigLongFlags(t *testing.T) {
	cfg, _, err := loadConfig([]string{"-target", "10.0.0.3", "-interactive"})
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.3", cfg.Target)
	assert.True(t, cfg.Interactive)
	assert.True(t, cfg.ModeSelected())
}

func TestLoadConfigBadTarget(t *testing.T) {
	_, _, err := loadConfig([]string{"-t", "host:notaport", "-i"})
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netcli.yaml")
	content := `target: 10.1.1.1:4321
csr: /srv/fpga/csr.csv
timeout: 500ms
retries: 7
log_file: capture.eblog
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, err := loadConfig([]string{"-config", path, "-i"})
	require.NoError(t, err)

	assert.Equal(t, "10.1.1.1:4321", cfg.Target)
	assert.Equal(t, "/srv/fpga/csr.csv", cfg.CSR)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 7, cfg.Retries)
	assert.Equal(t, "capture.eblog", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigFlagsBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netcli.yaml")
	content := `target: 10.1.1.1
timeout: 500ms
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, err := loadConfig([]string{
		"-config", path,
		"-t", "10.2.2.2",
		"-timeout", "50ms",
		"-i",
	})
	require.NoError(t, err)

	// Explicit flags win over the config file.
	assert.Equal(t, "10.2.2.2", cfg.Target)
	assert.Equal(t, 50*time.Millisecond, cfg.Timeout)
}

func TestLoadConfigFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netcli.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [not, a, duration]\n"), 0o644))

	_, _, err := loadConfig([]string{"-config", path, "-i"})
	require.Error(t, err)
}

func TestLoadConfigFileMissing(t *testing.T) {
	_, _, err := loadConfig([]string{"-config", "/does/not/exist.yaml", "-i"})
	require.Error(t, err)
}
