package csr

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "csr.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCSV(t, `#--------------------------------------------------------------------------------
# Auto-generated by LiteX
#--------------------------------------------------------------------------------
csr_base,ctrl,0x82000000,,
csr_register,ctrl_reset,0x82000000,1,rw
csr_register,ctrl_scratch,0x82000004,1,rw
csr_register,ctrl_bus_errors,0x82000008,1,ro
csr_register,identifier_mem,0x82000800,8,ro
memory_region,sram,0x01000000,8192,cached
constant,config_clock_frequency,100000000,,
`)

	d, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 4, d.Len())

	e, err := d.Resolve("ctrl_scratch")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x82000004), e.Addr)
	assert.Equal(t, uint8(4), e.Width)

	e, err = d.Resolve("identifier_mem")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x82000800), e.Addr)
	assert.Equal(t, uint8(32), e.Width)

	// Non-register rows never become entries.
	_, err = d.Resolve("sram")
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestLoadFileSkipsMalformedRows(t *testing.T) {
	path := writeCSV(t, `csr_register,good,0x82000000,1,rw
csr_register,,0x82000004,1,rw
csr_register,bad_addr,not_hex,1,rw
csr_register,short_row
csr_register,no_words,0x82000010,bogus,rw
`)

	d, err := LoadFile(path)
	require.NoError(t, err)

	// Missing name and unparseable address rows are dropped; an
	// unparseable word count falls back to one word.
	assert.Equal(t, []string{"good", "no_words"}, d.Names())

	e, err := d.Resolve("no_words")
	require.NoError(t, err)
	assert.Equal(t, uint8(4), e.Width)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}

func TestLoadFileEmpty(t *testing.T) {
	d, err := LoadFile(writeCSV(t, "# nothing but comments\n"))
	require.NoError(t, err)
	assert.Zero(t, d.Len())
}
