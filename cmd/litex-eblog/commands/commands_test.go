package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litex-tools/netcli/pkg/log"
)

// readFileLines returns the non-empty lines of a text file.
func readFileLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

// writeLog creates a log file with one read transaction, one incoming
// datagram and one error event, spread one second apart.
func writeLog(t *testing.T, connID string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.eblog")
	l, err := log.NewFileLogger(path)
	require.NoError(t, err)

	base := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	l.Log(log.Event{
		Timestamp:    base,
		ConnectionID: connID,
		Direction:    log.DirectionOut,
		Category:     log.CategoryTransaction,
		RemoteAddr:   "192.168.1.50:1234",
		Transaction:  &log.TransactionEvent{Kind: "read", Addr: 0x82000004, Attempt: 1},
	})
	l.Log(log.Event{
		Timestamp:    base.Add(time.Second),
		ConnectionID: connID,
		Direction:    log.DirectionIn,
		Category:     log.CategoryDatagram,
		RemoteAddr:   "192.168.1.50:1234",
		Datagram:     &log.DatagramEvent{Size: 20, Data: []byte{0x4E, 0x6F}},
	})
	l.Log(log.Event{
		Timestamp:    base.Add(2 * time.Second),
		ConnectionID: connID,
		Direction:    log.DirectionIn,
		Category:     log.CategoryError,
		Error:        &log.ErrorEvent{Message: "etherbone timeout", Context: "read"},
	})
	require.NoError(t, l.Close())
	return path
}

func TestRunView(t *testing.T) {
	path := writeLog(t, "aabbccdd-0000-0000-0000-000000000000")

	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{}, &buf))
	out := buf.String()

	assert.Contains(t, out, "[conn:aabbccdd]")
	assert.Contains(t, out, "Read")
	assert.Contains(t, out, "Addr: 0x82000004")
	assert.Contains(t, out, "Datagram")
	assert.Contains(t, out, "Data: 4e6f")
	assert.Contains(t, out, "Message: etherbone timeout")
}

func TestRunViewFiltered(t *testing.T) {
	path := writeLog(t, "conn-1")

	cat := log.CategoryDatagram
	var buf bytes.Buffer
	require.NoError(t, RunView(path, ViewFilter{Category: &cat}, &buf))
	out := buf.String()

	assert.Contains(t, out, "Datagram")
	assert.NotContains(t, out, "Addr:")
	assert.NotContains(t, out, "etherbone timeout")
}

func TestRunExportJSONL(t *testing.T) {
	path := writeLog(t, "conn-1")
	out := filepath.Join(t.TempDir(), "events.jsonl")

	require.NoError(t, RunExport(path, "jsonl", out))

	data, err := readFileLines(out)
	require.NoError(t, err)
	assert.Len(t, data, 3)
	assert.Contains(t, data[0], `"Kind":"read"`)
}

func TestRunExportCSV(t *testing.T) {
	path := writeLog(t, "conn-1")
	out := filepath.Join(t.TempDir(), "events.csv")

	require.NoError(t, RunExport(path, "csv", out))

	lines, err := readFileLines(out)
	require.NoError(t, err)
	require.Len(t, lines, 4) // header + 3 events
	assert.True(t, strings.HasPrefix(lines[0], "timestamp,connection_id,direction,category"))
	assert.Contains(t, lines[1], "read")
	assert.Contains(t, lines[1], "0x82000004")
}

func TestRunExportUnknownFormat(t *testing.T) {
	path := writeLog(t, "conn-1")
	require.Error(t, RunExport(path, "xml", ""))
}

func TestRunFilter(t *testing.T) {
	path := writeLog(t, "conn-1")
	out := filepath.Join(t.TempDir(), "filtered.eblog")

	var buf bytes.Buffer
	require.NoError(t, RunFilter(path, FilterOptions{
		Output:   out,
		Category: "transaction",
	}, &buf))
	assert.Contains(t, buf.String(), "Filtered 1 events")

	r, err := log.NewReader(out)
	require.NoError(t, err)
	defer r.Close()
	events, err := r.All()
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, log.CategoryTransaction, events[0].Category)
}

func TestRunFilterBadCriteria(t *testing.T) {
	path := writeLog(t, "conn-1")
	out := filepath.Join(t.TempDir(), "filtered.eblog")

	var buf bytes.Buffer
	assert.Error(t, RunFilter(path, FilterOptions{Output: out, Direction: "sideways"}, &buf))
	assert.Error(t, RunFilter(path, FilterOptions{Output: out, TimeStart: "yesterday"}, &buf))
}

func TestRunStats(t *testing.T) {
	path := writeLog(t, "conn-1")

	var buf bytes.Buffer
	require.NoError(t, RunStats(path, &buf))
	out := buf.String()

	assert.Contains(t, out, "Total Events: 3")
	assert.Contains(t, out, "TRANSACTION: 1")
	assert.Contains(t, out, "DATAGRAM:    1")
	assert.Contains(t, out, "1 reads, 0 writes")
	assert.Contains(t, out, "Connections: 1")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Duration:   2s")
}

func TestParseFlags(t *testing.T) {
	d, err := ParseDirectionFlag("IN")
	require.NoError(t, err)
	assert.Equal(t, log.DirectionIn, d)

	_, err = ParseDirectionFlag("sideways")
	assert.Error(t, err)

	c, err := ParseCategoryFlag("Error")
	require.NoError(t, err)
	assert.Equal(t, log.CategoryError, c)

	_, err = ParseCategoryFlag("bogus")
	assert.Error(t, err)
}
