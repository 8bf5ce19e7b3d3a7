package csr

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LiteX csr.csv row kinds. Only csr_register rows become directory
// entries; csr_base, memory_region and constant rows are skipped.
const rowRegister = "csr_register"

// LoadFile parses a LiteX csr.csv file and builds a directory from its
// csr_register rows, preserving file order. Rows with an empty name or
// an address that does not parse as 32-bit hex are skipped.
func LoadFile(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csr file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		e, ok := parseRow(row)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return Load(entries)
}

// parseRow converts one csr_register row
// (csr_register,<name>,<hex addr>,<word count>,<mode>) to an Entry.
func parseRow(row []string) (Entry, bool) {
	if len(row) < 4 || strings.TrimSpace(row[0]) != rowRegister {
		return Entry{}, false
	}
	name := strings.TrimSpace(row[1])
	if name == "" {
		return Entry{}, false
	}
	addrStr := strings.TrimPrefix(strings.TrimSpace(row[2]), "0x")
	addr, err := strconv.ParseUint(addrStr, 16, 32)
	if err != nil {
		return Entry{}, false
	}
	width := uint64(DefaultWidth)
	if words, err := strconv.ParseUint(strings.TrimSpace(row[3]), 10, 8); err == nil && words > 0 {
		width = words * DefaultWidth
	}
	if width > 255 {
		width = 255
	}
	return Entry{Name: name, Addr: uint32(addr), Width: uint8(width)}, true
}
