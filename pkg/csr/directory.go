package csr

import (
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// DefaultWidth is the register width assumed for synthetic entries
// resolved from numeric addresses (one full bus word).
const DefaultWidth = 4

// ErrNoDirectory indicates a name lookup without any loaded directory.
var ErrNoDirectory = errors.New("register name requires csr")

// NotFoundError indicates a name lookup that matched no loaded register.
// Available carries all loaded names in load order for suggestions.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("register %q not found in csr.csv", e.Name)
}

// Entry describes one control/status register.
type Entry struct {
	Name  string
	Addr  uint32
	Width uint8
}

// Directory is an ordered, immutable register table. Replace it
// wholesale via Load; never mutate a loaded directory.
type Directory struct {
	entries []Entry
	byName  map[string]int
}

// Load builds a directory from entries, preserving order. Entries with
// an empty name are rejected. When two entries share a name the
// last-loaded one wins; the earlier entry keeps its position in listing
// order but is no longer reachable by name.
func Load(entries []Entry) (*Directory, error) {
	d := &Directory{
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("register at 0x%08x has an empty name", e.Addr)
		}
		if prev, dup := d.byName[e.Name]; dup {
			d.entries[prev] = e
			d.byName[e.Name] = prev
			continue
		}
		d.byName[e.Name] = len(d.entries)
		d.entries = append(d.entries, e)
	}
	return d, nil
}

// Len returns the number of loaded registers.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Resolve maps a register reference to an entry. A 0x-prefixed or
// bare-hex token is a numeric address and resolves to a synthetic
// unnamed entry without consulting the table, so it works even when no
// directory is loaded. Anything else is a case-sensitive name lookup.
func (d *Directory) Resolve(ref string) (Entry, error) {
	if addr, ok := parseAddress(ref); ok {
		return Entry{Addr: addr, Width: DefaultWidth}, nil
	}
	if d == nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrNoDirectory, ref)
	}
	i, ok := d.byName[ref]
	if !ok {
		return Entry{}, &NotFoundError{Name: ref, Available: d.Names()}
	}
	return d.entries[i], nil
}

// Match returns the entries whose name matches a shell glob pattern
// (* and ?), in load order. An empty pattern matches everything. A
// pattern matching nothing yields an empty slice, not an error.
func (d *Directory) Match(pattern string) []Entry {
	if d == nil {
		return nil
	}
	if pattern == "" {
		out := make([]Entry, len(d.entries))
		copy(out, d.entries)
		return out
	}
	out := []Entry{}
	for _, e := range d.entries {
		// Register names contain no separators, so path.Match gives
		// exactly shell * and ? semantics.
		if ok, err := path.Match(pattern, e.Name); err == nil && ok {
			out = append(out, e)
		}
	}
	return out
}

// Names returns all loaded register names in load order.
func (d *Directory) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.entries))
	for i, e := range d.entries {
		names[i] = e.Name
	}
	return names
}

// parseAddress recognizes numeric register references: 0x-prefixed hex
// or a token consisting solely of hex digits.
func parseAddress(ref string) (uint32, bool) {
	s, prefixed := strings.CutPrefix(ref, "0x")
	if s == "" {
		return 0, false
	}
	if !prefixed {
		for _, r := range s {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return 0, false
			}
		}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
