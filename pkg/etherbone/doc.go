// Package etherbone implements the single-register subset of the
// Etherbone protocol used by LiteX Etherbone/UDP cores.
//
// One transaction is one UDP request/response exchange. The packet is a
// fixed 20 bytes: an 8-byte header (magic, version, address/port width)
// followed by a single record (record header, base address, one data or
// address word). All multi-byte fields are big-endian.
//
//	┌──────────────────────────────────┐
//	│  header: magic 0x4E6F, ver 1,    │  8 bytes
//	│  addr/port width 32, padding     │
//	├──────────────────────────────────┤
//	│  record header: flags, byte      │  4 bytes
//	│  enable, wcount, rcount          │
//	├──────────────────────────────────┤
//	│  base address                    │  4 bytes
//	├──────────────────────────────────┤
//	│  data word / read address        │  4 bytes
//	└──────────────────────────────────┘
//
// Reads carry rcount=1 with the target address in the word slot; the
// reply carries wcount=1 with the register value in the word slot.
// Writes carry wcount=1 with the base address and value, and are
// fire-and-forget: callers confirm by reading the register back.
//
// The transport is unreliable: Client bounds each read attempt with a
// deadline and retries within a fixed budget before reporting
// ErrTimeout. Structurally invalid replies report ErrProtocol.
package etherbone
