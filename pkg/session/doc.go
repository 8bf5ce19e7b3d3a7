// Package session executes netcli commands against an Etherbone bus.
//
// The session owns the loaded register directory and a Bus. Each
// command line is parsed into a closed command variant, executed to
// completion (including every bus round trip it needs), and shaped
// into an Outcome for the renderer. Errors never propagate past a
// single command: they are classified into error kinds and attached
// to the Outcome, or to individual rows during a regs scan.
package session
