// Package csr holds the in-memory directory of control/status registers
// loaded from a LiteX csr.csv file.
//
// The directory maps register names to bus addresses and preserves the
// CSV row order, which drives the output order of glob listings. A nil
// *Directory means no CSV has ever been loaded; name resolution against
// it fails with ErrNoDirectory, while numeric addresses resolve without
// any directory at all.
package csr
