// Package catalog persists the history of exported sequences in SQLite.
// Scans consult it to flag sequences that were already imported; the
// history command lists it. Catalog failures are advisory and never block
// an import.
package catalog
