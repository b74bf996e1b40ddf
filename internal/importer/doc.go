// Package importer drives a full import session: scan the source for
// images, group them into sequences, ask the selector about each one, and
// copy approved sequences into numbered destination directories. A history
// catalog, when available, flags sequences that were imported before and
// records new exports.
package importer
