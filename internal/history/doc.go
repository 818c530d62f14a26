// Package history provides SQLite-based storage for the import audit log.
//
// Every import attempt is recorded: the source URL, the external listing id,
// the created listing id, the requesting seller, and the outcome. Imports
// are deliberately always-insert (every import is a fresh snapshot of the
// source listing), so the audit log is what lets operators find duplicate
// imports of the same external id instead of the store silently rejecting
// them.
package history
