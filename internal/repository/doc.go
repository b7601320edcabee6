// Package repository defines the data access interfaces for gitbrowse.
//
// Store persists the repository records shown on the listing page. The
// actual implementation is in the sqlite subpackage.
//
// # Ordering
//
// ListRepositories returns records in insertion order. Listing code treats
// that order as the input order when a stable sort meets equal values, so
// implementations must keep it deterministic. Upserting an existing name
// keeps its original position.
//
// # SQLite Implementation
//
// The sqlite implementation uses the pure-Go modernc.org/sqlite driver in
// WAL mode. It handles:
//
// - CRUD operations for repository records
// - JSON serialization of free-form properties
// - Transactional catalog imports
//
// # Testing
//
// The sqlite repository is tested against in-memory databases.
package repository
