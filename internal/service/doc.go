// Package service implements business logic for the gitbrowse application.
//
// This package coordinates between the HTTP handlers, the CLI and the
// repository store.
//
// # Services
//
// ListingService answers listing requests. Each request gets its own
// listing.Provider built from a snapshot of the store, so providers are never
// shared between goroutines. Snapshots are cached for a short TTL.
//
// CatalogService writes repositories: catalog reloads from YAML and single
// record upserts and deletes. Every write invalidates the listing cache.
//
// # Event System
//
// Writes publish events via EventBus, which the SSE hub forwards to
// connected clients so open listings can refresh.
//
// Moving to the first page after a sort change is left to callers; the
// service only guarantees that a window matches the requested sort.
package service
