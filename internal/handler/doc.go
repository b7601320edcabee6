// Package handler implements the HTTP API of the repository listing.
//
// # Endpoints
//
//	GET    /api/repositories            one sorted window of the listing
//	GET    /api/repositories/export     the full sorted listing (json, yaml, table)
//	GET    /api/repositories/{name}     a single repository
//	PUT    /api/repositories/{name}     create or replace (administrators)
//	DELETE /api/repositories/{name}     remove (administrators)
//	GET    /api/settings                listing banner and admin visibility
//
// Listing requests take sort=field[:asc|desc] and either page/page_size or
// offset/limit. Responses carry paging metadata and first/previous/next
// links in the same paging mode.
//
// Errors are returned as JSON with {error, details}. Invalid paging or sort
// parameters map to 400, unknown repositories to 404.
//
// Administrators authenticate with HTTP basic auth against bcrypt hashes
// from the web.admins configuration.
package handler
