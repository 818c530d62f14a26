// Package storage provides the MongoDB-backed listing and user stores.
//
// Listings live in the cars collection and users in the users collection,
// using the same document shape as the original Mongoose schema so both
// backends can share a database. A listing is exclusively owned by one
// seller for mutation purposes; every mutating method takes the caller's
// user id and refuses to touch listings owned by someone else.
//
// No transaction ever spans multiple listings: each import inserts exactly
// one new document scoped to the calling user, so no locking is required
// across concurrent imports.
package storage
