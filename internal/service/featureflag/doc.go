// Package featureflag implements runtime feature flag management.
//
// All mutating operations are restricted to ADMIN and SUPER_ADMIN users and
// follow the same shape: authorize first, collect every validation failure,
// then run the persistence step. Name and slug uniqueness is enforced inside
// a single transaction with the database's unique indexes as the
// authoritative guard.
//
// Listing flags is intentionally unauthenticated: the signup gate and the
// page layout both read the flag set before a user exists.
package featureflag
