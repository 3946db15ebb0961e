// Package session manages authenticated browser sessions.
//
// A session is an opaque token stored in Redis (token -> user id) and carried
// by an HTTP-only cookie. Expiry is delegated to Redis key TTLs, so an
// expired session simply resolves to the anonymous state; loading a session
// never fails the request.
package session
