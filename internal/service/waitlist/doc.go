// Package waitlist records email addresses of people waiting for access.
// Joining is unauthenticated; the only guarantees are a well-formed address
// and at most one entry per email.
package waitlist
