// Package task implements task CRUD for authenticated users.
//
// Tasks are always owned by a single user and usually live in one of the
// user's contexts. Quick-create is the low-friction path: title and notes
// only, landing in the caller's Inbox. The full update path may move a task
// between contexts via a client-encoded context reference, which is parsed
// defensively; a malformed reference is a validation failure, never a panic
// or a write against someone else's context.
package task
