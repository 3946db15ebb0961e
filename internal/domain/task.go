package domain

import "time"

// ContextRole distinguishes system-managed contexts from user-defined ones.
// Every user gets exactly one INBOX context at signup; it is the default
// landing bucket for quick-created tasks.
type ContextRole string

const (
	ContextInbox ContextRole = "INBOX"
	ContextNone  ContextRole = "NONE"
)

// Context is a grouping bucket for tasks ("Inbox", "At Home", ...).
type Context struct {
	ID        string      `json:"id" db:"id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Name      string      `json:"name" db:"name"`
	Role      ContextRole `json:"role" db:"role"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

// Task is a single to-do item, optionally assigned to a context.
type Task struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ContextID *string   `json:"context_id" db:"context_id"`
	Title     string    `json:"title" db:"title"`
	Notes     string    `json:"notes" db:"notes"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
