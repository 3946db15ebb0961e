package task

import "errors"

// ErrNotFound is returned by repositories when no task matches the owner/id pair.
var ErrNotFound = errors.New("task not found")
