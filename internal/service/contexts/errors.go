package contexts

import "errors"

// ErrNotFound is returned by repositories when no context matches.
var ErrNotFound = errors.New("context not found")
