package project

import "errors"

// ErrNotFound is returned by repositories when no row matches the owner/id pair.
var ErrNotFound = errors.New("project not found")
