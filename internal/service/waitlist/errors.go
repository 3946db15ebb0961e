package waitlist

import "errors"

// ErrDuplicate is returned when the email unique constraint fails.
var ErrDuplicate = errors.New("email already on waitlist")
