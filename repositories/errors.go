package repositories

import "errors"

// ErrNotFound marks a missing row as opposed to an infrastructure failure.
// Callers branch on it with errors.Is; anything else is a database error.
var ErrNotFound = errors.New("record not found")
