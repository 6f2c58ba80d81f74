package store

import "errors"

// ErrNotFound is returned when an update or delete targets an id that does not
// exist for the owner, e.g. a row already deleted elsewhere. Callers surface it
// like any other store failure; it never crashes the engine.
var ErrNotFound = errors.New("record not found")

// ErrEmptyTitle is returned when a create is attempted without a title.
var ErrEmptyTitle = errors.New("title must not be empty")
