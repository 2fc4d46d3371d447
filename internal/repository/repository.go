package repository

import "errors"

// ErrNoRowsDeleted signals a delete that matched nothing. Services map
// it to a not-found response.
var ErrNoRowsDeleted = errors.New("no rows deleted")
