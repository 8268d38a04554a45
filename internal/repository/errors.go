package repository

import "errors"

// ErrDuplicate is returned when an insert violates a unique constraint
// (duplicate membership request, duplicate like). The service layer maps it
// to the appropriate conflict error.
var ErrDuplicate = errors.New("duplicate row")
