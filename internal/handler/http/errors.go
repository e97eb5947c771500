package http

import "errors"

// ErrInvalidQueryParam is returned when a sync query parameter is not an
// integer.
var ErrInvalidQueryParam = errors.New("invalid query parameter")
