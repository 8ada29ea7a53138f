package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Conflict indicates a uniqueness conflict, e.g. a duplicate username or courier number.
var Conflict = errors.New("conflict")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")

// Unauthorized indicates rejected credentials or a bad session token.
var Unauthorized = errors.New("unauthorized")

// Forbidden indicates a valid session that lacks the required role.
var Forbidden = errors.New("forbidden")
