package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSchemaMismatch   = errors.New("store header does not match expected schema")
	ErrMalformedRow     = errors.New("malformed row in store")
	ErrStoreUnavailable = errors.New("record store unavailable")
	ErrStoreFailure     = errors.New("record store request failed")
)
