package storage

import "errors"

// Error taxonomy for the storage engine. Callers match with errors.Is;
// wrapped messages carry the entity kind, id and path.
var (
	ErrNotFound             = errors.New("record not found")
	ErrInvalidRecord        = errors.New("invalid record")
	ErrReadFailed           = errors.New("read failed")
	ErrWriteFailed          = errors.New("write failed")
	ErrDuplicateTransaction = errors.New("duplicate transaction")
	ErrStaleIndex           = errors.New("stale index entry")
	ErrValidation           = errors.New("validation failed")
)
