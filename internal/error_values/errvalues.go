package errorvalues

import "errors"

var (
	ErrKeyNotFound          = errors.New("key doesn't exist in storage")
	ErrStorageRead          = errors.New("storage read failure")
	ErrStorageWrite         = errors.New("storage write failure")
	ErrEmptyWorkoutInput    = errors.New("exercise and duration must not be empty")
	ErrValidation           = errors.New("validation error")
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)
