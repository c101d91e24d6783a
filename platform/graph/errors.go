package graph

import "errors"

var (
	ErrTypeMismatch  = errors.New("value type does not match plug type")
	ErrDuplicatePlug = errors.New("plug name already in use")
	ErrEmptyKey      = errors.New("empty keys are not allowed")
)
