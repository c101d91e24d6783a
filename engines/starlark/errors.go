package starlark

import "errors"

var (
	ErrNotParsed        = errors.New("starlark expression has not been parsed")
	ErrContextWrite     = errors.New("context variables are read-only")
	ErrOutputUnassigned = errors.New("expression did not assign a declared output")
)
