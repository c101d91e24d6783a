package risor

import "errors"

var (
	ErrNotParsed        = errors.New("risor expression has not been parsed")
	ErrContextWrite     = errors.New("context variables are read-only")
	ErrOutputUnassigned = errors.New("expression did not assign a declared output")
)
