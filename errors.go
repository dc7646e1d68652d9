package swfheader

import "github.com/pkg/errors"

// ErrNotSWF is returned when the first three bytes are not a SWF signature.
var ErrNotSWF = errors.New("swfheader: not a swf file")

// IOError reports any failure below the signature check: short input, a read
// error from the source, or a corrupt compressed stream.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return "swfheader: " + e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func ioFailure(op string, err error) error {
	return &IOError{Op: op, Err: err}
}
