package validation

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyURL          = errors.New("url is required")
	ErrInvalidURLFormat  = errors.New("invalid url format")
	ErrUnsupportedScheme = errors.New("url scheme not supported")
	ErrOriginHasPath     = errors.New("origin must not carry a path, query or fragment")
	ErrEmptyBatch        = errors.New("at least one origin is required")
	ErrInvalidCIDR       = errors.New("invalid cidr range")
)

type BatchValidationError struct {
	Errors []IndexedError
}

type IndexedError struct {
	Index int
	Value string
	Err   error
}

func (e *BatchValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "batch validation failed"
	}
	first := e.Errors[0]
	return fmt.Sprintf("batch validation failed: %q at index %d: %v", first.Value, first.Index, first.Err)
}

func (e *BatchValidationError) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, ie := range e.Errors {
		errs[i] = ie.Err
	}
	return errs
}
