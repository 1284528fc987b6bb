package plinkpca

import "fmt"

// ReadError means a source file was missing, unreadable, or empty.
type ReadError struct {
	Path string
	Err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read %v: %v", e.Path, e.Err)
}

func (e ReadError) Unwrap() error {
	return e.Err
}

// FormatError means a source file was readable but malformed; the load
// fails as a whole and no partial result is returned.
type FormatError struct {
	Path string
	Line int
	Msg  string
}

func (e FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format %v line %v: %v", e.Path, e.Line, e.Msg)
	}
	return fmt.Sprintf("format %v: %v", e.Path, e.Msg)
}

// IndexError means a query named a component outside [1, NumComponents].
type IndexError struct {
	Component int
	Max       int
}

func (e IndexError) Error() string {
	return fmt.Sprintf("component %v out of range [1, %v]", e.Component, e.Max)
}
