package splice

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDocument indicates the start and end markers of a document do not pair up.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrArityMismatch indicates the fragment count differs from the region count.
	ErrArityMismatch = errors.New("fragment count does not match region count")
	// ErrMarkerInFragment indicates fragment content that would be read back as a marker.
	ErrMarkerInFragment = errors.New("fragment contains a marker line")
)

// MalformedDocumentError describes a document whose markers cannot be paired.
type MalformedDocumentError struct {
	Path   string
	Starts int
	Ends   int
	// Line is the 1-based line of an out-of-order marker, or 0 when only the counts differ.
	Line int
}

func (e *MalformedDocumentError) Error() string {
	name := displayPath(e.Path)
	if e.Line > 0 {
		return fmt.Sprintf("%s: %v: marker on line %d is out of order", name, ErrMalformedDocument, e.Line)
	}
	return fmt.Sprintf("%s: %v: %d start markers but %d end markers", name, ErrMalformedDocument, e.Starts, e.Ends)
}

// Is allows errors.Is(err, ErrMalformedDocument).
func (e *MalformedDocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

// ArityMismatchError describes a fragment list that does not fit the document.
type ArityMismatchError struct {
	Path      string
	Regions   int
	Fragments int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s: %v: %d regions, %d fragments supplied", displayPath(e.Path), ErrArityMismatch, e.Regions, e.Fragments)
}

// Is allows errors.Is(err, ErrArityMismatch).
func (e *ArityMismatchError) Is(target error) bool {
	return target == ErrArityMismatch
}

// MarkerInFragmentError describes a fragment with a line equal to a marker.
type MarkerInFragmentError struct {
	Path string
	// Region is the 0-based index of the fragment.
	Region int
	// Line is the 1-based line within the fragment.
	Line   int
	Marker string
}

func (e *MarkerInFragmentError) Error() string {
	return fmt.Sprintf("%s: %v: fragment %d line %d is %q", displayPath(e.Path), ErrMarkerInFragment, e.Region, e.Line, e.Marker)
}

// Is allows errors.Is(err, ErrMarkerInFragment).
func (e *MarkerInFragmentError) Is(target error) bool {
	return target == ErrMarkerInFragment
}

// BatchError aggregates the documents that failed during a batch run.
type BatchError struct {
	Failures []Failure
}

// Failure holds the error for a single document.
type Failure struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	if len(e.Failures) == 0 {
		return "no failed documents"
	}
	if len(e.Failures) == 1 {
		return e.Failures[0].Err.Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d documents failed to splice:\n", len(e.Failures)))
	for _, f := range e.Failures {
		sb.WriteString(fmt.Sprintf("  - %v\n", f.Err))
	}
	sb.WriteString("\nFix the marker pairs or the fragment lists and run again.")
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

func displayPath(path string) string {
	if path == "" {
		return "<document>"
	}
	return path
}
