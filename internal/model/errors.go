package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies a structural error.
type ErrorCode string

const (
	// ErrDocumentParse indicates the source document could not be parsed.
	ErrDocumentParse ErrorCode = "document-parse"
	// ErrNoModel indicates the document has no uml:Model element.
	ErrNoModel ErrorCode = "no-model"
	// ErrMissingAttribute indicates an element lacks its id or name.
	ErrMissingAttribute ErrorCode = "missing-attribute"
	// ErrRootNotFound indicates a traversal root package does not exist.
	ErrRootNotFound ErrorCode = "root-not-found"
	// ErrParentCycle indicates the parent mapping does not describe a tree.
	ErrParentCycle ErrorCode = "parent-cycle"
	// ErrDuplicateName indicates two packages with the same name were
	// discovered while strict name checking is enabled.
	ErrDuplicateName ErrorCode = "duplicate-name"
)

// StructuralError is a fatal problem with the shape of the model. It halts a
// run.
type StructuralError struct {
	Code      ErrorCode
	Path      []string // best-effort path to the offending element
	Element   string   // id or name of the offending element
	Attribute string   // missing attribute, if any
	Message   string
	Err       error
}

func (e *StructuralError) Error() string {
	if e == nil {
		return "structural error <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", e.Code)
	if e.Message != "" {
		b.WriteString(" " + e.Message)
	}
	if e.Element != "" {
		fmt.Fprintf(&b, " element %q", e.Element)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " missing %q", e.Attribute)
	}
	if len(e.Path) > 0 {
		b.WriteString(" at " + strings.Join(e.Path, "/"))
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// NewStructuralError builds a StructuralError with a formatted message.
func NewStructuralError(code ErrorCode, path []string, format string, args ...any) *StructuralError {
	return &StructuralError{
		Code:    code,
		Path:    append([]string(nil), path...),
		Message: fmt.Sprintf(format, args...),
	}
}

// MissingAttribute reports an element without a required identifying
// attribute.
func MissingAttribute(path []string, element, attr string) *StructuralError {
	return &StructuralError{
		Code:      ErrMissingAttribute,
		Path:      append([]string(nil), path...),
		Element:   element,
		Attribute: attr,
	}
}

// AsStructural extracts a StructuralError from err.
func AsStructural(err error) (*StructuralError, bool) {
	var se *StructuralError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err is a StructuralError with the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := AsStructural(err)
	return ok && se.Code == code
}
