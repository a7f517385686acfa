// Package docx reads and writes the small subset of WordprocessingML the annotator needs:
// paragraph text on the way in, styled paragraphs on the way out.
package docx

import "fmt"

// ParseError represents a failure to open or decode a .docx package
type ParseError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx parse error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("docx parse error: %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// WriteError represents a failure to encode or persist a .docx package
type WriteError struct {
	Path    string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx write error: %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("docx write error: %s: %s", e.Path, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
