package server

import (
	"fmt"
	"net/http"
)

// ErrMissingField indicates the upload form lacks a required field
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing form field: %s", e.Field)
}

// ErrUnknownOS indicates os_choice names no reference document
type ErrUnknownOS struct {
	OS string
}

func (e *ErrUnknownOS) Error() string {
	return fmt.Sprintf("unknown OS choice: %q", e.OS)
}

// ErrUploadTooLarge indicates the request body exceeded the upload limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// ErrMalformedUpload indicates the multipart body could not be parsed
type ErrMalformedUpload struct {
	Cause error
}

func (e *ErrMalformedUpload) Error() string {
	return fmt.Sprintf("malformed upload: %v", e.Cause)
}

func (e *ErrMalformedUpload) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrMissingField, *ErrUnknownOS, *ErrUploadTooLarge, *ErrMalformedUpload:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage is the plain-text body sent for err.
func clientMessage(err error) string {
	switch err.(type) {
	case *ErrMissingField:
		return "Missing input file or OS choice"
	case *ErrUnknownOS:
		return "Invalid OS choice"
	case *ErrUploadTooLarge:
		return "Uploaded file is too large"
	case *ErrMalformedUpload:
		return "Malformed upload"
	default:
		return "Failed to process file"
	}
}
