// Package handlers defines the stable error codes returned in every error
// envelope. Clients branch on the code; the message is for humans.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_found",
//	  "message": "property not found"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeInvalidFilter = "invalid_filter"
	ErrCodeOutOfRange    = "out_of_range"
	ErrCodeUnknownRef    = "unknown_reference"
)
