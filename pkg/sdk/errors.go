package sdk

import "fmt"

// APIError is a structured error response from the server.
// Use errors.Is() against the sentinel values to branch on the code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jsongrade api: %s: %s", e.Code, e.Message)
}

// Is matches any APIError carrying the same code, so sentinel comparisons
// ignore status and message.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// Sentinel errors for the API error codes.
var (
	ErrBadRequest        = &APIError{Code: "bad_request"}
	ErrValidationFailed  = &APIError{Code: "validation_failed"}
	ErrInvalidWeightSpec = &APIError{Code: "invalid_weight_spec"}
	ErrInvalidRules      = &APIError{Code: "invalid_rules"}
	ErrMalformedInput    = &APIError{Code: "malformed_input"}
	ErrUnauthorized      = &APIError{Code: "unauthorized"}
	ErrInternal          = &APIError{Code: "internal_error"}
)
