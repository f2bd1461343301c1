// Package apierror provides the error envelopes returned by the API.
// Handlers never put driver or stack details into these.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field problems (HTTP 422).
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// NewValidationDetail is NewValidation with a user-facing summary message.
func NewValidationDetail(detail string, fields map[string]string) *ValidationError {
	if detail == "" {
		return NewValidation(fields)
	}
	return &ValidationError{Detail: detail, Fields: fields}
}
