package dto

import "time"

// ErrorResponse is the standardized JSON error body returned by the API.
//
// Fields:
//   - Message: human-readable description of what went wrong.
//   - ErrorDetails: underlying error string, when one is available.
//   - Timestamp: when the error response was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"failed to compute stats"`
	ErrorDetails string    `json:"error,omitempty" example:"connection refused"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so an ErrorResponse can be
// passed around as a regular error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails != "" {
		return e.Message + ": " + e.ErrorDetails
	}
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an
// optional inner error.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
