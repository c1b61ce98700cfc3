package models

// ErrorResponse is the JSON error body returned by the HTTP handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
