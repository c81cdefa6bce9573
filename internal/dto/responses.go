package dto

// ErrorResponse is the single error shape returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
