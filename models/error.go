package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError `json:"response"`
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// HealthCheckResponse is returned by the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}

// FieldError describes a single validation failure for a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrorResponse wraps the complete set of validation failures for a
// wizard step so the frontend can surface the first and keep the rest
type FieldErrorResponse struct {
	Step   int          `json:"step"`
	Errors []FieldError `json:"errors"`
}
