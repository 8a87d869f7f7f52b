// Package response defines the JSON envelope shared by all HTTP handlers.
package response

// Body is the uniform response envelope.
type Body struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// OK builds a success envelope with an optional data payload.
func OK(message string, data any) Body {
	return Body{Success: true, Message: message, Data: data}
}

// Error builds a failure envelope.
func Error(message string) Body {
	return Body{Success: false, Message: message}
}
