package dto

// Response is the envelope returned by every registry API route.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail builds a failed envelope.
func Fail(message string) Response {
	return Response{Success: false, Error: message}
}
