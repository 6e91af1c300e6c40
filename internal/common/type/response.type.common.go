package types

// Response is what services hand back to handlers; handlers pass it to the
// `send` closure installed by middleware.ResponseInit.
type Response struct {
	Code    int
	Message string
	Data    any
	Error   error
}

// ResponseAPI is the JSON envelope rendered for Response.
type ResponseAPI struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse is the flat error body of fixed-shape public endpoints.
// Details only carries the raw upstream message in development.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
