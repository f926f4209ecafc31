package common

// SuccessResponse is the envelope of every successful JSON response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed JSON response
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// LimitRequest is the common query parameter of list endpoints
type LimitRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
