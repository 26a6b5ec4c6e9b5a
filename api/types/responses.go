package types

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// TaskAccepted is returned when background work has been queued.
type TaskAccepted struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// Error builds an ErrorResponse.
func Error(message string) ErrorResponse {
	return ErrorResponse{Status: "error", Message: message}
}
