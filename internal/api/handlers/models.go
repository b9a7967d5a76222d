package handlers

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Error string `json:"error"`
}
