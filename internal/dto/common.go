package dto

type ErrorResponse struct {
	Error           bool   `json:"error"`
	Message         string `json:"message"`
	RequiresUpgrade bool   `json:"requiresUpgrade,omitempty"`
	Limit           int    `json:"limit,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
