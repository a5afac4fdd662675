package models

type PushPayload struct {
	UserPhone string                 `json:"user_phone"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Icon      string                 `json:"icon,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

type PushResult struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Message string `json:"message"`
}
