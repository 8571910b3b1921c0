// File: internal/dto/login_event_response.go
package dto

import "time"

// swagger:model dto.LoginEventResponse
type LoginEventResponse struct {
	ID        int       `json:"id" example:"1"`
	Username  string    `json:"username" example:"alice"`
	TokenType string    `json:"token_type" example:"Bearer"`
	Source    string    `json:"source" example:"upstream"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
}
