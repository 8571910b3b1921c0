// File: internal/dto/list_login_events_request.go
package dto

// swagger:model dto.ListLoginEventsRequest
type ListLoginEventsRequest struct {
	Username string `query:"username" validate:"required" example:"alice"`
	Limit    int    `query:"limit" validate:"omitempty,min=1,max=100" example:"20"`
}
