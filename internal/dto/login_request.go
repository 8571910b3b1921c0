// File: internal/dto/login_request.go
package dto

// LoginRequest 代理登入的表單欄位，原樣轉送給上游身分提供者
// swagger:model dto.LoginRequest
type LoginRequest struct {
	Username string `form:"username" validate:"required" example:"alice"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}
