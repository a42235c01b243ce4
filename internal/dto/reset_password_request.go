// File: internal/dto/reset_password_request.go
package dto

// MissingFieldsMessage 任一必要欄位缺少時的固定錯誤訊息
const MissingFieldsMessage = "Missing required fields: user_id and new_password are required"

// ResetPasswordRequest 管理端重設密碼請求 (JSON body)
// swagger:model dto.ResetPasswordRequest
type ResetPasswordRequest struct {
	// 目標使用者 ID
	// required: true
	UserID string `json:"user_id" validate:"required" example:"6f1c1b9e-3a52-4c1e-9d8e-2f3b0a7c5d11"`

	// 新密碼
	// required: true
	NewPassword string `json:"new_password" validate:"required" example:"hunter2"`
}
