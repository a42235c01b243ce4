// File: internal/dto/reset_password_response.go
package dto

// swagger:model dto.ResetPasswordResponse
type ResetPasswordResponse struct {
	Success bool `json:"success" example:"true"`
}
