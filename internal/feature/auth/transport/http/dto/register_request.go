// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// RegisterReq represents the request body for the /auth/register endpoint.
// It uses Gin's binding tags for validation (required, email format, password length).
type RegisterReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"omitempty,max=255"`
}

// RegisterRes represents the response for a successful registration.
// No tokens are issued at registration; the client logs in afterwards.
type RegisterRes struct {
	Message string `json:"message"`
	UserID  uint   `json:"userId"`
}
