package models

// SignupRequest represents the request body for user creation
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,max=255"`
}

// TokenRequest represents the request body for token issuance
type TokenRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest represents a partial update of the caller's own record (PATCH).
// Only these fields are writable; anything else in the payload is ignored.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password"`
	Name     *string `json:"name" binding:"omitempty,max=255"`
}

// ReplaceUserRequest represents a full update of the caller's own record (PUT)
type ReplaceUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,max=255"`
}

// AsUpdate converts a full update into the partial form the service applies
func (r *ReplaceUserRequest) AsUpdate() *UpdateUserRequest {
	return &UpdateUserRequest{Email: &r.Email, Password: &r.Password, Name: &r.Name}
}
