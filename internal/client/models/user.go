// Package models defines the tracker entities exchanged with the API.
// Field names follow the server's snake_case JSON.
package models

const RoleAdmin = "admin"

// UserProfile is the signed-in user. The /me endpoint answers with token
// claims, where the id is carried in "sub"; see Normalize.
type UserProfile struct {
	ID                  string `json:"id"`
	Sub                 string `json:"sub,omitempty"`
	Username            string `json:"username"`
	FullName            string `json:"full_name"`
	Role                string `json:"role"`
	CreatedAt           string `json:"created_at,omitempty"`
	ForceChangePassword bool   `json:"force_change_password"`
}

// Normalize fills ID from Sub when the profile came from token claims.
func (u *UserProfile) Normalize() {
	if u.ID == "" {
		u.ID = u.Sub
	}
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}
