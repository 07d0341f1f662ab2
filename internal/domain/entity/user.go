package entity

import "time"

// Role is the single authorization role representation. Earlier schema
// generations carried a separate isAdmin boolean; it is gone.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// DefaultProfilePicture is assigned to new accounts until they upload one.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash and must never be serialized to clients.
type User struct {
	ID             string
	Username       string
	Email          string
	Password       string
	ProfilePicture string
	Role           Role
	VerifyOTP      string
	VerifyOTPExp   time.Time
	ResetOTP       string
	ResetOTPExp    time.Time
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModerate is the single ownership/role check used by every handler:
// the owner of a resource or an admin may mutate it.
func (u *User) CanModerate(ownerID string) bool {
	return u.IsAdmin() || u.ID == ownerID
}

// Public returns the client-visible projection of the user.
// The password hash and OTP fields never leave the server.
func (u *User) Public() map[string]any {
	return map[string]any{
		"id":             u.ID,
		"username":       u.Username,
		"email":          u.Email,
		"profilePicture": u.ProfilePicture,
		"role":           u.Role,
		"isVerified":     u.IsVerified,
		"createdAt":      u.CreatedAt,
		"updatedAt":      u.UpdatedAt,
	}
}
