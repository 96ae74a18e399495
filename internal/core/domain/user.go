package domain

import "time"

const (
	RoleFreelancer = "freelancer"
	RoleEmployer   = "employer"
)

// MinPasswordLength is the shortest plaintext password accepted at signup.
const MinPasswordLength = 6

// ValidRole reports whether role is one of the two account roles.
func ValidRole(role string) bool {
	return role == RoleFreelancer || role == RoleEmployer
}

// User models a registered account. Role is fixed at creation.
type User struct {
	ID           string    `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Bio          string    `json:"bio,omitempty"`
	Skills       []string  `json:"skills"`
	Rating       float64   `json:"rating"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserSummary is the minimal projection used when listing applicants.
type UserSummary struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Summary projects u down to its display fields.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// ProfilePatch carries a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Bio    *string
	Skills *[]string
	Image  *string
}

// Empty reports whether the patch would change nothing.
func (p ProfilePatch) Empty() bool {
	return p.Bio == nil && p.Skills == nil && p.Image == nil
}
