package models

import (
	"fmt"
	"regexp"
	"time"
)

// Roles a user can hold. Superuser is not a fourth role: it is an orthogonal
// flag that IsAdmin folds into the admin variant.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User represents an account on the platform.
type User struct {
	ID       uint   `json:"-" gorm:"primaryKey"`
	Username string `json:"username" gorm:"uniqueIndex;type:varchar(150);not null" validate:"required,max=150,username"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(254);not null" validate:"required,email,max=254"`
	Role     string `json:"role" gorm:"type:varchar(20);default:user" validate:"omitempty,oneof=user moderator admin"`

	Bio       string `json:"bio"`
	FirstName string `json:"first_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`
	LastName  string `json:"last_name" gorm:"type:varchar(150)" validate:"omitempty,max=150"`

	IsSuperuser bool `json:"-"`

	ConfirmationCode string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash of the latest issued code

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// IsAdmin reports whether the user holds admin privileges. The superuser flag
// is an alias for the admin role; every policy check goes through here rather
// than inspecting Role and IsSuperuser separately.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// IsModerator reports whether the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// ValidateUsername checks a username against the allowed pattern and rejects
// the reserved value "me", which collides with the /users/me route.
func ValidateUsername(username string) error {
	if username == "me" {
		return fmt.Errorf("username %q is reserved", username)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username contains forbidden characters")
	}
	return nil
}
