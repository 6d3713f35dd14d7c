package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// OneOf reports whether the role is in the allowed set. Pure so route
// guards stay trivially testable.
func (r Role) OneOf(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

type User struct {
	ID                     uuid.UUID
	Name                   string
	Email                  string
	Photo                  string
	Role                   Role
	PasswordHash           string
	PasswordChangedAt      *time.Time
	PasswordResetTokenHash *string
	PasswordResetExpiresAt *time.Time
	Active                 bool
}

func (u *User) Validate() error {
	if u.Name == "" {
		return ErrInvalidUserName
	}

	if u.Email == "" {
		return ErrInvalidUserEmail
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidUserEmailFormat
	}

	if u.PasswordHash == "" {
		return ErrInvalidUserPassword
	}

	if _, ok := ParseRole(string(u.Role)); !ok {
		return ErrInvalidUserRole
	}

	return nil
}

// FirstName is what outgoing email templates address the user by.
func (u *User) FirstName() string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return name
	}
	return strings.Fields(name)[0]
}

// ChangedPasswordAfter reports whether the password was replaced after the
// given token issue time. Comparison is at second resolution because the
// token's issued-at claim only carries seconds.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
