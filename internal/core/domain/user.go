package domain

import (
	"errors"
	"time"
)

// Department is the organisational unit a user belongs to.
type Department string

const (
	DepartmentMarketing   Department = "MARKETING"
	DepartmentSales       Department = "SALES"
	DepartmentEngineering Department = "ENGINEERING"
	DepartmentHR          Department = "HR"
)

// DefaultDepartment is assigned when a user registers without picking one.
const DefaultDepartment = DepartmentMarketing

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserCreateFailed = errors.New("user creation failed")

// ValidDepartment reports whether d is one of the known departments.
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentMarketing, DepartmentSales, DepartmentEngineering, DepartmentHR:
		return true
	}
	return false
}

// Profile holds the user-editable fields shown alongside kudos.
// ProfilePicture is a URL to an externally hosted image.
type Profile struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Department     Department `json:"department"`
	ProfilePicture string     `json:"profile_picture,omitempty"`
}

// FullName returns "First Last" for display and feed filtering.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}

// User models a registered account. PasswordHash is always a bcrypt digest,
// never the plaintext, and is excluded from JSON output.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
