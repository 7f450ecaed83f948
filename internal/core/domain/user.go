package domain

import "time"

// Role identifies which half of the authorization model a user belongs to.
type Role string

const (
	RoleAdmin Role = "admin"
	// RoleProvider is stored and transmitted as "doctor".
	RoleProvider Role = "doctor"
)

// SessionTTL is the fixed lifetime of an issued session token.
const SessionTTL = time.Hour

// AdminEmailDomain is appended to seed admin usernames to build their email.
const AdminEmailDomain = "meddetector.com"

// User models an account in the credential store.
type User struct {
	ID                string    `json:"_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	PasswordHash      []byte    `json:"-"`
	Role              Role      `json:"role"`
	Approved          bool      `json:"approved"`
	HospitalName      string    `json:"hospital_name,omitempty"`
	ContactNumber     string    `json:"contact_number,omitempty"`
	Specialization    string    `json:"specialization,omitempty"`
	YearsOfExperience int       `json:"years_of_experience,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// IsApproved reports whether the user may use approval-gated features.
// Administrators are always approved whatever the stored flag says.
func (u *User) IsApproved() bool {
	return u.Role == RoleAdmin || u.Approved
}

// Profile is the non-sensitive view a provider gets of their own account.
type Profile struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	HospitalName      string `json:"hospital_name"`
	ContactNumber     string `json:"contact_number"`
	Specialization    string `json:"specialization,omitempty"`
	YearsOfExperience int    `json:"years_of_experience,omitempty"`
	Approved          bool   `json:"approved"`
}

// Profile returns the user's public profile fields.
func (u *User) Profile() Profile {
	return Profile{
		Username:          u.Username,
		Email:             u.Email,
		HospitalName:      u.HospitalName,
		ContactNumber:     u.ContactNumber,
		Specialization:    u.Specialization,
		YearsOfExperience: u.YearsOfExperience,
		Approved:          u.Approved,
	}
}

// SeedAdmin is one entry of the administrator bootstrap list.
type SeedAdmin struct {
	Username string
	Password string
}

// Email returns the address assigned to a seeded administrator.
func (s SeedAdmin) Email() string {
	return s.Username + "@" + AdminEmailDomain
}

// DefaultAdmins is the built-in bootstrap list used when none is configured.
var DefaultAdmins = []SeedAdmin{
	{Username: "ragu", Password: "ragu123"},
	{Username: "ji", Password: "ji"},
	{Username: "ai", Password: "ai123"},
}
