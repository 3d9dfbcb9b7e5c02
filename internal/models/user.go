package models

import "time"

// UserType distinguishes the kinds of accounts on the platform.
type UserType string

const (
	UserTypePerson       UserType = "person"
	UserTypeOrganization UserType = "organization"
	UserTypeAdmin        UserType = "admin"
)

// User represents a registered platform user.
type User struct {
	ID               string    `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	FirstName        string    `json:"first_name" db:"first_name"`
	LastName         string    `json:"last_name" db:"last_name"`
	OrganizationName string    `json:"organization_name" db:"organization_name"`
	Avatar           string    `json:"avatar" db:"avatar"`
	UserType         UserType  `json:"user_type" db:"user_type"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// FullName returns the user's full name.
func (u *User) FullName() string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.FirstName
}

// DisplayName returns the best display name for the user.
func (u *User) DisplayName() string {
	if u.UserType == UserTypeOrganization && u.OrganizationName != "" {
		return u.OrganizationName
	}
	return u.FullName()
}

// Author is the read-only projection of a User that is attached to
// comments and donations in API responses. It is never mutated on its own.
type Author struct {
	ID               string   `json:"id"`
	FirstName        string   `json:"firstName"`
	LastName         string   `json:"lastName"`
	OrganizationName string   `json:"organizationName,omitempty"`
	Avatar           string   `json:"avatar,omitempty"`
	UserType         UserType `json:"userType"`
}

// AsAuthor projects the user onto the fields exposed in responses.
func (u *User) AsAuthor() *Author {
	return &Author{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		OrganizationName: u.OrganizationName,
		Avatar:           u.Avatar,
		UserType:         u.UserType,
	}
}
