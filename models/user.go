package models

import "time"

// UserType represents the kind of account a user holds
type UserType string

const (
	UserTypeVendor     UserType = "VENDOR"
	UserTypeGovernment UserType = "GOV"
	UserTypeAdmin      UserType = "ADMIN"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive          UserStatus = "ACTIVE"
	UserStatusInactiveByUser  UserStatus = "INACTIVE_USER"
	UserStatusInactiveByAdmin UserStatus = "INACTIVE_ADMIN"
)

// User represents a user in the system
type User struct {
	ID             string     `json:"id" dynamodbav:"id"`
	Type           UserType   `json:"type" dynamodbav:"type"`
	Status         UserStatus `json:"status" dynamodbav:"status"`
	Name           string     `json:"name" dynamodbav:"name"`
	Email          string     `json:"email" dynamodbav:"email"`
	JobTitle       string     `json:"jobTitle,omitempty" dynamodbav:"job_title,omitempty"`
	PasswordHash   string     `json:"-" dynamodbav:"password_hash"`
	AcceptedTerms  *time.Time `json:"acceptedTerms,omitempty" dynamodbav:"accepted_terms,omitempty"`
	NotificationsOn bool      `json:"notificationsOn" dynamodbav:"notifications_on"`
	CreatedAt      time.Time  `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" dynamodbav:"updated_at"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty" dynamodbav:"last_login_at,omitempty"`
	Version        int64      `json:"-" dynamodbav:"version"`
}

// UserSlim is the summary shape returned by collection endpoints.
type UserSlim struct {
	ID   string   `json:"id"`
	Type UserType `json:"type"`
	Name string   `json:"name"`
}

// Slim converts a user to its summary shape.
func (u *User) Slim() UserSlim {
	return UserSlim{ID: u.ID, Type: u.Type, Name: u.Name}
}

// HasAcceptedTerms reports whether the user has accepted the current
// terms of service. Proposal submission requires this.
func (u *User) HasAcceptedTerms() bool {
	return u.AcceptedTerms != nil
}

// RegisterUser represents the request structure for user registration
type RegisterUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Type     string `json:"type" validate:"required,oneof=VENDOR GOV"`
	JobTitle string `json:"jobTitle" validate:"omitempty,max=100"`
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=100"`
	Email           string `json:"email" validate:"required,email"`
	JobTitle        string `json:"jobTitle" validate:"omitempty,max=100"`
	NotificationsOn bool   `json:"notificationsOn"`
}

// User update tags. The server dispatches on the tag alone.
const (
	UserTagUpdateProfile = "updateProfile"
	UserTagAcceptTerms   = "acceptTerms"
)

// UpdateUserRequest is the tagged update body for the users resource.
type UpdateUserRequest struct {
	Tag     string                `json:"tag"`
	Profile *UpdateProfileRequest `json:"value,omitempty"`
}
