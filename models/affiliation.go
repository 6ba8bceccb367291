package models

import "time"

// MembershipType represents a user's role within an organization
type MembershipType string

const (
	MembershipTypeOwner  MembershipType = "OWNER"
	MembershipTypeMember MembershipType = "MEMBER"
)

// MembershipStatus represents the approval state of a membership
type MembershipStatus string

const (
	MembershipStatusPending  MembershipStatus = "PENDING"
	MembershipStatusActive   MembershipStatus = "ACTIVE"
	MembershipStatusInactive MembershipStatus = "INACTIVE"
)

// Affiliation links a user to an organization with a role and approval status.
type Affiliation struct {
	ID               string           `json:"id" dynamodbav:"id"`
	UserID           string           `json:"user" dynamodbav:"user_id"`
	OrganizationID   string           `json:"organization" dynamodbav:"organization_id"`
	MembershipType   MembershipType   `json:"membershipType" dynamodbav:"membership_type"`
	MembershipStatus MembershipStatus `json:"membershipStatus" dynamodbav:"membership_status"`
	CreatedAt        time.Time        `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt        time.Time        `json:"updatedAt" dynamodbav:"updated_at"`
	Version          int64            `json:"-" dynamodbav:"version"`
}

// IsActiveOwner reports whether this affiliation counts toward the
// organization's active owner total.
func (a *Affiliation) IsActiveOwner() bool {
	return a.MembershipType == MembershipTypeOwner && a.MembershipStatus == MembershipStatusActive
}

// AffiliationSlim is the summary shape returned by collection endpoints.
type AffiliationSlim struct {
	ID               string           `json:"id"`
	Organization     OrganizationSlim `json:"organization"`
	MembershipType   MembershipType   `json:"membershipType"`
	MembershipStatus MembershipStatus `json:"membershipStatus"`
}

// CreateAffiliationRequest is the creation body for the affiliations resource.
// Parsing is lenient; all real validation happens in the service guard.
type CreateAffiliationRequest struct {
	User           string `json:"user"`
	Organization   string `json:"organization"`
	MembershipType string `json:"membershipType"`
}
