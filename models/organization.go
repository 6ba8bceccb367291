package models

import "time"

// Organization represents a vendor organization in the marketplace
type Organization struct {
	ID            string    `json:"id" dynamodbav:"id" validate:"omitempty,uuid4"`
	LegalName     string    `json:"legalName" dynamodbav:"legal_name" validate:"required,min=2,max=100"`
	WebsiteURL    string    `json:"websiteUrl,omitempty" dynamodbav:"website_url,omitempty" validate:"omitempty,url,max=200"`
	StreetAddress string    `json:"streetAddress,omitempty" dynamodbav:"street_address,omitempty" validate:"omitempty,max=200"`
	City          string    `json:"city,omitempty" dynamodbav:"city,omitempty" validate:"omitempty,min=2,max=50"`
	Region        string    `json:"region,omitempty" dynamodbav:"region,omitempty" validate:"omitempty,min=2,max=50"`
	Country       string    `json:"country,omitempty" dynamodbav:"country,omitempty" validate:"omitempty,min=2,max=50"`
	MailCode      string    `json:"mailCode,omitempty" dynamodbav:"mail_code,omitempty" validate:"omitempty,min=3,max=20"`
	ContactName   string    `json:"contactName,omitempty" dynamodbav:"contact_name,omitempty" validate:"omitempty,max=100"`
	ContactEmail  string    `json:"contactEmail,omitempty" dynamodbav:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone  string    `json:"contactPhone,omitempty" dynamodbav:"contact_phone,omitempty" validate:"omitempty,e164"`
	Active        bool      `json:"active" dynamodbav:"active"`
	CreatedAt     time.Time `json:"createdAt" dynamodbav:"created_at" validate:"omitempty"`
	UpdatedAt     time.Time `json:"updatedAt" dynamodbav:"updated_at" validate:"omitempty"`
	CreatedBy     string    `json:"createdBy" dynamodbav:"created_by" validate:"omitempty"`
	UpdatedBy     string    `json:"updatedBy,omitempty" dynamodbav:"updated_by,omitempty" validate:"omitempty"`
	Version       int64     `json:"-" dynamodbav:"version"`
}

// OrganizationSlim is the summary shape returned by collection endpoints.
type OrganizationSlim struct {
	ID        string `json:"id"`
	LegalName string `json:"legalName"`
	Active    bool   `json:"active"`
}

// Slim converts an organization to its summary shape.
func (o *Organization) Slim() OrganizationSlim {
	return OrganizationSlim{ID: o.ID, LegalName: o.LegalName, Active: o.Active}
}
