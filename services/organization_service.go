package services

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

// MsgOrganizationRaced is surfaced when a conditional write loses a race.
const MsgOrganizationRaced = "The organization was modified by another request. Please try again."

// OrganizationService owns the organizations resource. Creating an
// organization also seeds the creator's active owner membership.
type OrganizationService struct {
	orgRepo         repository.OrganizationRepositoryInterface
	affiliationRepo repository.AffiliationRepositoryInterface
	logger          logger.Logger
}

func NewOrganizationService(
	orgRepo repository.OrganizationRepositoryInterface,
	affiliationRepo repository.AffiliationRepositoryInterface,
	log logger.Logger,
) *OrganizationService {
	return &OrganizationService{
		orgRepo:         orgRepo,
		affiliationRepo: affiliationRepo,
		logger:          log,
	}
}

// CreateOrganizationIntention is the validated description of an
// organization creation.
type CreateOrganizationIntention struct {
	Organization models.Organization
	OwnerID      string
}

// ValidateCreate runs the creation guard.
func (s *OrganizationService) ValidateCreate(ctx context.Context, session *models.Session, org *models.Organization) (validation.Validation[CreateOrganizationIntention], error) {
	if errs := validation.Struct(validate, org); !errs.Empty() {
		return validation.Invalid[CreateOrganizationIntention](errs), nil
	}
	if !permissions.CreateOrganization(session) {
		return validation.Invalid[CreateOrganizationIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(CreateOrganizationIntention{
		Organization: *org,
		OwnerID:      session.UserID,
	}), nil
}

// ExecuteCreate writes the organization and then the creator's owner
// membership. The membership write is not rolled back into the
// organization write; a failure leaves an ownerless organization that the
// affiliation resource can repair.
func (s *OrganizationService) ExecuteCreate(ctx context.Context, intention CreateOrganizationIntention) (*models.Organization, error) {
	org := intention.Organization
	org.Active = true
	org.CreatedBy = intention.OwnerID
	org.UpdatedBy = intention.OwnerID

	created, err := s.orgRepo.CreateOrganization(ctx, &org)
	if err != nil {
		return nil, err
	}

	_, err = s.affiliationRepo.CreateAffiliation(ctx, &models.Affiliation{
		UserID:           intention.OwnerID,
		OrganizationID:   created.ID,
		MembershipType:   models.MembershipTypeOwner,
		MembershipStatus: models.MembershipStatusActive,
	})
	if err != nil {
		s.logger.Errorf("Organization %s created without owner membership: %v", created.ID, err)
		return nil, err
	}
	return created, nil
}

// ReadOne returns the full record to the organization's owners and admins
// and the summary shape to everyone else.
func (s *OrganizationService) ReadOne(ctx context.Context, session *models.Session, id string) (interface{}, validation.Errors, error) {
	org, err := s.orgRepo.ReadOneOrganization(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if org == nil || !org.Active {
		return nil, validation.Errors{"organization": {MsgOrganizationNotFound}}, nil
	}

	owner, err := permissions.IsOrgOwner(ctx, s.affiliationRepo, session, org.ID)
	if err != nil {
		return nil, nil, err
	}
	if owner {
		return org, nil, nil
	}
	return org.Slim(), nil, nil
}

// ReadMany lists active organization summaries.
func (s *OrganizationService) ReadMany(ctx context.Context) ([]models.OrganizationSlim, error) {
	orgs, err := s.orgRepo.ReadManyOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	slims := make([]models.OrganizationSlim, 0, len(orgs))
	for _, o := range orgs {
		if !o.Active {
			continue
		}
		slims = append(slims, o.Slim())
	}
	return slims, nil
}

// ReadManyOwned lists the organizations the session user actively owns.
func (s *OrganizationService) ReadManyOwned(ctx context.Context, session *models.Session) ([]models.OrganizationSlim, validation.Errors, error) {
	if !permissions.ReadManyOwnedOrganizations(session) {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}

	affiliations, err := s.affiliationRepo.ReadManyAffiliationsForUser(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	slims := make([]models.OrganizationSlim, 0, len(affiliations))
	for _, a := range affiliations {
		if !a.IsActiveOwner() {
			continue
		}
		org, err := s.orgRepo.ReadOneOrganization(ctx, a.OrganizationID)
		if err != nil {
			return nil, nil, err
		}
		if org == nil || !org.Active {
			continue
		}
		slims = append(slims, org.Slim())
	}
	return slims, nil, nil
}

// ValidateUpdate runs the update guard; owners and admins may edit.
func (s *OrganizationService) ValidateUpdate(ctx context.Context, session *models.Session, id string, updated *models.Organization) (validation.Validation[*models.Organization], error) {
	var zero validation.Validation[*models.Organization]

	if errs := validation.Struct(validate, updated); !errs.Empty() {
		return validation.Invalid[*models.Organization](errs), nil
	}

	org, err := s.orgRepo.ReadOneOrganization(ctx, id)
	if err != nil {
		return zero, err
	}
	if org == nil || !org.Active {
		return validation.Invalid[*models.Organization](validation.Errors{"organization": {MsgOrganizationNotFound}}), nil
	}

	owner, err := permissions.IsOrgOwner(ctx, s.affiliationRepo, session, org.ID)
	if err != nil {
		return zero, err
	}
	if !owner {
		return validation.Invalid[*models.Organization](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(org), nil
}

// ExecuteUpdate performs the single conditional write for an accepted
// organization edit.
func (s *OrganizationService) ExecuteUpdate(ctx context.Context, session *models.Session, org *models.Organization, updated *models.Organization) (*models.Organization, validation.Errors, error) {
	result, err := s.orgRepo.UpdateOrganization(ctx, org, map[string]interface{}{
		"legal_name":     updated.LegalName,
		"website_url":    updated.WebsiteURL,
		"street_address": updated.StreetAddress,
		"city":           updated.City,
		"region":         updated.Region,
		"country":        updated.Country,
		"mail_code":      updated.MailCode,
		"contact_name":   updated.ContactName,
		"contact_email":  updated.ContactEmail,
		"contact_phone":  updated.ContactPhone,
		"updated_by":     sessionUserID(session),
	})
	if err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"organization": {MsgOrganizationRaced}}, nil
		}
		return nil, nil, err
	}
	return result, nil, nil
}

// ValidateDelete runs the removal guard; only admins may deactivate.
func (s *OrganizationService) ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.Organization], error) {
	var zero validation.Validation[*models.Organization]

	org, err := s.orgRepo.ReadOneOrganization(ctx, id)
	if err != nil {
		return zero, err
	}
	if org == nil || !org.Active {
		return validation.Invalid[*models.Organization](validation.Errors{"organization": {MsgOrganizationNotFound}}), nil
	}
	if !permissions.DeleteOrganization(session) {
		return validation.Invalid[*models.Organization](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(org), nil
}

// ExecuteDelete deactivates the organization. Memberships are left in
// place so history stays queryable.
func (s *OrganizationService) ExecuteDelete(ctx context.Context, org *models.Organization) (*models.Organization, validation.Errors, error) {
	if err := s.orgRepo.DeleteOrganization(ctx, org); err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"organization": {MsgOrganizationRaced}}, nil
		}
		return nil, nil, err
	}
	org.Active = false
	return org, nil, nil
}
