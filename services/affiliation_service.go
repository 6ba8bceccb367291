package services

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/permissions"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils/logger"
	"github.com/ytgov/digital-marketplace/validation"
)

// Messages surfaced by the affiliation guards.
const (
	MsgAffiliationNotFound   = "The specified affiliation was not found."
	MsgUserNotFound          = "The specified user was not found."
	MsgOrganizationNotFound  = "The specified organization was not found."
	MsgMembershipNotPending  = "Membership is not pending."
	MsgSoleOwner             = "Unable to remove membership. This is the sole owner for this organization."
	MsgMembershipRaced       = "The membership was modified by another request. Please try again."
)

// AffiliationService implements the affiliation state machine:
// created PENDING (new relation) or ACTIVE (reactivation), approved
// PENDING -> ACTIVE, and hard-deleted under the sole-owner invariant.
type AffiliationService struct {
	affiliationRepo repository.AffiliationRepositoryInterface
	userRepo        repository.UserRepositoryInterface
	orgRepo         repository.OrganizationRepositoryInterface
	logger          logger.Logger
}

func NewAffiliationService(
	affiliationRepo repository.AffiliationRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	orgRepo repository.OrganizationRepositoryInterface,
	log logger.Logger,
) *AffiliationService {
	return &AffiliationService{
		affiliationRepo: affiliationRepo,
		userRepo:        userRepo,
		orgRepo:         orgRepo,
		logger:          log,
	}
}

// CreateAffiliationIntention is the fully validated, not-yet-executed
// description of an affiliation creation.
type CreateAffiliationIntention struct {
	UserID           string
	OrganizationID   string
	MembershipType   models.MembershipType
	MembershipStatus models.MembershipStatus
}

// ValidateCreate runs the creation guard. The tie-break between a new
// PENDING membership and an ACTIVE reactivation depends solely on whether
// any prior record exists for the (user, organization) pair.
func (s *AffiliationService) ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateAffiliationRequest) (validation.Validation[CreateAffiliationIntention], error) {
	var zero validation.Validation[CreateAffiliationIntention]

	user, err := s.userRepo.ReadOneUser(ctx, req.User)
	if err != nil {
		return zero, err
	}
	organization, err := s.orgRepo.ReadOneOrganization(ctx, req.Organization)
	if err != nil {
		return zero, err
	}
	validatedType := validation.ValidateMembershipType(req.MembershipType)

	errs := validation.Errors{}
	if user == nil {
		errs.Add("user", MsgUserNotFound)
	}
	if organization == nil || !organization.Active {
		errs.Add("organization", MsgOrganizationNotFound)
	}
	if !validatedType.Ok() {
		errs.Add("membershipType", validatedType.Messages()...)
	}
	if !errs.Empty() {
		return validation.Invalid[CreateAffiliationIntention](errs), nil
	}

	existing, err := s.affiliationRepo.ReadOneAffiliation(ctx, req.User, req.Organization)
	if err != nil {
		return zero, err
	}

	if existing == nil {
		if !permissions.CreateAffiliation(session, req.User) {
			return validation.Invalid[CreateAffiliationIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
		}
		return validation.Valid(CreateAffiliationIntention{
			UserID:           req.User,
			OrganizationID:   req.Organization,
			MembershipType:   validatedType.Value(),
			MembershipStatus: models.MembershipStatusPending,
		}), nil
	}

	allowed, err := permissions.UpdateAffiliation(ctx, s.affiliationRepo, session, req.Organization)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[CreateAffiliationIntention](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	// A prior relation exists: reactivate as ACTIVE with the requested role.
	return validation.Valid(CreateAffiliationIntention{
		UserID:           req.User,
		OrganizationID:   req.Organization,
		MembershipType:   validatedType.Value(),
		MembershipStatus: models.MembershipStatusActive,
	}), nil
}

// ExecuteCreate performs the single write for an accepted creation.
func (s *AffiliationService) ExecuteCreate(ctx context.Context, intention CreateAffiliationIntention) (*models.Affiliation, error) {
	return s.affiliationRepo.CreateAffiliation(ctx, &models.Affiliation{
		UserID:           intention.UserID,
		OrganizationID:   intention.OrganizationID,
		MembershipType:   intention.MembershipType,
		MembershipStatus: intention.MembershipStatus,
	})
}

// ValidateApprove runs the PENDING -> ACTIVE guard.
func (s *AffiliationService) ValidateApprove(ctx context.Context, session *models.Session, affiliationID string) (validation.Validation[*models.Affiliation], error) {
	var zero validation.Validation[*models.Affiliation]

	affiliation, err := s.affiliationRepo.ReadOneAffiliationByID(ctx, affiliationID)
	if err != nil {
		return zero, err
	}
	if affiliation == nil {
		return validation.Invalid[*models.Affiliation](validation.Errors{"affiliation": {MsgAffiliationNotFound}}), nil
	}
	if affiliation.MembershipStatus != models.MembershipStatusPending {
		return validation.Invalid[*models.Affiliation](validation.Errors{"affiliation": {MsgMembershipNotPending}}), nil
	}

	allowed, err := permissions.UpdateAffiliation(ctx, s.affiliationRepo, session, affiliation.OrganizationID)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[*models.Affiliation](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(affiliation), nil
}

// ExecuteApprove performs the single conditional write for an approval.
func (s *AffiliationService) ExecuteApprove(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, validation.Errors, error) {
	approved, err := s.affiliationRepo.ApproveAffiliation(ctx, affiliation)
	if err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"affiliation": {MsgMembershipRaced}}, nil
		}
		return nil, nil, err
	}
	return approved, nil, nil
}

// ValidateDelete runs the removal guard. The sole-owner invariant is
// evaluated before the permission check so an unauthorized-but-also-invalid
// request reports the invariant violation, not a permission leak.
func (s *AffiliationService) ValidateDelete(ctx context.Context, session *models.Session, affiliationID string) (validation.Validation[*models.Affiliation], error) {
	var zero validation.Validation[*models.Affiliation]

	affiliation, err := s.affiliationRepo.ReadOneAffiliationByID(ctx, affiliationID)
	if err != nil {
		return zero, err
	}
	if affiliation == nil {
		return validation.Invalid[*models.Affiliation](validation.Errors{"affiliation": {MsgAffiliationNotFound}}), nil
	}

	if affiliation.MembershipType == models.MembershipTypeOwner {
		count, err := s.affiliationRepo.ReadActiveOwnerCount(ctx, affiliation.OrganizationID)
		if err != nil {
			return zero, err
		}
		if count == 1 {
			return validation.Invalid[*models.Affiliation](validation.Errors{"affiliation": {MsgSoleOwner}}), nil
		}
	}

	allowed, err := permissions.DeleteAffiliation(ctx, s.affiliationRepo, session, affiliation.UserID, affiliation.OrganizationID)
	if err != nil {
		return zero, err
	}
	if !allowed {
		return validation.Invalid[*models.Affiliation](validation.PermissionErrors(permissions.ErrorMessage)), nil
	}
	return validation.Valid(affiliation), nil
}

// ExecuteDelete performs the single conditional delete and returns the
// removed record's last known state.
func (s *AffiliationService) ExecuteDelete(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, validation.Errors, error) {
	if err := s.affiliationRepo.DeleteAffiliation(ctx, affiliation); err != nil {
		if isConditionFailed(err) {
			return nil, validation.Errors{"affiliation": {MsgMembershipRaced}}, nil
		}
		return nil, nil, err
	}
	return affiliation, nil, nil
}

// ReadMany lists the session user's memberships with organization summaries.
func (s *AffiliationService) ReadMany(ctx context.Context, session *models.Session) ([]models.AffiliationSlim, validation.Errors, error) {
	if !permissions.ReadManyAffiliations(session) {
		return nil, validation.PermissionErrors(permissions.ErrorMessage), nil
	}
	affiliations, err := s.affiliationRepo.ReadManyAffiliationsForUser(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}

	slims := make([]models.AffiliationSlim, 0, len(affiliations))
	for _, a := range affiliations {
		organization, err := s.orgRepo.ReadOneOrganization(ctx, a.OrganizationID)
		if err != nil {
			return nil, nil, err
		}
		slim := models.AffiliationSlim{
			ID:               a.ID,
			MembershipType:   a.MembershipType,
			MembershipStatus: a.MembershipStatus,
		}
		if organization != nil {
			slim.Organization = organization.Slim()
		}
		slims = append(slims, slim)
	}
	return slims, nil, nil
}
