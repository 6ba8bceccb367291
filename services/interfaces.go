package services

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/validation"
)

// Guard methods return (Validation, error): the Validation carries the
// accept/reject decision, the error reports a collaborator failure that
// callers map to a 503.

// UserServiceInterface defines the contract for the users resource.
type UserServiceInterface interface {
	ValidateRegister(ctx context.Context, req *models.RegisterUser) (validation.Validation[RegisterIntention], error)
	ExecuteRegister(ctx context.Context, intention RegisterIntention) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, validation.Errors, error)
	ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateUserRequest) (validation.Validation[UserTransition], error)
	ExecuteUpdate(ctx context.Context, transition UserTransition) (*models.User, validation.Errors, error)
	ReadOne(ctx context.Context, session *models.Session, id string) (*models.User, validation.Errors, error)
	ReadMany(ctx context.Context, session *models.Session) ([]models.UserSlim, validation.Errors, error)
}

// OrganizationServiceInterface defines the contract for the organizations
// resource.
type OrganizationServiceInterface interface {
	ValidateCreate(ctx context.Context, session *models.Session, org *models.Organization) (validation.Validation[CreateOrganizationIntention], error)
	ExecuteCreate(ctx context.Context, intention CreateOrganizationIntention) (*models.Organization, error)
	ReadOne(ctx context.Context, session *models.Session, id string) (interface{}, validation.Errors, error)
	ReadMany(ctx context.Context) ([]models.OrganizationSlim, error)
	ReadManyOwned(ctx context.Context, session *models.Session) ([]models.OrganizationSlim, validation.Errors, error)
	ValidateUpdate(ctx context.Context, session *models.Session, id string, updated *models.Organization) (validation.Validation[*models.Organization], error)
	ExecuteUpdate(ctx context.Context, session *models.Session, org *models.Organization, updated *models.Organization) (*models.Organization, validation.Errors, error)
	ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.Organization], error)
	ExecuteDelete(ctx context.Context, org *models.Organization) (*models.Organization, validation.Errors, error)
}

// AffiliationServiceInterface defines the contract for the affiliations
// resource.
type AffiliationServiceInterface interface {
	ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateAffiliationRequest) (validation.Validation[CreateAffiliationIntention], error)
	ExecuteCreate(ctx context.Context, intention CreateAffiliationIntention) (*models.Affiliation, error)
	ValidateApprove(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.Affiliation], error)
	ExecuteApprove(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, validation.Errors, error)
	ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.Affiliation], error)
	ExecuteDelete(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, validation.Errors, error)
	ReadMany(ctx context.Context, session *models.Session) ([]models.AffiliationSlim, validation.Errors, error)
}

// OpportunityServiceInterface defines the contract for the Code With Us
// opportunities resource.
type OpportunityServiceInterface interface {
	ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateCWUOpportunityRequest) (validation.Validation[CreateOpportunityIntention], error)
	ExecuteCreate(ctx context.Context, intention CreateOpportunityIntention) (*models.CWUOpportunity, error)
	ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateCWUOpportunityRequest) (validation.Validation[OpportunityTransition], error)
	ExecuteUpdate(ctx context.Context, transition OpportunityTransition) (*models.CWUOpportunity, validation.Errors, error)
	ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.CWUOpportunity], error)
	ExecuteDelete(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, validation.Errors, error)
	ReadOne(ctx context.Context, session *models.Session, id string) (*models.CWUOpportunity, validation.Errors, error)
	ReadMany(ctx context.Context, session *models.Session) ([]models.CWUOpportunitySlim, error)
	SaveAndPublish(ctx context.Context, session *models.Session, id string, doc *models.CWUOpportunityDocument) (*models.CWUOpportunity, validation.Errors, bool, error)
	SweepDeadlines(ctx context.Context) (int, error)
}

// ProposalServiceInterface defines the contract for the Code With Us
// proposals resource.
type ProposalServiceInterface interface {
	ValidateCreate(ctx context.Context, session *models.Session, req *models.CreateCWUProposalRequest) (validation.Validation[CreateProposalIntention], error)
	ExecuteCreate(ctx context.Context, intention CreateProposalIntention) (*models.CWUProposal, error)
	ValidateUpdate(ctx context.Context, session *models.Session, id string, req *models.UpdateCWUProposalRequest) (validation.Validation[ProposalTransition], error)
	ExecuteUpdate(ctx context.Context, transition ProposalTransition) (*models.CWUProposal, validation.Errors, error)
	ValidateDelete(ctx context.Context, session *models.Session, id string) (validation.Validation[*models.CWUProposal], error)
	ExecuteDelete(ctx context.Context, proposal *models.CWUProposal) (*models.CWUProposal, validation.Errors, error)
	ReadOne(ctx context.Context, session *models.Session, id string) (*models.CWUProposal, validation.Errors, error)
	ReadMany(ctx context.Context, session *models.Session, opportunityID string) ([]models.CWUProposalSlim, validation.Errors, error)
	SaveAndSubmit(ctx context.Context, session *models.Session, id string, doc *models.CWUProposalDocument) (*models.CWUProposal, validation.Errors, bool, error)
}
