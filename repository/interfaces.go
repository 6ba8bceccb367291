package repository

import (
	"context"

	"github.com/ytgov/digital-marketplace/models"
)

// Repositories own all persisted state. Read methods return (nil, nil) when
// no record matches; a non-nil error always means the persistence
// collaborator itself failed.

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	ReadOneUser(ctx context.Context, id string) (*models.User, error)
	ReadOneUserByEmail(ctx context.Context, email string) (*models.User, error)
	ReadManyUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User, updates map[string]interface{}) (*models.User, error)
}

// OrganizationRepositoryInterface defines the contract for the organization repository
type OrganizationRepositoryInterface interface {
	CreateOrganization(ctx context.Context, organization *models.Organization) (*models.Organization, error)
	ReadOneOrganization(ctx context.Context, id string) (*models.Organization, error)
	ReadManyOrganizations(ctx context.Context) ([]*models.Organization, error)
	UpdateOrganization(ctx context.Context, organization *models.Organization, updates map[string]interface{}) (*models.Organization, error)
	DeleteOrganization(ctx context.Context, organization *models.Organization) error
}

// AffiliationRepositoryInterface defines the contract for affiliation repository operations
type AffiliationRepositoryInterface interface {
	CreateAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error)
	ReadOneAffiliationByID(ctx context.Context, id string) (*models.Affiliation, error)
	ReadOneAffiliation(ctx context.Context, userID, organizationID string) (*models.Affiliation, error)
	ReadManyAffiliationsForUser(ctx context.Context, userID string) ([]*models.Affiliation, error)
	ReadManyAffiliationsForOrganization(ctx context.Context, organizationID string) ([]*models.Affiliation, error)
	ReadActiveOwnerCount(ctx context.Context, organizationID string) (int, error)
	ApproveAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error)
	DeleteAffiliation(ctx context.Context, affiliation *models.Affiliation) error
}

// OpportunityRepositoryInterface defines the contract for CWU opportunity repository operations
type OpportunityRepositoryInterface interface {
	CreateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, error)
	ReadOneOpportunity(ctx context.Context, id string) (*models.CWUOpportunity, error)
	ReadManyOpportunities(ctx context.Context) ([]*models.CWUOpportunity, error)
	ReadManyOpportunitiesByStatus(ctx context.Context, status models.CWUOpportunityStatus) ([]*models.CWUOpportunity, error)
	UpdateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity, updates map[string]interface{}) (*models.CWUOpportunity, error)
	DeleteOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) error
	IncrementViews(ctx context.Context, opportunity *models.CWUOpportunity) error
}

// ProposalRepositoryInterface defines the contract for CWU proposal repository operations
type ProposalRepositoryInterface interface {
	CreateProposal(ctx context.Context, proposal *models.CWUProposal) (*models.CWUProposal, error)
	ReadOneProposal(ctx context.Context, id string) (*models.CWUProposal, error)
	ReadOneProposalForAuthor(ctx context.Context, opportunityID, authorID string) (*models.CWUProposal, error)
	ReadManyProposalsForOpportunity(ctx context.Context, opportunityID string) ([]*models.CWUProposal, error)
	ReadManyProposalsForAuthor(ctx context.Context, authorID string) ([]*models.CWUProposal, error)
	UpdateProposal(ctx context.Context, proposal *models.CWUProposal, updates map[string]interface{}) (*models.CWUProposal, error)
	DeleteProposal(ctx context.Context, proposal *models.CWUProposal) error
}
