package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// testLogger satisfies logger.Logger while keeping test output quiet.
type testLogger struct{}

func (testLogger) Debug(args ...interface{})                 {}
func (testLogger) Debugf(format string, args ...interface{}) {}
func (testLogger) Info(args ...interface{})                  {}
func (testLogger) Infof(format string, args ...interface{})  {}
func (testLogger) Warn(args ...interface{})                  {}
func (testLogger) Warnf(format string, args ...interface{})  {}
func (testLogger) Error(args ...interface{})                 {}
func (testLogger) Errorf(format string, args ...interface{}) {}
func (testLogger) Fatal(args ...interface{})                 {}
func (testLogger) Fatalf(format string, args ...interface{}) {}
func (t testLogger) WithFields(fields map[string]interface{}) logger.Logger { return t }

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ReadOneUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ReadOneUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) ReadManyUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *models.User, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(ctx, user, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) CreateOrganization(ctx context.Context, organization *models.Organization) (*models.Organization, error) {
	args := m.Called(ctx, organization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ReadOneOrganization(ctx context.Context, id string) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ReadManyOrganizations(ctx context.Context) ([]*models.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, organization *models.Organization, updates map[string]interface{}) (*models.Organization, error) {
	args := m.Called(ctx, organization, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) DeleteOrganization(ctx context.Context, organization *models.Organization) error {
	args := m.Called(ctx, organization)
	return args.Error(0)
}

type MockAffiliationRepository struct {
	mock.Mock
}

func (m *MockAffiliationRepository) CreateAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error) {
	args := m.Called(ctx, affiliation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ReadOneAffiliationByID(ctx context.Context, id string) (*models.Affiliation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ReadOneAffiliation(ctx context.Context, userID, organizationID string) (*models.Affiliation, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ReadManyAffiliationsForUser(ctx context.Context, userID string) ([]*models.Affiliation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ReadManyAffiliationsForOrganization(ctx context.Context, organizationID string) ([]*models.Affiliation, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) ReadActiveOwnerCount(ctx context.Context, organizationID string) (int, error) {
	args := m.Called(ctx, organizationID)
	return args.Int(0), args.Error(1)
}

func (m *MockAffiliationRepository) ApproveAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error) {
	args := m.Called(ctx, affiliation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Affiliation), args.Error(1)
}

func (m *MockAffiliationRepository) DeleteAffiliation(ctx context.Context, affiliation *models.Affiliation) error {
	args := m.Called(ctx, affiliation)
	return args.Error(0)
}

type MockOpportunityRepository struct {
	mock.Mock
}

func (m *MockOpportunityRepository) CreateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, error) {
	args := m.Called(ctx, opportunity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) ReadOneOpportunity(ctx context.Context, id string) (*models.CWUOpportunity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) ReadManyOpportunities(ctx context.Context) ([]*models.CWUOpportunity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CWUOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) ReadManyOpportunitiesByStatus(ctx context.Context, status models.CWUOpportunityStatus) ([]*models.CWUOpportunity, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CWUOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity, updates map[string]interface{}) (*models.CWUOpportunity, error) {
	args := m.Called(ctx, opportunity, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUOpportunity), args.Error(1)
}

func (m *MockOpportunityRepository) DeleteOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

func (m *MockOpportunityRepository) IncrementViews(ctx context.Context, opportunity *models.CWUOpportunity) error {
	args := m.Called(ctx, opportunity)
	return args.Error(0)
}

type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) CreateProposal(ctx context.Context, proposal *models.CWUProposal) (*models.CWUProposal, error) {
	args := m.Called(ctx, proposal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) ReadOneProposal(ctx context.Context, id string) (*models.CWUProposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) ReadOneProposalForAuthor(ctx context.Context, opportunityID, authorID string) (*models.CWUProposal, error) {
	args := m.Called(ctx, opportunityID, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) ReadManyProposalsForOpportunity(ctx context.Context, opportunityID string) ([]*models.CWUProposal, error) {
	args := m.Called(ctx, opportunityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) ReadManyProposalsForAuthor(ctx context.Context, authorID string) ([]*models.CWUProposal, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) UpdateProposal(ctx context.Context, proposal *models.CWUProposal, updates map[string]interface{}) (*models.CWUProposal, error) {
	args := m.Called(ctx, proposal, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CWUProposal), args.Error(1)
}

func (m *MockProposalRepository) DeleteProposal(ctx context.Context, proposal *models.CWUProposal) error {
	args := m.Called(ctx, proposal)
	return args.Error(0)
}
