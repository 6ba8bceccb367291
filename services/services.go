package services

import (
	"errors"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/repository"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// Service bundles the per-resource services with all dependencies injected.
type Service struct {
	User         *UserService
	Organization *OrganizationService
	Affiliation  *AffiliationService
	Opportunity  *OpportunityService
	Proposal     *ProposalService
}

// NewService creates a new service container over the repository bundle.
func NewService(repo *repository.Repository, log logger.Logger) *Service {
	return &Service{
		User:         NewUserService(repo.User, log),
		Organization: NewOrganizationService(repo.Organization, repo.Affiliation, log),
		Affiliation:  NewAffiliationService(repo.Affiliation, repo.User, repo.Organization, log),
		Opportunity:  NewOpportunityService(repo.Opportunity, repo.Proposal, repo.Affiliation, repo.Organization, log),
		Proposal:     NewProposalService(repo.Proposal, repo.Opportunity, repo.Affiliation, repo.User, log),
	}
}

// isConditionFailed reports whether a repository write lost an
// optimistic-concurrency race.
func isConditionFailed(err error) bool {
	return errors.Is(err, dal.ErrConditionFailed)
}
