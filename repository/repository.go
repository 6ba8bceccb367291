package repository

import (
	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// Table base names; each is prefixed with the configured environment prefix.
const (
	TableUsers         = "users"
	TableOrganizations = "organizations"
	TableAffiliations  = "affiliations"
	TableOpportunities = "cwu_opportunities"
	TableProposals     = "cwu_proposals"
	TableWorkerLocks   = "worker_locks"
)

func tableName(cfg *models.Config, base string) string {
	return cfg.DynamoDBTablePrefix + "_" + base
}

// Repository bundles the per-entity repositories over one database client.
type Repository struct {
	User         *UserRepository
	Organization *OrganizationRepository
	Affiliation  *AffiliationRepository
	Opportunity  *OpportunityRepository
	Proposal     *ProposalRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		User:         NewUserRepository(db, cfg, log),
		Organization: NewOrganizationRepository(db, cfg, log),
		Affiliation:  NewAffiliationRepository(db, cfg, log),
		Opportunity:  NewOpportunityRepository(db, cfg, log),
		Proposal:     NewProposalRepository(db, cfg, log),
	}
}
