package repository

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// ProposalRepository implements ProposalRepositoryInterface
type ProposalRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewProposalRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProposalRepository {
	return &ProposalRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ProposalRepository) table() string {
	return tableName(r.config, TableProposals)
}

func (r *ProposalRepository) CreateProposal(ctx context.Context, proposal *models.CWUProposal) (*models.CWUProposal, error) {
	now := time.Now()
	proposal.ID = utils.GenerateUUID()
	proposal.Status = models.CWUProposalStatusDraft
	proposal.CreatedAt = now
	proposal.UpdatedAt = now
	proposal.Version = 1

	if err := r.db.PutItem(ctx, r.table(), proposal); err != nil {
		r.logger.Errorf("Failed to create proposal: %v", err)
		return nil, err
	}

	r.logger.Infof("Proposal created: %s (opportunity %s)", proposal.ID, proposal.OpportunityID)
	return proposal, nil
}

func (r *ProposalRepository) ReadOneProposal(ctx context.Context, id string) (*models.CWUProposal, error) {
	proposal := models.CWUProposal{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &proposal)
	if err != nil {
		r.logger.Errorf("Failed to get proposal %s: %v", id, err)
		return nil, err
	}
	if proposal.ID == "" {
		return nil, nil
	}
	return &proposal, nil
}

// ReadOneProposalForAuthor backs the one-proposal-per-vendor rule on create.
func (r *ProposalRepository) ReadOneProposalForAuthor(ctx context.Context, opportunityID, authorID string) (*models.CWUProposal, error) {
	proposals, err := r.ReadManyProposalsForOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	for _, p := range proposals {
		if p.AuthorID == authorID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *ProposalRepository) ReadManyProposalsForOpportunity(ctx context.Context, opportunityID string) ([]*models.CWUProposal, error) {
	var proposals []*models.CWUProposal
	err := r.db.QueryByIndex(ctx, r.table(), "opportunity-index", "opportunity_id", opportunityID, &proposals)
	if err != nil {
		r.logger.Errorf("Failed to query proposals for opportunity %s: %v", opportunityID, err)
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepository) ReadManyProposalsForAuthor(ctx context.Context, authorID string) ([]*models.CWUProposal, error) {
	var proposals []*models.CWUProposal
	err := r.db.QueryByIndex(ctx, r.table(), "author-index", "author_id", authorID, &proposals)
	if err != nil {
		r.logger.Errorf("Failed to query proposals for author %s: %v", authorID, err)
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepository) UpdateProposal(ctx context.Context, proposal *models.CWUProposal, updates map[string]interface{}) (*models.CWUProposal, error) {
	updates["updated_at"] = time.Now()
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", proposal.ID, proposal.Version, updates)
	if err != nil {
		r.logger.Errorf("Failed to update proposal %s: %v", proposal.ID, err)
		return nil, err
	}
	return r.ReadOneProposal(ctx, proposal.ID)
}

func (r *ProposalRepository) DeleteProposal(ctx context.Context, proposal *models.CWUProposal) error {
	err := r.db.DeleteItemVersioned(ctx, r.table(), "id", proposal.ID, proposal.Version)
	if err != nil {
		r.logger.Errorf("Failed to delete proposal %s: %v", proposal.ID, err)
		return err
	}
	r.logger.Infof("Proposal deleted: %s", proposal.ID)
	return nil
}
