package repository

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// OpportunityRepository implements OpportunityRepositoryInterface
type OpportunityRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewOpportunityRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *OpportunityRepository {
	return &OpportunityRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *OpportunityRepository) table() string {
	return tableName(r.config, TableOpportunities)
}

func (r *OpportunityRepository) CreateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) (*models.CWUOpportunity, error) {
	now := time.Now()
	opportunity.ID = utils.GenerateUUID()
	opportunity.Status = models.CWUOpportunityStatusDraft
	opportunity.CreatedAt = now
	opportunity.UpdatedAt = now
	opportunity.Version = 1

	if err := r.db.PutItem(ctx, r.table(), opportunity); err != nil {
		r.logger.Errorf("Failed to create opportunity: %v", err)
		return nil, err
	}

	r.logger.Infof("Opportunity created: %s (%s)", opportunity.ID, opportunity.Document.Title)
	return opportunity, nil
}

func (r *OpportunityRepository) ReadOneOpportunity(ctx context.Context, id string) (*models.CWUOpportunity, error) {
	opportunity := models.CWUOpportunity{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &opportunity)
	if err != nil {
		r.logger.Errorf("Failed to get opportunity %s: %v", id, err)
		return nil, err
	}
	if opportunity.ID == "" {
		return nil, nil
	}
	return &opportunity, nil
}

func (r *OpportunityRepository) ReadManyOpportunities(ctx context.Context) ([]*models.CWUOpportunity, error) {
	var opportunities []*models.CWUOpportunity
	if err := r.db.Scan(ctx, r.table(), &opportunities); err != nil {
		r.logger.Errorf("Failed to scan opportunities: %v", err)
		return nil, err
	}
	return opportunities, nil
}

func (r *OpportunityRepository) ReadManyOpportunitiesByStatus(ctx context.Context, status models.CWUOpportunityStatus) ([]*models.CWUOpportunity, error) {
	var opportunities []*models.CWUOpportunity
	err := r.db.QueryByIndex(ctx, r.table(), "status-index", "status", string(status), &opportunities)
	if err != nil {
		r.logger.Errorf("Failed to query opportunities by status %s: %v", status, err)
		return nil, err
	}
	return opportunities, nil
}

// UpdateOpportunity applies updates conditionally on the version read during
// validation, so concurrent transitions cannot interleave.
func (r *OpportunityRepository) UpdateOpportunity(ctx context.Context, opportunity *models.CWUOpportunity, updates map[string]interface{}) (*models.CWUOpportunity, error) {
	updates["updated_at"] = time.Now()
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", opportunity.ID, opportunity.Version, updates)
	if err != nil {
		r.logger.Errorf("Failed to update opportunity %s: %v", opportunity.ID, err)
		return nil, err
	}
	return r.ReadOneOpportunity(ctx, opportunity.ID)
}

func (r *OpportunityRepository) DeleteOpportunity(ctx context.Context, opportunity *models.CWUOpportunity) error {
	err := r.db.DeleteItemVersioned(ctx, r.table(), "id", opportunity.ID, opportunity.Version)
	if err != nil {
		r.logger.Errorf("Failed to delete opportunity %s: %v", opportunity.ID, err)
		return err
	}
	r.logger.Infof("Opportunity deleted: %s", opportunity.ID)
	return nil
}

// IncrementViews bumps the view counter without touching the version; a
// racing transition should not fail because somebody looked at the page.
func (r *OpportunityRepository) IncrementViews(ctx context.Context, opportunity *models.CWUOpportunity) error {
	return r.db.UpdateItem(ctx, r.table(), "id", opportunity.ID, map[string]interface{}{
		"views": opportunity.Views + 1,
	})
}
