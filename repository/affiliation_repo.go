package repository

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// AffiliationRepository implements AffiliationRepositoryInterface
type AffiliationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewAffiliationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *AffiliationRepository {
	return &AffiliationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *AffiliationRepository) table() string {
	return tableName(r.config, TableAffiliations)
}

func (r *AffiliationRepository) CreateAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error) {
	now := time.Now()
	affiliation.ID = utils.GenerateUUID()
	affiliation.CreatedAt = now
	affiliation.UpdatedAt = now
	affiliation.Version = 1

	if err := r.db.PutItem(ctx, r.table(), affiliation); err != nil {
		r.logger.Errorf("Failed to create affiliation: %v", err)
		return nil, err
	}

	r.logger.Infof("Affiliation created: %s (user %s, organization %s)", affiliation.ID, affiliation.UserID, affiliation.OrganizationID)
	return affiliation, nil
}

func (r *AffiliationRepository) ReadOneAffiliationByID(ctx context.Context, id string) (*models.Affiliation, error) {
	affiliation := models.Affiliation{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &affiliation)
	if err != nil {
		r.logger.Errorf("Failed to get affiliation %s: %v", id, err)
		return nil, err
	}
	if affiliation.ID == "" {
		return nil, nil
	}
	return &affiliation, nil
}

// ReadOneAffiliation returns the affiliation for a (user, organization) pair,
// regardless of its status. The create tie-break depends only on whether any
// record exists.
func (r *AffiliationRepository) ReadOneAffiliation(ctx context.Context, userID, organizationID string) (*models.Affiliation, error) {
	affiliations, err := r.ReadManyAffiliationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, a := range affiliations {
		if a.OrganizationID == organizationID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *AffiliationRepository) ReadManyAffiliationsForUser(ctx context.Context, userID string) ([]*models.Affiliation, error) {
	var affiliations []*models.Affiliation
	err := r.db.QueryByIndex(ctx, r.table(), "user-index", "user_id", userID, &affiliations)
	if err != nil {
		r.logger.Errorf("Failed to query affiliations for user %s: %v", userID, err)
		return nil, err
	}
	return affiliations, nil
}

func (r *AffiliationRepository) ReadManyAffiliationsForOrganization(ctx context.Context, organizationID string) ([]*models.Affiliation, error) {
	var affiliations []*models.Affiliation
	err := r.db.QueryByIndex(ctx, r.table(), "organization-index", "organization_id", organizationID, &affiliations)
	if err != nil {
		r.logger.Errorf("Failed to query affiliations for organization %s: %v", organizationID, err)
		return nil, err
	}
	return affiliations, nil
}

// ReadActiveOwnerCount backs the sole-owner invariant.
func (r *AffiliationRepository) ReadActiveOwnerCount(ctx context.Context, organizationID string) (int, error) {
	affiliations, err := r.ReadManyAffiliationsForOrganization(ctx, organizationID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, a := range affiliations {
		if a.IsActiveOwner() {
			count++
		}
	}
	return count, nil
}

// ApproveAffiliation flips a pending membership to active. The write is
// conditional on the version read during validation, so a raced update
// surfaces as dal.ErrConditionFailed instead of silently clobbering.
func (r *AffiliationRepository) ApproveAffiliation(ctx context.Context, affiliation *models.Affiliation) (*models.Affiliation, error) {
	now := time.Now()
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", affiliation.ID, affiliation.Version, map[string]interface{}{
		"membership_status": string(models.MembershipStatusActive),
		"updated_at":        now,
	})
	if err != nil {
		r.logger.Errorf("Failed to approve affiliation %s: %v", affiliation.ID, err)
		return nil, err
	}

	approved := *affiliation
	approved.MembershipStatus = models.MembershipStatusActive
	approved.UpdatedAt = now
	approved.Version = affiliation.Version + 1
	return &approved, nil
}

// DeleteAffiliation hard-removes a membership. The conditional delete closes
// the race between the sole-owner check and the removal: a concurrent change
// to the record bumps its version and fails this write.
func (r *AffiliationRepository) DeleteAffiliation(ctx context.Context, affiliation *models.Affiliation) error {
	err := r.db.DeleteItemVersioned(ctx, r.table(), "id", affiliation.ID, affiliation.Version)
	if err != nil {
		r.logger.Errorf("Failed to delete affiliation %s: %v", affiliation.ID, err)
		return err
	}
	r.logger.Infof("Affiliation deleted: %s", affiliation.ID)
	return nil
}
