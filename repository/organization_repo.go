package repository

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// OrganizationRepository implements OrganizationRepositoryInterface
type OrganizationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewOrganizationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *OrganizationRepository {
	return &OrganizationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *OrganizationRepository) table() string {
	return tableName(r.config, TableOrganizations)
}

func (r *OrganizationRepository) CreateOrganization(ctx context.Context, organization *models.Organization) (*models.Organization, error) {
	now := time.Now()
	organization.ID = utils.GenerateUUID()
	organization.Active = true
	organization.CreatedAt = now
	organization.UpdatedAt = now
	organization.Version = 1

	if err := r.db.PutItem(ctx, r.table(), organization); err != nil {
		r.logger.Errorf("Failed to create organization: %v", err)
		return nil, err
	}

	r.logger.Infof("Organization created: %s (%s)", organization.ID, organization.LegalName)
	return organization, nil
}

func (r *OrganizationRepository) ReadOneOrganization(ctx context.Context, id string) (*models.Organization, error) {
	organization := models.Organization{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &organization)
	if err != nil {
		r.logger.Errorf("Failed to get organization %s: %v", id, err)
		return nil, err
	}
	if organization.ID == "" {
		return nil, nil
	}
	return &organization, nil
}

func (r *OrganizationRepository) ReadManyOrganizations(ctx context.Context) ([]*models.Organization, error) {
	var organizations []*models.Organization
	if err := r.db.Scan(ctx, r.table(), &organizations); err != nil {
		r.logger.Errorf("Failed to scan organizations: %v", err)
		return nil, err
	}
	return organizations, nil
}

func (r *OrganizationRepository) UpdateOrganization(ctx context.Context, organization *models.Organization, updates map[string]interface{}) (*models.Organization, error) {
	updates["updated_at"] = time.Now()
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", organization.ID, organization.Version, updates)
	if err != nil {
		r.logger.Errorf("Failed to update organization %s: %v", organization.ID, err)
		return nil, err
	}
	return r.ReadOneOrganization(ctx, organization.ID)
}

// DeleteOrganization deactivates rather than removes, so historical
// opportunities keep a resolvable owner.
func (r *OrganizationRepository) DeleteOrganization(ctx context.Context, organization *models.Organization) error {
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", organization.ID, organization.Version, map[string]interface{}{
		"active":     false,
		"updated_at": time.Now(),
	})
	if err != nil {
		r.logger.Errorf("Failed to deactivate organization %s: %v", organization.ID, err)
		return err
	}
	r.logger.Infof("Organization deactivated: %s", organization.ID)
	return nil
}
