package repository

import (
	"context"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// UserRepository implements UserRepositoryInterface
type UserRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewUserRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *UserRepository) table() string {
	return tableName(r.config, TableUsers)
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	now := time.Now()
	user.ID = utils.GenerateUUID()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Version = 1

	if err := r.db.PutItem(ctx, r.table(), user); err != nil {
		r.logger.Errorf("Failed to create user: %v", err)
		return nil, err
	}

	r.logger.Infof("User created: %s (%s)", user.ID, user.Type)
	return user, nil
}

func (r *UserRepository) ReadOneUser(ctx context.Context, id string) (*models.User, error) {
	user := models.User{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &user)
	if err != nil {
		r.logger.Errorf("Failed to get user %s: %v", id, err)
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) ReadOneUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		IndexName: "email-index",
		KeyName:   "email",
		KeyValue:  email,
		KeyType:   models.StringType,
	}, &user)
	if err != nil {
		r.logger.Errorf("Failed to get user by email: %v", err)
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (r *UserRepository) ReadManyUsers(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	if err := r.db.Scan(ctx, r.table(), &users); err != nil {
		r.logger.Errorf("Failed to scan users: %v", err)
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *models.User, updates map[string]interface{}) (*models.User, error) {
	updates["updated_at"] = time.Now()
	err := r.db.UpdateItemVersioned(ctx, r.table(), "id", user.ID, user.Version, updates)
	if err != nil {
		r.logger.Errorf("Failed to update user %s: %v", user.ID, err)
		return nil, err
	}
	return r.ReadOneUser(ctx, user.ID)
}
