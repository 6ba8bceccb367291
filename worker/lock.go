package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// LockRecord is the lease item persisted in the worker locks table. Expiry
// is epoch seconds so the condition expression can compare it numerically.
type LockRecord struct {
	ID         string `dynamodbav:"id"`
	Owner      string `dynamodbav:"owner"`
	AcquiredAt int64  `dynamodbav:"acquired_at"`
	ExpiresAt  int64  `dynamodbav:"expires_at"`
}

// LockManager hands out short-lived leases so only one instance runs a
// given job at a time. Acquisition is a single conditional put; a crashed
// holder's lease simply expires.
type LockManager struct {
	db        dal.DatabaseClientInterface
	tableName string
	ttl       time.Duration
	logger    logger.Logger
}

// NewLockManager creates a lock manager over the prefixed locks table.
func NewLockManager(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *LockManager {
	ttl := time.Duration(cfg.WorkerLockTTLSecond) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LockManager{
		db:        db,
		tableName: cfg.DynamoDBTablePrefix + "_worker_locks",
		ttl:       ttl,
		logger:    log,
	}
}

// Acquire attempts to take the named lease. It reports false without error
// when another live holder has it.
func (lm *LockManager) Acquire(ctx context.Context, name, owner string) (bool, error) {
	now := time.Now()
	record := LockRecord{
		ID:         name,
		Owner:      owner,
		AcquiredAt: now.Unix(),
		ExpiresAt:  now.Add(lm.ttl).Unix(),
	}

	err := lm.db.PutItemConditional(ctx, lm.tableName, record,
		"attribute_not_exists(id) OR expires_at < :now",
		map[string]interface{}{":now": now.Unix()},
	)
	if err != nil {
		if errors.Is(err, dal.ErrConditionFailed) {
			lm.logger.Debugf("Lease %s held elsewhere", name)
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Release drops the named lease if this owner still holds it.
func (lm *LockManager) Release(ctx context.Context, name, owner string) error {
	var record LockRecord
	err := lm.db.GetItem(ctx, models.QueryConfig{
		TableName: lm.tableName,
		KeyName:   "id",
		KeyValue:  name,
	}, &record)
	if err != nil {
		return err
	}
	if record.Owner != owner {
		return nil
	}
	return lm.db.DeleteItem(ctx, lm.tableName, "id", name)
}
