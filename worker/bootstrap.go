package worker

import (
	"context"
	"errors"
	"time"

	"github.com/aws/smithy-go"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/infrastructure"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

// EnsureTables creates every configured table that does not already exist.
// Tables are created sequentially to avoid provisioning throttles.
func EnsureTables(ctx context.Context, db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) error {
	for _, base := range cfg.Tables {
		tableName := cfg.DynamoDBTablePrefix + "_" + base

		_, err := db.DescribeTable(ctx, tableName)
		if err == nil {
			log.Debugf("Table %s already exists", tableName)
			continue
		}
		if !isTableNotFound(err) {
			return err
		}

		input, err := infrastructure.GetTables(tableName)
		if err != nil {
			return err
		}
		log.Infof("Creating table %s", tableName)
		if err := db.CreateTable(ctx, input); err != nil {
			return err
		}
		if err := waitForTable(ctx, db, tableName, log); err != nil {
			return err
		}
	}
	return nil
}

func isTableNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "ResourceNotFoundException"
	}
	return false
}

func waitForTable(ctx context.Context, db dal.DatabaseClientInterface, tableName string, log logger.Logger) error {
	for i := 0; i < 30; i++ {
		output, err := db.DescribeTable(ctx, tableName)
		if err == nil && output.Table != nil && output.Table.TableStatus == "ACTIVE" {
			log.Infof("Table %s is active", tableName)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return errors.New("timed out waiting for table " + tableName)
}
