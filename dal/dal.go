package dal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConditionFailed is returned when a conditional write loses an
// optimistic-concurrency race. Repositories translate it into a retryable
// referential failure.
var ErrConditionFailed = errors.New("conditional write failed")

type DynamoDBClient struct {
	client *dynamodb.Client
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Override endpoint for local DynamoDB
	if cfg.DynamoDBEndpoint != "" {
		awsCfg.EndpointResolver = aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.DynamoDBEndpoint,
				SigningRegion: cfg.AWSRegion,
			}, nil
		})
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"", // session token
		))
	}

	client := dynamodb.NewFromConfig(awsCfg)

	dbClient := &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}

	log.Info("DynamoDB client initialized successfully")
	return dbClient, nil
}

func keyAttribute(cfg models.QueryConfig) types.AttributeValue {
	switch cfg.KeyType {
	case models.NumberType:
		return &types.AttributeValueMemberN{Value: cfg.KeyValue}
	case models.BinaryType:
		return &types.AttributeValueMemberB{Value: []byte(cfg.KeyValue)}
	default:
		return &types.AttributeValueMemberS{Value: cfg.KeyValue}
	}
}

// GetItem retrieves a single item by primary key or, when an index is
// configured, the first match on that index.
func (db *DynamoDBClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	if cfg.IndexName != "" {
		output, err := db.queryIndex(ctx, cfg)
		if err != nil {
			return err
		}
		if len(output.Items) == 0 {
			return nil
		}
		return attributevalue.UnmarshalMap(output.Items[0], result)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(cfg.TableName),
		Key: map[string]types.AttributeValue{
			cfg.KeyName: keyAttribute(cfg),
		},
	}

	output, err := db.client.GetItem(ctx, input)
	if err != nil {
		db.logger.Errorf("Failed to get item: %v", err)
		return err
	}

	if output.Item == nil {
		return nil
	}

	return attributevalue.UnmarshalMap(output.Item, result)
}

// PutItem stores an item in DynamoDB
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	}

	_, err = db.client.PutItem(ctx, input)
	return err
}

// PutItemConditional stores an item only when the condition expression
// holds. A failed condition returns ErrConditionFailed; the worker lease
// lock is built on this.
func (db *DynamoDBClient) PutItemConditional(ctx context.Context, tableName string, item interface{}, condition string, values map[string]interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	exprValues := make(map[string]types.AttributeValue, len(values))
	for name, value := range values {
		marshaled, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		exprValues[name] = marshaled
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(tableName),
		Item:                av,
		ConditionExpression: aws.String(condition),
	}
	if len(exprValues) > 0 {
		input.ExpressionAttributeValues = exprValues
	}

	_, err = db.client.PutItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrConditionFailed
		}
	}
	return err
}

// UpdateItem updates an item in DynamoDB
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	return db.updateItem(ctx, tableName, key, keyValue, updates, nil)
}

// UpdateItemVersioned updates an item only when its stored version still
// matches expectedVersion, and bumps the version alongside the update. This
// is the optimistic-concurrency token closing the read-then-write race on
// status transitions; a lost race returns ErrConditionFailed.
func (db *DynamoDBClient) UpdateItemVersioned(ctx context.Context, tableName, key, keyValue string, expectedVersion int64, updates map[string]interface{}) error {
	updates["version"] = expectedVersion + 1
	return db.updateItem(ctx, tableName, key, keyValue, updates, &expectedVersion)
}

func (db *DynamoDBClient) updateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}, expectedVersion *int64) error {
	updateExpression := "SET "
	expressionAttributeNames := make(map[string]string)
	expressionAttributeValues := make(map[string]types.AttributeValue)

	i := 0
	for field, value := range updates {
		if i > 0 {
			updateExpression += ", "
		}

		attrName := "#" + field
		attrValue := ":" + field

		updateExpression += attrName + " = " + attrValue
		expressionAttributeNames[attrName] = field

		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		expressionAttributeValues[attrValue] = av
		i++
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:          aws.String(updateExpression),
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	}

	if expectedVersion != nil {
		input.ConditionExpression = aws.String("#cond_version = :cond_version")
		expressionAttributeNames["#cond_version"] = "version"
		expressionAttributeValues[":cond_version"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *expectedVersion)}
	}

	_, err := db.client.UpdateItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrConditionFailed
		}
	}
	return err
}

// DeleteItem deletes an item from DynamoDB
func (db *DynamoDBClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
	}

	_, err := db.client.DeleteItem(ctx, input)
	return err
}

// DeleteItemVersioned deletes an item only when its stored version still
// matches expectedVersion. A lost race returns ErrConditionFailed.
func (db *DynamoDBClient) DeleteItemVersioned(ctx context.Context, tableName, key, value string, expectedVersion int64) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
		ConditionExpression: aws.String("#v = :v"),
		ExpressionAttributeNames: map[string]string{
			"#v": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		},
	}

	_, err := db.client.DeleteItem(ctx, input)
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return ErrConditionFailed
		}
	}
	return err
}

func (db *DynamoDBClient) queryIndex(ctx context.Context, cfg models.QueryConfig) (*dynamodb.QueryOutput, error) {
	limit := cfg.Limit
	if limit == 0 {
		limit = 50
	}
	input := &dynamodb.QueryInput{
		TableName:              aws.String(cfg.TableName),
		IndexName:              aws.String(cfg.IndexName),
		Limit:                  aws.Int32(limit),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": cfg.KeyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": keyAttribute(cfg),
		},
	}
	return db.client.Query(ctx, input)
}

// QueryByIndex queries items using a global secondary index
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	output, err := db.queryIndex(ctx, models.QueryConfig{
		TableName: tableName,
		IndexName: indexName,
		KeyName:   keyName,
		KeyValue:  keyValue,
	})
	if err != nil {
		return err
	}

	return attributevalue.UnmarshalListOfMaps(output.Items, results)
}

// Scan scans the entire table
func (db *DynamoDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	input := &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	}

	output, err := db.client.Scan(ctx, input)
	if err != nil {
		return err
	}

	return attributevalue.UnmarshalListOfMaps(output.Items, results)
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}
	return db.client.DescribeTable(ctx, input)
}

// PrintPrettyJSON renders a value as indented JSON for startup logging.
func PrintPrettyJSON(v interface{}) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
