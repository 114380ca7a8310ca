// Package iodynamo keeps sample records in a DynamoDB table keyed by the
// numeric sampleID attribute.
package iodynamo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mpsense/sampler/internal/ioaws"
	"github.com/mpsense/sampler/pkg/config"
	"github.com/mpsense/sampler/pkg/sample"
)

// KeyAttribute is the partition key of the table.
const KeyAttribute = "sampleID"

// API is the part of the DynamoDB client the store needs.
type API interface {
	Scan(
		ctx context.Context,
		params *dynamodb.ScanInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.ScanOutput, error)
	PutItem(
		ctx context.Context,
		params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
	CreateTable(
		ctx context.Context,
		params *dynamodb.CreateTableInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.CreateTableOutput, error)
}

// Store implements sample.Store on DynamoDB.
type Store struct {
	client  API
	table   string
	timeout time.Duration
}

// New creates Store with a client built from the default AWS chain.
func New(ctx context.Context, cfg *config.Config) (*Store, error) {
	awsCfg, err := ioaws.Load(ctx, cfg.AWS)
	if err != nil {
		return nil, err
	}
	return NewWithClient(dynamodb.NewFromConfig(awsCfg), cfg), nil
}

// NewWithClient creates Store around an existing client.
func NewWithClient(client API, cfg *config.Config) *Store {
	return &Store{
		client:  client,
		table:   cfg.SampleStore.Table,
		timeout: cfg.SampleStore.Timeout,
	}
}

func (s *Store) withTimeout(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

// SampleIDs scans the key attribute of all items, following pagination.
func (s *Store) SampleIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var res []string
	input := &dynamodb.ScanInput{
		TableName:            aws.String(s.table),
		ProjectionExpression: aws.String("#id"),
		ExpressionAttributeNames: map[string]string{
			"#id": KeyAttribute,
		},
	}
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, ScanError(s.table, err)
		}
		for _, item := range out.Items {
			if id, ok := idText(item[KeyAttribute]); ok {
				res = append(res, id)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	slog.Debug("Scanned sample IDs", "table", s.table, "count", len(res))
	return res, nil
}

// idText returns number and string attributes as text.
func idText(av types.AttributeValue) (string, bool) {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		return v.Value, true
	case *types.AttributeValueMemberS:
		return v.Value, true
	default:
		return "", false
	}
}

// Put writes the record, replacing an item with the same key.
func (s *Store) Put(ctx context.Context, rec sample.Record) error {
	return s.put(ctx, rec, false)
}

// PutIfAbsent writes the record only if its key is free.
func (s *Store) PutIfAbsent(ctx context.Context, rec sample.Record) error {
	return s.put(ctx, rec, true)
}

func (s *Store) put(ctx context.Context, rec sample.Record, ifAbsent bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return PutError(s.table, rec.SampleID, err)
	}
	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}
	if ifAbsent {
		input.ConditionExpression = aws.String("attribute_not_exists(#id)")
		input.ExpressionAttributeNames = map[string]string{"#id": KeyAttribute}
	}

	_, err = s.client.PutItem(ctx, input)
	var conflict *types.ConditionalCheckFailedException
	if errors.As(err, &conflict) {
		return sample.ErrIDTaken
	}
	if err != nil {
		return PutError(s.table, rec.SampleID, err)
	}
	return nil
}

// CreateTable creates the table with on-demand billing. An existing table
// is left alone.
func (s *Store) CreateTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []types.AttributeDefinition{{
			AttributeName: aws.String(KeyAttribute),
			AttributeType: types.ScalarAttributeTypeN,
		}},
		KeySchema: []types.KeySchemaElement{{
			AttributeName: aws.String(KeyAttribute),
			KeyType:       types.KeyTypeHash,
		}},
		BillingMode: types.BillingModePayPerRequest,
	})
	var exists *types.ResourceInUseException
	if errors.As(err, &exists) {
		slog.Info("Table exists already", "table", s.table)
		return nil
	}
	if err != nil {
		return CreateError(s.table, err)
	}
	return nil
}

// Close is a no-op, the HTTP client has nothing to release.
func (s *Store) Close() error {
	return nil
}
