package table

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

type DynamoClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type Client struct {
	Dynamo DynamoClient
}

type Service struct {
	Client Client
}

func FromClients(dynamoClient DynamoClient) Service {
	return Service{
		Client: Client{
			Dynamo: dynamoClient,
		},
	}
}

// Put writes item unconditionally, replacing any item with the same key.
func (s Service) Put(ctx context.Context, tableName string, item map[string]types.AttributeValue) error {
	var apiErr smithy.APIError

	putItemInput := dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      item,
	}

	if _, err := s.Client.Dynamo.PutItem(ctx, &putItemInput); err != nil {
		if errors.As(err, &apiErr) {
			zerolog.Ctx(ctx).Warn().
				Str("table", tableName).
				Str("code", apiErr.ErrorCode()).
				Str("fault", apiErr.ErrorFault().String()).
				Msg("put item rejected")
		}
		return err
	}

	return nil
}

func (s Service) Describe(ctx context.Context, tableName string) (types.TableDescription, error) {
	describeTableOutput, err := s.Client.Dynamo.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return types.TableDescription{}, err
	}

	if describeTableOutput.Table == nil {
		return types.TableDescription{}, errors.New("describe table returned no table")
	}

	return *describeTableOutput.Table, nil
}
