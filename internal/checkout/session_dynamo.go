package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// sessionTTL expires abandoned checkouts; DynamoDB's TTL sweeper removes the
// items.
const sessionTTL = 24 * time.Hour

// DynamoSessionStore keeps checkout sessions in a DynamoDB table keyed by
// user id, so any API instance can serve any step of the wizard.
type DynamoSessionStore struct {
	client    *dynamodb.Client
	tableName string
}

// dynamoSession is the DynamoDB item structure
type dynamoSession struct {
	UserID    string `dynamodbav:"user_id"`
	Wizard    string `dynamodbav:"wizard"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

func NewDynamoSessionStore(client *dynamodb.Client, tableName string) *DynamoSessionStore {
	return &DynamoSessionStore{client: client, tableName: tableName}
}

func (s *DynamoSessionStore) Get(ctx context.Context, userID string) (*Wizard, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get checkout session: %w", err)
	}
	if out.Item == nil {
		return nil, false, nil
	}

	var item dynamoSession
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal checkout session: %w", err)
	}
	if item.ExpiresAt < time.Now().Unix() {
		// Expired but not yet swept.
		return nil, false, nil
	}

	var w Wizard
	if err := json.Unmarshal([]byte(item.Wizard), &w); err != nil {
		return nil, false, fmt.Errorf("failed to decode checkout session: %w", err)
	}
	return &w, true, nil
}

func (s *DynamoSessionStore) Put(ctx context.Context, userID string, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("failed to encode checkout session: %w", err)
	}

	item := dynamoSession{
		UserID:    userID,
		Wizard:    string(data),
		ExpiresAt: time.Now().Add(sessionTTL).Unix(),
	}
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout session: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to store checkout session: %w", err)
	}
	return nil
}

func (s *DynamoSessionStore) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete checkout session: %w", err)
	}
	return nil
}
