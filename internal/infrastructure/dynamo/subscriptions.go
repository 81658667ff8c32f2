package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
)

// SubscriptionRepo captures subscriber emails over the SUBSCRIPTION realm.
type SubscriptionRepo struct {
	client    api
	tableName string
}

func NewSubscriptionRepo(client api, tableName string) *SubscriptionRepo {
	return &SubscriptionRepo{client: client, tableName: tableName}
}

// Put stores the subscription, rejecting duplicates via a conditional write.
func (r *SubscriptionRepo) Put(ctx context.Context, s *domain.Subscription) error {
	item, err := marshalItem(RealmSubscription, s.Email, s)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(pk) AND attribute_not_exists(sk)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("subscription for %s: %w", s.Email, domain.ErrConflict)
		}
		return storeErr("put subscription", err)
	}
	return nil
}
