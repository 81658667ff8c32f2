package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
)

// UserRepo provides typed operations over the USER realm, keyed by email.
type UserRepo struct {
	client    api
	tableName string
}

func NewUserRepo(client api, tableName string) *UserRepo {
	return &UserRepo{client: client, tableName: tableName}
}

// Create writes the user record, rejecting the write if a record for that
// email already exists. The conditional write is the arbiter when two
// concurrent signups for the same email both passed the existence check.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	item, err := marshalItem(RealmUser, u.Email, u)
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
			return fmt.Errorf("user record for %s: %w", u.Email, domain.ErrDuplicateAccount)
		}
		return storeErr("create user", err)
	}
	return nil
}

// GetByEmail returns the user record, or domain.ErrNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            realmKey(RealmUser, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, storeErr("get user", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	var u domain.User
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, storeErr("unmarshal user", err)
	}
	return &u, nil
}

// UpdateStatus flips the account status. Only the verification orchestrator
// calls this, and only pending -> verified.
func (r *UserRepo) UpdateStatus(ctx context.Context, email, status string) error {
	return r.Update(ctx, email, map[string]interface{}{"status": status})
}

// Update applies a partial field update and stamps updated_at.
func (r *UserRepo) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       realmKey(RealmUser, email),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return storeErr("update user", err)
	}
	return nil
}
