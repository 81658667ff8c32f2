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

// OTPRepo manages outstanding verification challenges over the OTP realm,
// keyed by email. One record holds both channel codes.
type OTPRepo struct {
	client    api
	tableName string
	now       func() time.Time
}

func NewOTPRepo(client api, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName, now: time.Now}
}

// Put upserts the challenge. An unconditional write: any prior challenge
// for the email is overwritten and both its codes become invalid.
func (r *OTPRepo) Put(ctx context.Context, c *domain.OTPChallenge) error {
	item, err := marshalItem(RealmOTP, c.Email, c)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put otp challenge", err)
	}
	return nil
}

// Get returns the outstanding challenge. Absent and expired records both
// come back as domain.ErrNoActiveChallenge: DynamoDB TTL reclamation is
// lazy, so expiry is re-checked here rather than trusted to the store.
func (r *OTPRepo) Get(ctx context.Context, email string) (*domain.OTPChallenge, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            realmKey(RealmOTP, email),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, storeErr("get otp challenge", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("challenge for %s: %w", email, domain.ErrNoActiveChallenge)
	}
	var c domain.OTPChallenge
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, storeErr("unmarshal otp challenge", err)
	}
	if c.Expired(r.now()) {
		return nil, fmt.Errorf("challenge for %s expired: %w", email, domain.ErrNoActiveChallenge)
	}
	return &c, nil
}

// Consume deletes the challenge. The conditional delete is the arbiter
// between concurrent verifications that both fetched the record: exactly
// one delete lands, the other finds the record gone and reports
// domain.ErrNoActiveChallenge, so a code is spendable exactly once.
func (r *OTPRepo) Consume(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 realmKey(RealmOTP, email),
		ConditionExpression: aws.String("attribute_exists(pk)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("challenge for %s already consumed: %w", email, domain.ErrNoActiveChallenge)
		}
		return storeErr("consume otp challenge", err)
	}
	return nil
}
