package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI backs the repo tests with canned DynamoDB responses.
type fakeAPI struct {
	getOut     *dynamodb.GetItemOutput
	getErr     error
	deleteErr  error
	lastDelete *dynamodb.DeleteItemInput
}

func (f *fakeAPI) GetItem(ctx context.Context, in *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getOut != nil {
		return f.getOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeAPI) UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.lastDelete = in
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeAPI) Query(ctx context.Context, in *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func challengeItem(t *testing.T, expiresAt int64) *dynamodb.GetItemOutput {
	t.Helper()
	item, err := marshalItem(RealmOTP, "a@x.com", &domain.OTPChallenge{
		Email:     "a@x.com",
		EmailCode: "111111",
		PhoneCode: "222222",
		ExpiresAt: expiresAt,
	})
	require.NoError(t, err)
	return &dynamodb.GetItemOutput{Item: item}
}

func TestOTPGet_Live(t *testing.T) {
	fake := &fakeAPI{getOut: challengeItem(t, time.Now().Add(10*time.Minute).Unix())}
	repo := NewOTPRepo(fake, "onboarding")

	c, err := repo.Get(context.Background(), "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, "111111", c.EmailCode)
	assert.Equal(t, "222222", c.PhoneCode)
}

func TestOTPGet_Absent(t *testing.T) {
	repo := NewOTPRepo(&fakeAPI{}, "onboarding")

	_, err := repo.Get(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)
}

func TestOTPGet_ExpiredRecordStillPresent(t *testing.T) {
	// DynamoDB TTL reclamation is lazy; an expired item can still be read.
	// It must come back as no active challenge regardless.
	expiresAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeAPI{getOut: challengeItem(t, expiresAt.Unix())}
	repo := NewOTPRepo(fake, "onboarding")
	repo.now = func() time.Time { return expiresAt.Add(time.Second) }

	_, err := repo.Get(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)
}

func TestOTPConsume_DeletesConditionally(t *testing.T) {
	fake := &fakeAPI{}
	repo := NewOTPRepo(fake, "onboarding")

	err := repo.Consume(context.Background(), "a@x.com")

	require.NoError(t, err)
	require.NotNil(t, fake.lastDelete)
	// The existence condition is what makes the code single-use: without it
	// a delete of an already-consumed record would also report success.
	require.NotNil(t, fake.lastDelete.ConditionExpression)
	assert.Equal(t, "attribute_exists(pk)", *fake.lastDelete.ConditionExpression)
}

func TestOTPConsume_AlreadyConsumed(t *testing.T) {
	fake := &fakeAPI{deleteErr: &types.ConditionalCheckFailedException{}}
	repo := NewOTPRepo(fake, "onboarding")

	err := repo.Consume(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrNoActiveChallenge)
}

func TestOTPConsume_TransportFailure(t *testing.T) {
	fake := &fakeAPI{deleteErr: &types.ProvisionedThroughputExceededException{}}
	repo := NewOTPRepo(fake, "onboarding")

	err := repo.Consume(context.Background(), "a@x.com")

	assert.ErrorIs(t, err, domain.ErrStore)
}
