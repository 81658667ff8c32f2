package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/onboarding-api/internal/domain"
)

// AdminRepo reads operator records from the ADMIN realm. Provisioning is
// out of band, so the repo is read-only.
type AdminRepo struct {
	client    api
	tableName string
}

func NewAdminRepo(client api, tableName string) *AdminRepo {
	return &AdminRepo{client: client, tableName: tableName}
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       realmKey(RealmAdmin, email),
	})
	if err != nil {
		return nil, storeErr("get admin", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("admin %s: %w", email, domain.ErrNotFound)
	}
	var a domain.Admin
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, storeErr("unmarshal admin", err)
	}
	return &a, nil
}
