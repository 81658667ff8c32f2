package dynamo

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
)

// ServiceRepo provides catalog CRUD over the SERVICE realm, keyed by ULID.
type ServiceRepo struct {
	client    api
	tableName string
}

func NewServiceRepo(client api, tableName string) *ServiceRepo {
	return &ServiceRepo{client: client, tableName: tableName}
}

func (r *ServiceRepo) Put(ctx context.Context, s *domain.Service) error {
	item, err := marshalItem(RealmService, s.ServiceID, s)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return storeErr("put service", err)
	}
	return nil
}

func (r *ServiceRepo) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       realmKey(RealmService, serviceID),
	})
	if err != nil {
		return nil, storeErr("get service", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("service %s: %w", serviceID, domain.ErrNotFound)
	}
	var s domain.Service
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, storeErr("unmarshal service", err)
	}
	return &s, nil
}

func (r *ServiceRepo) Update(ctx context.Context, serviceID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       realmKey(RealmService, serviceID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return storeErr("update service", err)
	}
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, serviceID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       realmKey(RealmService, serviceID),
	})
	if err != nil {
		return storeErr("delete service", err)
	}
	return nil
}

// QueryPage returns a page of catalog entries ordered by ULID.
// cursor is the base64-encoded sk used as ExclusiveStartKey.
// Returns the items, a next cursor (empty string when no more pages), and any error.
func (r *ServiceRepo) QueryPage(ctx context.Context, limit int32, cursor string) ([]domain.Service, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: RealmService},
		},
		Limit: aws.Int32(limit),
	}
	if cursor != "" {
		sk, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = realmKey(RealmService, sk)
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, "", storeErr("query services", err)
	}
	var services []domain.Service
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &services); err != nil {
		return nil, "", storeErr("unmarshal services", err)
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["sk"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return services, nextCursor, nil
}

func encodeCursor(sk string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(sk))
}

func decodeCursor(cursor string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
