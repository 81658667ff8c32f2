package dynamo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
)

// Partition realms of the single onboarding table. pk holds the realm,
// sk holds the entity key (email or ULID). The realms are independent
// keyspaces and are never joined transactionally.
const (
	RealmUser         = "USER"
	RealmOTP          = "OTP"
	RealmService      = "SERVICE"
	RealmSubscription = "SUBSCRIPTION"
	RealmAdmin        = "ADMIN"
)

// realmKey builds the composite primary key for a realm entry.
func realmKey(realm, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: realm},
		"sk": &types.AttributeValueMemberS{Value: key},
	}
}

// marshalItem marshals an entity and stamps the realm key attributes onto it.
func marshalItem(realm, key string, entity interface{}) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return nil, fmt.Errorf("marshal %s item: %w", realm, err)
	}
	item["pk"] = &types.AttributeValueMemberS{Value: realm}
	item["sk"] = &types.AttributeValueMemberS{Value: key}
	return item, nil
}

// buildUpdateExpr converts a map of field->value into a DynamoDB SET
// expression. A dotted field name addresses a nested document path, so
// every segment gets its own name placeholder. Fields are emitted in
// sorted order so the expression is stable across calls.
func buildUpdateExpr(updates map[string]interface{}) (expr string, names map[string]string, values map[string]types.AttributeValue, err error) {
	if len(updates) == 0 {
		return "", nil, nil, fmt.Errorf("no fields to update")
	}
	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	names = make(map[string]string)
	values = make(map[string]types.AttributeValue)
	expr = "SET "
	n := 0
	for i, field := range fields {
		segments := strings.Split(field, ".")
		path := make([]string, len(segments))
		for j, seg := range segments {
			nameKey := fmt.Sprintf("#f%d", n)
			names[nameKey] = seg
			path[j] = nameKey
			n++
		}
		valueKey := fmt.Sprintf(":v%d", i)
		av, mErr := attributevalue.Marshal(updates[field])
		if mErr != nil {
			return "", nil, nil, fmt.Errorf("marshal field %s: %w", field, mErr)
		}
		values[valueKey] = av
		if i > 0 {
			expr += ", "
		}
		expr += fmt.Sprintf("%s = %s", strings.Join(path, "."), valueKey)
	}
	return expr, names, values, nil
}

// storeErr normalizes a DynamoDB transport error to the domain store sentinel.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStore)
}
