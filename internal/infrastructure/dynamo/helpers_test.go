package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/onboarding-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealmKey(t *testing.T) {
	key := realmKey(RealmUser, "a@x.com")

	pk, ok := key["pk"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "USER", pk.Value)

	sk, ok := key["sk"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", sk.Value)
}

func TestMarshalItem_StampsRealmKey(t *testing.T) {
	item, err := marshalItem(RealmOTP, "a@x.com", &domain.OTPChallenge{
		Email:     "a@x.com",
		EmailCode: "111111",
		PhoneCode: "222222",
		ExpiresAt: 1700000000,
	})
	require.NoError(t, err)

	assert.Equal(t, "OTP", item["pk"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "a@x.com", item["sk"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "111111", item["email_code"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "1700000000", item["expires_at"].(*types.AttributeValueMemberN).Value)
}

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"status": "verified",
	})
	require.NoError(t, err)

	assert.Equal(t, "SET #f0 = :v0", expr)
	assert.Equal(t, map[string]string{"#f0": "status"}, names)
	assert.Equal(t, "verified", values[":v0"].(*types.AttributeValueMemberS).Value)
}

func TestBuildUpdateExpr_SortedMultiField(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"status": "verified",
		"name":   "Ana",
	})
	require.NoError(t, err)

	// Fields are emitted in sorted order: name before status.
	assert.Equal(t, "SET #f0 = :v0, #f1 = :v1", expr)
	assert.Equal(t, "name", names["#f0"])
	assert.Equal(t, "status", names["#f1"])
	assert.Equal(t, "Ana", values[":v0"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "verified", values[":v1"].(*types.AttributeValueMemberS).Value)
}

func TestBuildUpdateExpr_NestedPath(t *testing.T) {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"profile.address": "Main St 1",
	})
	require.NoError(t, err)

	assert.Equal(t, "SET #f0.#f1 = :v0", expr)
	assert.Equal(t, "profile", names["#f0"])
	assert.Equal(t, "address", names["#f1"])
	assert.Equal(t, "Main St 1", values[":v0"].(*types.AttributeValueMemberS).Value)
}

func TestBuildUpdateExpr_Empty(t *testing.T) {
	_, _, _, err := buildUpdateExpr(map[string]interface{}{})
	assert.Error(t, err)
}
