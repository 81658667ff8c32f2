package domain

import "time"

// OTPChallenge holds both channel codes for one principal.
// PK realm: OTP, SK: email. At most one outstanding challenge per email;
// a new signup overwrites it, invalidating both prior codes at once.
// ExpiresAt is a Unix timestamp used as the DynamoDB TTL attribute.
type OTPChallenge struct {
	Email     string `json:"email" dynamodbav:"email"`
	EmailCode string `json:"-" dynamodbav:"email_code"`
	PhoneCode string `json:"-" dynamodbav:"phone_code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the challenge's TTL has elapsed at now.
// DynamoDB TTL deletion is lazy, so readers must check this themselves.
func (c *OTPChallenge) Expired(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}
