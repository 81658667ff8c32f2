package domain

import "time"

// Subscription is a captured newsletter email. PK realm: SUBSCRIPTION, SK: email.
type Subscription struct {
	Email     string    `json:"email" dynamodbav:"email"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

// SubscribeRequest is the boundary input for subscription capture.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}
