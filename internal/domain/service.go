package domain

import "time"

// Service is a catalog entry. PK realm: SERVICE, SK: ULID.
type Service struct {
	ServiceID   string    `json:"id" dynamodbav:"service_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	Risk        string    `json:"risk" dynamodbav:"risk"`
	Category    string    `json:"category" dynamodbav:"category"`
	Subcategory string    `json:"subcategory" dynamodbav:"subcategory"`
	Price       float64   `json:"price" dynamodbav:"price"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// ServiceInput is the create/update payload for a catalog entry.
type ServiceInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Risk        string  `json:"risk"`
	Category    string  `json:"category" validate:"required"`
	Subcategory string  `json:"subcategory"`
	Price       float64 `json:"price" validate:"gte=0"`
}
