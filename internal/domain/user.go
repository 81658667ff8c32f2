package domain

import (
	"strings"
	"time"
)

// User account statuses. Transitions only pending -> verified.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
)

// User is the durable record of a principal, keyed by email.
// The password is stored only as a bcrypt hash; the raw password never
// leaves the signup call stack.
type User struct {
	Email        string    `json:"email" dynamodbav:"email"`
	PhoneNumber  string    `json:"phone_number" dynamodbav:"phone_number"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Status       string    `json:"status" dynamodbav:"status"`
	Profile      Profile   `json:"profile" dynamodbav:"profile"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Profile holds the opaque profile fields. The core never interprets them;
// they are validated at the boundary and stored as-is. Extra carries
// forward-compatible extension attributes.
type Profile struct {
	Address      string            `json:"address" dynamodbav:"address"`
	City         string            `json:"city" dynamodbav:"city"`
	Postal       string            `json:"postal" dynamodbav:"postal"`
	Country      string            `json:"country" dynamodbav:"country"`
	ProfilePhoto string            `json:"profile_photo" dynamodbav:"profile_photo"`
	PaymentInfo  []string          `json:"payment_info" dynamodbav:"payment_info"`
	Extra        map[string]string `json:"extra,omitempty" dynamodbav:"extra,omitempty"`
}

// SignupRequest is the boundary input for the signup workflow.
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"required,min=7,max=15"`
}

// VerifyRequest is the boundary input for the dual-code verification workflow.
type VerifyRequest struct {
	Email     string `json:"email" validate:"required,email"`
	EmailOTP  string `json:"email_otp" validate:"required,len=6,numeric"`
	PhoneOTP  string `json:"phone_otp" validate:"required,len=6,numeric"`
}

// LoginRequest is the boundary input for the login pass-through.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest carries a partial profile update. Nil fields are
// left untouched. Status and credentials are not updatable through this path.
type UpdateProfileRequest struct {
	PhoneNumber *string   `json:"phone_number"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	Postal      *string   `json:"postal"`
	Country     *string   `json:"country"`
	PaymentInfo *[]string `json:"payment_info"`
}

// NormalizeEmail is the canonical form used as the store key for the
// USER, OTP and SUBSCRIPTION realms.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
