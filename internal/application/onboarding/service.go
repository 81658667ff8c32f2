package onboarding

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/onboarding-api/internal/domain"
	"github.com/onboarding-api/internal/infrastructure/cognito"
	"github.com/onboarding-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

// SignupResult reports the signup workflow outcome. The workflow is a
// success once the user record is reserved; per-channel delivery failures
// are downgraded to flags so the caller can offer a resend instead of the
// whole signup being rolled back.
type SignupResult struct {
	Email     string   `json:"email"`
	Status    string   `json:"status"`
	EmailSent bool     `json:"email_sent"`
	PhoneSent bool     `json:"phone_sent"`
	Warnings  []string `json:"warnings,omitempty"`
}

// VerifyResult reports a successful dual-code verification.
type VerifyResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
}

type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*SignupResult, error)
	Verify(ctx context.Context, req domain.VerifyRequest) (*VerifyResult, error)
	Login(ctx context.Context, req domain.LoginRequest) (*cognito.AuthTokens, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, email, status string) error
}

type otpStore interface {
	Put(ctx context.Context, c *domain.OTPChallenge) error
	Get(ctx context.Context, email string) (*domain.OTPChallenge, error)
	Consume(ctx context.Context, email string) error
}

// EmailChannel delivers a code to the principal's email address.
type EmailChannel interface {
	SendCode(ctx context.Context, to, code string) error
}

// PhoneChannel delivers a code to the principal's phone number.
type PhoneChannel interface {
	SendCode(ctx context.Context, to, code string) error
}

type service struct {
	users      userStore
	otps       otpStore
	idp        cognito.IdentityProvider
	email      EmailChannel
	phone      PhoneChannel
	otpTTL     time.Duration
	bcryptCost int
}

type ServiceDeps struct {
	UserRepo   userStore
	OTPRepo    otpStore
	Provider   cognito.IdentityProvider
	Email      EmailChannel
	Phone      PhoneChannel
	OTPTTL     time.Duration
	BcryptCost int
}

func NewService(deps ServiceDeps) Service {
	if deps.OTPTTL <= 0 {
		deps.OTPTTL = 25 * time.Minute
	}
	if deps.BcryptCost < 10 {
		deps.BcryptCost = 10
	}
	return &service{
		users:      deps.UserRepo,
		otps:       deps.OTPRepo,
		idp:        deps.Provider,
		email:      deps.Email,
		phone:      deps.Phone,
		otpTTL:     deps.OTPTTL,
		bcryptCost: deps.BcryptCost,
	}
}

// Signup drives the onboarding workflow: existence checks, provider account
// creation, credential setup, record reservation, dual code issuance and
// delivery. Steps before the user record write abort cleanly; after it, the
// account is reserved and later failures degrade to warnings, because there
// is no path to recreate a stranded provider account under the same email.
func (s *service) Signup(ctx context.Context, req domain.SignupRequest) (*SignupResult, error) {
	email := domain.NormalizeEmail(req.Email)

	// Best-effort provider probe. A positive result fails fast; a negative
	// or failed probe proves nothing, the record store below is authoritative.
	if exists, err := s.idp.AccountExists(ctx, email); err != nil {
		slog.Warn("provider existence probe failed", "email", email, "err", err)
	} else if exists {
		return nil, fmt.Errorf("provider already has %s: %w", email, domain.ErrDuplicateAccount)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user record for %s: %w", email, domain.ErrDuplicateAccount)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.idp.CreateAccount(ctx, email); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Lost the race against a concurrent signup; the provider is
			// the arbiter and the winner's record must not be overwritten.
			return nil, fmt.Errorf("provider already has %s: %w", email, domain.ErrDuplicateAccount)
		}
		return nil, err
	}
	if err := s.idp.SetPassword(ctx, email, req.Password, true); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	u := &domain.User{
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	// The account is reserved from here on. Everything below degrades to
	// warnings attached to an accepted result.
	result := &SignupResult{Email: email, Status: domain.StatusPending}

	emailCode, err := otp.Generate()
	if err != nil {
		return s.warn(result, "could not issue verification codes", err), nil
	}
	phoneCode, err := otp.Generate()
	if err != nil {
		return s.warn(result, "could not issue verification codes", err), nil
	}
	challenge := &domain.OTPChallenge{
		Email:     email,
		EmailCode: emailCode,
		PhoneCode: phoneCode,
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.otps.Put(ctx, challenge); err != nil {
		return s.warn(result, "could not store verification codes", err), nil
	}

	if err := s.email.SendCode(ctx, email, emailCode); err != nil {
		slog.Warn("email code delivery failed", "email", email, "err", err)
		result.Warnings = append(result.Warnings, "email delivery failed; request a resend")
	} else {
		result.EmailSent = true
	}
	if err := s.phone.SendCode(ctx, req.PhoneNumber, phoneCode); err != nil {
		slog.Warn("phone code delivery failed", "email", email, "err", err)
		result.Warnings = append(result.Warnings, "phone delivery failed; request a resend")
	} else {
		result.PhoneSent = true
	}
	return result, nil
}

func (s *service) warn(result *SignupResult, msg string, err error) *SignupResult {
	slog.Error("signup degraded after record reservation", "email", result.Email, "reason", msg, "err", err)
	result.Warnings = append(result.Warnings, msg+"; request a resend")
	return result
}

// Verify consumes both codes atomically against the challenge record,
// advances the identity provider, and flips the user record to verified.
func (s *service) Verify(ctx context.Context, req domain.VerifyRequest) (*VerifyResult, error) {
	email := domain.NormalizeEmail(req.Email)

	challenge, err := s.otps.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	// Both codes checked unconditionally so the comparison does not leak
	// which channel's code was wrong through timing.
	emailOK := subtle.ConstantTimeCompare([]byte(req.EmailOTP), []byte(challenge.EmailCode))
	phoneOK := subtle.ConstantTimeCompare([]byte(req.PhoneOTP), []byte(challenge.PhoneCode))
	if emailOK&phoneOK != 1 {
		// Challenge left intact: the principal may retry until TTL expiry.
		return nil, fmt.Errorf("codes for %s: %w", email, domain.ErrInvalidCode)
	}

	if err := s.otps.Consume(ctx, email); err != nil {
		// Either a concurrent verification consumed the record first or the
		// delete itself failed. Nothing was confirmed yet either way.
		return nil, err
	}

	// Past this point the codes are gone. A failure must surface as a
	// partial verification, never as silent success.
	if err := s.idp.ConfirmRegistration(ctx, email); err != nil {
		slog.Error("provider confirmation failed after code consumption", "email", email, "err", err)
		return nil, fmt.Errorf("provider confirmation for %s: %w", email, domain.ErrVerificationPartial)
	}
	if err := s.users.UpdateStatus(ctx, email, domain.StatusVerified); err != nil {
		slog.Error("status update failed after provider confirmation", "email", email, "err", err)
		return nil, fmt.Errorf("status update for %s: %w", email, domain.ErrVerificationPartial)
	}

	return &VerifyResult{Email: email, Status: domain.StatusVerified}, nil
}

// Login is a pass-through to the identity provider, refused while the
// user record is still pending verification.
func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*cognito.AuthTokens, error) {
	email := domain.NormalizeEmail(req.Email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}
	if u.Status != domain.StatusVerified {
		return nil, fmt.Errorf("account %s not verified: %w", email, domain.ErrForbidden)
	}
	return s.idp.Authenticate(ctx, email, req.Password)
}
