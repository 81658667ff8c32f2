package profile

import (
	"context"
	"fmt"
	"io"

	"github.com/onboarding-api/internal/domain"
	s3infra "github.com/onboarding-api/internal/infrastructure/s3"
)

// DynamoDB attribute names used in partial update maps. Profile fields live
// inside the nested profile attribute.
const (
	fieldPhoneNumber  = "phone_number"
	fieldAddress      = "profile.address"
	fieldCity         = "profile.city"
	fieldPostal       = "profile.postal"
	fieldCountry      = "profile.country"
	fieldPaymentInfo  = "profile.payment_info"
	fieldProfilePhoto = "profile.profile_photo"
)

type Service interface {
	Update(ctx context.Context, email string, req domain.UpdateProfileRequest) (*domain.User, error)
	UploadPhoto(ctx context.Context, email, filename string, r io.Reader) (*domain.User, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, email string, updates map[string]interface{}) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

type service struct {
	users   userStore
	objects objectStore
}

func NewService(users userStore, objects objectStore) Service {
	return &service{users: users, objects: objects}
}

// Update applies a partial profile update. Status and credentials are not
// reachable through this path.
func (s *service) Update(ctx context.Context, email string, req domain.UpdateProfileRequest) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	updates := map[string]interface{}{}
	if req.PhoneNumber != nil {
		updates[fieldPhoneNumber] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.City != nil {
		updates[fieldCity] = *req.City
	}
	if req.Postal != nil {
		updates[fieldPostal] = *req.Postal
	}
	if req.Country != nil {
		updates[fieldCountry] = *req.Country
	}
	if req.PaymentInfo != nil {
		updates[fieldPaymentInfo] = *req.PaymentInfo
	}
	if len(updates) == 0 {
		return s.users.GetByEmail(ctx, email)
	}
	if err := s.users.Update(ctx, email, updates); err != nil {
		return nil, err
	}
	return s.users.GetByEmail(ctx, email)
}

// UploadPhoto stores the photo in the object store keyed by email and
// persists the object URL on the user record.
func (s *service) UploadPhoto(ctx context.Context, email, filename string, r io.Reader) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	}
	key := fmt.Sprintf("profile-photos/%s/%s", email, filename)
	url, err := s.objects.Upload(ctx, key, r, s3infra.DetectContentType(filename))
	if err != nil {
		return nil, fmt.Errorf("upload profile photo: %w", err)
	}
	if err := s.users.Update(ctx, email, map[string]interface{}{fieldProfilePhoto: url}); err != nil {
		return nil, err
	}
	return s.users.GetByEmail(ctx, email)
}
