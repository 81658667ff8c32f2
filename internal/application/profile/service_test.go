package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/onboarding-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	return m.Called(ctx, email, updates).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}

func strp(s string) *string { return &s }

func TestUpdate_OnlySetFieldsSent(t *testing.T) {
	users := &mockUserStore{}
	users.On("Update", mock.Anything, "a@x.com", map[string]interface{}{
		"profile.city":    "Lisbon",
		"profile.country": "PT",
	}).Return(nil)
	users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(&domain.User{Email: "a@x.com"}, nil)

	_, err := NewService(users, &mockObjectStore{}).Update(context.Background(), "a@x.com", domain.UpdateProfileRequest{
		City:    strp("Lisbon"),
		Country: strp("PT"),
	})

	require.NoError(t, err)
	users.AssertExpectations(t)
}

func TestUpdate_EmptyRequestIsARead(t *testing.T) {
	users := &mockUserStore{}
	users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(&domain.User{Email: "a@x.com"}, nil)

	u, err := NewService(users, &mockObjectStore{}).Update(context.Background(), "a@x.com", domain.UpdateProfileRequest{})

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadPhoto(t *testing.T) {
	users := &mockUserStore{}
	objects := &mockObjectStore{}
	users.On("GetByEmail", mock.Anything, "a@x.com").
		Return(&domain.User{Email: "a@x.com"}, nil)
	objects.On("Upload", mock.Anything, "profile-photos/a@x.com/me.png", mock.Anything, "image/png").
		Return("https://bucket/profile-photos/a@x.com/me.png", nil)
	users.On("Update", mock.Anything, "a@x.com", map[string]interface{}{
		"profile.profile_photo": "https://bucket/profile-photos/a@x.com/me.png",
	}).Return(nil)

	_, err := NewService(users, objects).UploadPhoto(context.Background(), "a@x.com", "me.png", strings.NewReader("png-bytes"))

	require.NoError(t, err)
	users.AssertExpectations(t)
	objects.AssertExpectations(t)
}

func TestUploadPhoto_UnknownUser(t *testing.T) {
	users := &mockUserStore{}
	objects := &mockObjectStore{}
	users.On("GetByEmail", mock.Anything, "ghost@x.com").Return(nil, domain.ErrNotFound)

	_, err := NewService(users, objects).UploadPhoto(context.Background(), "ghost@x.com", "me.png", strings.NewReader("x"))

	assert.ErrorIs(t, err, domain.ErrNotFound)
	objects.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
