package catalog

import (
	"context"
	"time"

	"github.com/onboarding-api/internal/domain"
	"github.com/onboarding-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldRisk        = "risk"
	fieldCategory    = "category"
	fieldSubcategory = "subcategory"
	fieldPrice       = "price"
)

type Service interface {
	List(ctx context.Context, limit int, cursor string) ([]domain.Service, string, error)
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
	Create(ctx context.Context, input domain.ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, serviceID string, input domain.ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, serviceID string) error // hard delete
}

type serviceStore interface {
	QueryPage(ctx context.Context, limit int32, cursor string) ([]domain.Service, string, error)
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
	Put(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, serviceID string, updates map[string]interface{}) error
	Delete(ctx context.Context, serviceID string) error
}

type service struct {
	repo serviceStore
}

func NewService(repo serviceStore) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, limit int, cursor string) ([]domain.Service, string, error) {
	if limit < 1 {
		limit = 50
	}
	return s.repo.QueryPage(ctx, int32(limit), cursor)
}

func (s *service) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	return s.repo.Get(ctx, serviceID)
}

func (s *service) Create(ctx context.Context, input domain.ServiceInput) (*domain.Service, error) {
	now := time.Now().UTC()
	entry := &domain.Service{
		ServiceID:   id.New(),
		Name:        input.Name,
		Description: input.Description,
		Risk:        input.Risk,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) Update(ctx context.Context, serviceID string, input domain.ServiceInput) (*domain.Service, error) {
	updates := map[string]interface{}{
		fieldName:        input.Name,
		fieldDescription: input.Description,
		fieldRisk:        input.Risk,
		fieldCategory:    input.Category,
		fieldSubcategory: input.Subcategory,
		fieldPrice:       input.Price,
	}
	if err := s.repo.Update(ctx, serviceID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, serviceID)
}

func (s *service) Delete(ctx context.Context, serviceID string) error {
	return s.repo.Delete(ctx, serviceID)
}
