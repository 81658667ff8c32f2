package subscription

import (
	"context"
	"time"

	"github.com/onboarding-api/internal/domain"
)

type Service interface {
	Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.Subscription, error)
}

type subscriptionStore interface {
	Put(ctx context.Context, s *domain.Subscription) error
}

type service struct {
	repo subscriptionStore
}

func NewService(repo subscriptionStore) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(ctx context.Context, req domain.SubscribeRequest) (*domain.Subscription, error) {
	sub := &domain.Subscription{
		Email:     domain.NormalizeEmail(req.Email),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
