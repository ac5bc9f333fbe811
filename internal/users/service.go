package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/internal/bidding"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
)

// TierStatus is the deposit standing returned to bidders.
type TierStatus struct {
	DepositBalance int64
	Tier           bidding.Tier
}

// Service exposes account-level reads.
type Service interface {
	TierStatus(ctx context.Context, userID uuid.UUID) (*TierStatus, error)
}

type service struct {
	repo Repository
}

// NewService builds the users service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) TierStatus(ctx context.Context, userID uuid.UUID) (*TierStatus, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return &TierStatus{
		DepositBalance: user.DepositBalance,
		Tier:           bidding.TierOf(user.DepositBalance),
	}, nil
}
