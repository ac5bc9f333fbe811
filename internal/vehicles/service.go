package vehicles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/pkg/db/models"
	dbtypes "github.com/mazadcars/mazad-backend/pkg/db/types"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateInput carries the operator-supplied vehicle listing.
type CreateInput struct {
	Make            string
	Model           string
	Year            int
	Mileage         int64
	DamageType      *string
	FinesCleared    bool
	ConditionReport dbtypes.ConditionReport
}

// Service defines vehicle inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the vehicles service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Vehicle, error) {
	if input.Make == "" || input.Model == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "make and model are required")
	}
	if input.Year < 1950 || input.Year > time.Now().Year()+1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year out of range")
	}
	if input.Mileage < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mileage cannot be negative")
	}
	if rp := input.ConditionReport.ReservePrice; rp != nil && *rp <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reserve price must be positive")
	}

	vehicle := &models.Vehicle{
		Make:            input.Make,
		Model:           input.Model,
		Year:            input.Year,
		Mileage:         input.Mileage,
		DamageType:      input.DamageType,
		FinesCleared:    input.FinesCleared,
		ConditionReport: input.ConditionReport,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Create(ctx, vehicle)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	vehicle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	return vehicle, nil
}
