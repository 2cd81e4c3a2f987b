package commands

import (
	"context"

	"slotmarket/internal/domain/service"
	"slotmarket/internal/infra"
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrServiceNameTaken = errs.New("service name already taken")

type CreateServiceRequest struct {
	Name        string
	Description string
	Category    string
	Location    string
	Price       decimal.Decimal
}

type UpdateServiceRequest struct {
	Name        *string
	Description *string
	Category    *string
	Location    *string
	Price       *decimal.Decimal
	IsActive    *bool
}

type CreateServiceResult struct {
	ServiceID uuid.UUID
}

type ServiceCommands interface {
	CreateService(ctx context.Context, req CreateServiceRequest, authorID uuid.UUID) (*CreateServiceResult, error)
	UpdateService(ctx context.Context, serviceID uuid.UUID, req UpdateServiceRequest) error
	DeleteService(ctx context.Context, serviceID uuid.UUID) error
}

type serviceUseCaseImpl struct {
	uow         shared.UnitOfWork
	invalidator *shared.CacheInvalidator
	clock       clock.Clock
}

func NewServiceUseCase(uow shared.UnitOfWork, invalidator *shared.CacheInvalidator, clk clock.Clock) ServiceCommands {
	return &serviceUseCaseImpl{uow: uow, invalidator: invalidator, clock: clk}
}

func (uc *serviceUseCaseImpl) CreateService(ctx context.Context, req CreateServiceRequest, authorID uuid.UUID) (*CreateServiceResult, error) {
	svc, err := service.NewService(req.Name, req.Description, req.Category, req.Location, req.Price, authorID, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, derr := tx.Reads().ServiceNameTaken(ctx, svc.Name(), nil)
		if derr != nil {
			return derr
		}
		if taken {
			return ErrServiceNameTaken
		}
		id, derr := tx.Services().Create(ctx, tx.DB(), svc)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrServiceNameTaken
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateServiceResult{ServiceID: createdID}, nil
}

func (uc *serviceUseCaseImpl) UpdateService(ctx context.Context, serviceID uuid.UUID, req UpdateServiceRequest) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ServiceByID(ctx, serviceID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return derr
		}
		if snap.Deleted {
			return ErrServiceNotFound
		}

		name := snap.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := snap.Description
		if req.Description != nil {
			description = *req.Description
		}
		category := snap.Category
		if req.Category != nil {
			category = *req.Category
		}
		location := snap.Location
		if req.Location != nil {
			location = *req.Location
		}
		price := snap.Price
		if req.Price != nil {
			price = *req.Price
		}
		isActive := snap.IsActive
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		if name != snap.Name {
			taken, terr := tx.Reads().ServiceNameTaken(ctx, name, &serviceID)
			if terr != nil {
				return terr
			}
			if taken {
				return ErrServiceNameTaken
			}
		}

		updated, derr := service.NewService(name, description, category, location, price, snap.AuthorID, snap.CreatedAt)
		if derr != nil {
			return derr
		}
		svc := service.Reconstruct(
			serviceID, updated.Name(), updated.Description(), updated.Category(), updated.Location(),
			updated.Price(), isActive, false, snap.AuthorID, snap.CreatedAt, uc.clock.Now(),
		)
		if derr = tx.Services().Update(ctx, tx.DB(), svc); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrServiceNameTaken
			}
			return derr
		}
		return nil
	})
	return err
}

// DeleteService soft-deletes the listing. Existing bookings keep their
// snapshotted price and stay untouched; the cached average rating is
// dropped since the detail page no longer exists.
func (uc *serviceUseCaseImpl) DeleteService(ctx context.Context, serviceID uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().ServiceByID(ctx, serviceID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return derr
		}
		if snap.Deleted {
			return ErrServiceNotFound
		}
		return tx.Services().SoftDelete(ctx, tx.DB(), serviceID)
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnRateChanged(ctx, serviceID)
	return nil
}
