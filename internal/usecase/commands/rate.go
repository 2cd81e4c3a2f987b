package commands

import (
	"context"

	"slotmarket/internal/domain/rate"
	"slotmarket/internal/domain/user"
	"slotmarket/internal/infra"
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRated      = errs.New("service already rated by user")
	ErrRateNotFoundWrite = errs.New("rate not found")
	ErrRateNotOwned      = errs.New("rate not owned by user")
)

type CreateRateRequest struct {
	ServiceID uuid.UUID
	Rating    int
}

type CreateRateResult struct {
	RateID uuid.UUID
}

type RateCommands interface {
	CreateRate(ctx context.Context, req CreateRateRequest, userID uuid.UUID) (*CreateRateResult, error)
	UpdateRate(ctx context.Context, rateID uuid.UUID, rating int, actorID uuid.UUID) error
	DeleteRate(ctx context.Context, rateID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type rateUseCaseImpl struct {
	uow         shared.UnitOfWork
	invalidator *shared.CacheInvalidator
	clock       clock.Clock
}

func NewRateUseCase(uow shared.UnitOfWork, invalidator *shared.CacheInvalidator, clk clock.Clock) RateCommands {
	return &rateUseCaseImpl{uow: uow, invalidator: invalidator, clock: clk}
}

// CreateRate records a 1-5 rating. One live rating per (service, user)
// pair; the partial unique index backs the duplicate check.
func (uc *rateUseCaseImpl) CreateRate(ctx context.Context, req CreateRateRequest, userID uuid.UUID) (*CreateRateResult, error) {
	r, err := rate.NewRate(req.ServiceID, userID, req.Rating, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	svc, err := uc.uow.CommandReads().ServiceByID(ctx, req.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if svc.Deleted {
		return nil, ErrServiceNotFound
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Rates().Create(ctx, tx.DB(), r)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrAlreadyRated
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.OnRateChanged(ctx, req.ServiceID)
	return &CreateRateResult{RateID: createdID}, nil
}

func (uc *rateUseCaseImpl) UpdateRate(ctx context.Context, rateID uuid.UUID, rating int, actorID uuid.UUID) error {
	if _, err := rate.NewRating(rating); err != nil {
		return err
	}

	var serviceID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RateByID(ctx, rateID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRateNotFoundWrite
			}
			return derr
		}
		if snap.Deleted {
			return ErrRateNotFoundWrite
		}
		if snap.UserID != actorID {
			return ErrRateNotOwned
		}
		serviceID = snap.ServiceID
		return tx.Rates().UpdateRating(ctx, tx.DB(), rateID, rating)
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnRateChanged(ctx, serviceID)
	return nil
}

func (uc *rateUseCaseImpl) DeleteRate(ctx context.Context, rateID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	var serviceID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().RateByID(ctx, rateID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRateNotFoundWrite
			}
			return derr
		}
		if snap.Deleted {
			return ErrRateNotFoundWrite
		}
		if snap.UserID != actorID && !user.Can(actorRole, user.ActionModerateRates) {
			return ErrRateNotOwned
		}
		serviceID = snap.ServiceID
		return tx.Rates().SoftDelete(ctx, tx.DB(), rateID)
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnRateChanged(ctx, serviceID)
	return nil
}
