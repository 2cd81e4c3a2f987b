package commands

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFoundWrite = errs.New("slot not found")
	ErrSlotExists        = errs.New("slot already exists")
	ErrSlotBooked        = errs.New("slot is booked")
)

type CreateSlotRequest struct {
	ServiceID uuid.UUID
	Date      booking.Date
	Time      booking.TimeOfDay
}

type UpdateSlotRequest struct {
	Date *booking.Date
	Time *booking.TimeOfDay
}

type CreateSlotResult struct {
	SlotID uuid.UUID
}

// SlotCommands is the manager-facing schedule maintenance surface.
// Booked slots are immutable here: freeing one goes through the
// booking lifecycle, never through slot edits.
type SlotCommands interface {
	CreateSlot(ctx context.Context, req CreateSlotRequest) (*CreateSlotResult, error)
	UpdateSlot(ctx context.Context, slotID uuid.UUID, req UpdateSlotRequest) error
	DeleteSlot(ctx context.Context, slotID uuid.UUID) error
}

type slotUseCaseImpl struct {
	uow         shared.UnitOfWork
	invalidator *shared.CacheInvalidator
	clock       clock.Clock
}

func NewSlotUseCase(uow shared.UnitOfWork, invalidator *shared.CacheInvalidator, clk clock.Clock) SlotCommands {
	return &slotUseCaseImpl{uow: uow, invalidator: invalidator, clock: clk}
}

func (uc *slotUseCaseImpl) CreateSlot(ctx context.Context, req CreateSlotRequest) (*CreateSlotResult, error) {
	key := booking.SlotKey{ServiceID: req.ServiceID, Date: req.Date, Time: req.Time}
	if err := booking.ValidateFuture(key, uc.clock.Now()); err != nil {
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
		id, derr := tx.Slots().Insert(ctx, tx.DB(), key, false)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrSlotExists
			}
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.OnSlotChanged(ctx, key)
	return &CreateSlotResult{SlotID: createdID}, nil
}

func (uc *slotUseCaseImpl) UpdateSlot(ctx context.Context, slotID uuid.UUID, req UpdateSlotRequest) error {
	var origKey, newKey booking.SlotKey

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().SlotByID(ctx, slotID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrSlotNotFoundWrite
			}
			return derr
		}
		if snap.IsBooked {
			return ErrSlotBooked
		}

		origKey = snap.SlotKey()
		newKey = origKey
		if req.Date != nil {
			newKey.Date = *req.Date
		}
		if req.Time != nil {
			newKey.Time = *req.Time
		}
		if newKey.Equal(origKey) {
			return nil
		}
		if derr = booking.ValidateFuture(newKey, uc.clock.Now()); derr != nil {
			return derr
		}

		if derr = tx.Slots().UpdateKey(ctx, tx.DB(), slotID, newKey); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrSlotExists
			}
			return derr
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnSlotChanged(ctx, origKey)
	uc.invalidator.OnSlotChanged(ctx, newKey)
	return nil
}

func (uc *slotUseCaseImpl) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	var key booking.SlotKey

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().SlotByID(ctx, slotID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrSlotNotFoundWrite
			}
			return derr
		}
		if snap.IsBooked {
			return ErrSlotBooked
		}
		key = snap.SlotKey()
		return tx.Slots().Delete(ctx, tx.DB(), slotID)
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnSlotChanged(ctx, key)
	return nil
}
