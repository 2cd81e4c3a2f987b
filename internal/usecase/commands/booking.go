package commands

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/domain/user"
	"slotmarket/internal/infra"
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound      = errs.New("service not found")
	ErrServiceNotBookable   = errs.New("service not bookable")
	ErrSlotConflict         = errs.New("slot already booked")
	ErrBookingNotFoundWrite = errs.New("booking not found")
	ErrBookingNotOwned      = errs.New("booking not owned by user")
	ErrUserDeleted          = errs.New("user is deleted")
)

type CreateBookingRequest struct {
	ServiceID uuid.UUID
	Date      booking.Date
	Time      booking.TimeOfDay
	Notes     string
}

// UpdateBookingRequest carries partial updates; nil fields keep the
// current value.
type UpdateBookingRequest struct {
	ServiceID *uuid.UUID
	Date      *booking.Date
	Time      *booking.TimeOfDay
	Status    *booking.Status
	Notes     *string
}

type CreateBookingResult struct {
	BookingID uuid.UUID
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID) (*CreateBookingResult, error)
	UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest, actorID uuid.UUID, actorRole user.Role) error
	DeleteBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error
}

type bookingUseCaseImpl struct {
	uow         shared.UnitOfWork
	invalidator *shared.CacheInvalidator
	clock       clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, invalidator *shared.CacheInvalidator, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, invalidator: invalidator, clock: clk}
}

// CreateBooking reserves the slot and records a pending booking in one
// transaction. Slot exclusivity rests on two checks under the same tx:
// no occupying booking may hold the key, and the slot row's is_booked
// flag must flip false->true atomically.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, userID uuid.UUID) (*CreateBookingResult, error) {
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
	if svc.Deleted || !svc.IsActive {
		return nil, ErrServiceNotBookable
	}
	if err = uc.checkUserLive(ctx, uc.uow.CommandReads(), userID); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Slots().Ensure(ctx, tx.DB(), key); derr != nil {
			return derr
		}
		taken, derr := tx.Reads().ActiveBookingExists(ctx, key, nil)
		if derr != nil {
			return derr
		}
		if taken {
			return ErrSlotConflict
		}
		reserved, derr := tx.Slots().TryReserve(ctx, tx.DB(), key)
		if derr != nil {
			return derr
		}
		if !reserved {
			return ErrSlotConflict
		}

		b, derr := booking.NewBooking(req.ServiceID, userID, req.Date, req.Time, req.Notes, svc.Price, uc.clock.Now())
		if derr != nil {
			return derr
		}
		id, derr := tx.Bookings().Create(ctx, tx.DB(), b)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidator.OnBookingChanged(ctx, key)
	return &CreateBookingResult{BookingID: createdID}, nil
}

func (uc *bookingUseCaseImpl) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest, actorID uuid.UUID, actorRole user.Role) error {
	var origKey, newKey booking.SlotKey
	var slotChanged bool

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}
		if snap.Deleted {
			return ErrBookingNotFoundWrite
		}
		if snap.UserID != actorID && !user.Can(actorRole, user.ActionManageAnyBooking) {
			return ErrBookingNotOwned
		}
		if derr = uc.checkUserLive(ctx, tx.Reads(), snap.UserID); derr != nil {
			return derr
		}

		origKey = snap.SlotKey()
		newKey = origKey
		if req.ServiceID != nil {
			newKey.ServiceID = *req.ServiceID
		}
		if req.Date != nil {
			newKey.Date = *req.Date
		}
		if req.Time != nil {
			newKey.Time = *req.Time
		}
		status := snap.Status
		if req.Status != nil {
			status = *req.Status
		}
		notes := snap.Notes
		if req.Notes != nil {
			notes = *req.Notes
		}

		slotChanged = !newKey.Equal(origKey)
		if slotChanged {
			if derr = booking.ValidateFuture(newKey, uc.clock.Now()); derr != nil {
				return derr
			}
		}

		price := snap.Price
		if newKey.ServiceID != origKey.ServiceID {
			svc, serr := tx.Reads().ServiceByID(ctx, newKey.ServiceID)
			if serr != nil {
				if infra.IsKind(serr, infra.KindNotFound) {
					return ErrServiceNotFound
				}
				return serr
			}
			if svc.Deleted || !svc.IsActive {
				return ErrServiceNotBookable
			}
			price = svc.Price
		}

		wasOccupying := snap.Status.Occupies()
		nowOccupying := status.Occupies()

		if nowOccupying && (slotChanged || !wasOccupying) {
			if derr = uc.reserveSlot(ctx, tx, newKey, &bookingID); derr != nil {
				return derr
			}
		}

		updated := booking.Reconstruct(
			snap.ID, newKey.ServiceID, snap.UserID,
			newKey.Date, newKey.Time, status, notes, price,
			false, snap.CreatedAt, uc.clock.Now(),
		)
		if derr = tx.Bookings().Update(ctx, tx.DB(), updated); derr != nil {
			return derr
		}

		if wasOccupying && (slotChanged || !nowOccupying) {
			if derr = uc.releaseSlotIfIdle(ctx, tx, origKey, bookingID); derr != nil {
				return derr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnBookingChanged(ctx, origKey)
	if slotChanged {
		uc.invalidator.OnBookingChanged(ctx, newKey)
	}
	return nil
}

// DeleteBooking soft-deletes the booking and frees its slot so the
// time becomes bookable again.
func (uc *bookingUseCaseImpl) DeleteBooking(ctx context.Context, bookingID uuid.UUID, actorID uuid.UUID, actorRole user.Role) error {
	var key booking.SlotKey

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrBookingNotFoundWrite
			}
			return derr
		}
		if snap.Deleted {
			return ErrBookingNotFoundWrite
		}
		if snap.UserID != actorID && !user.Can(actorRole, user.ActionManageAnyBooking) {
			return ErrBookingNotOwned
		}

		key = snap.SlotKey()
		if derr = tx.Bookings().SoftDelete(ctx, tx.DB(), bookingID); derr != nil {
			return derr
		}
		if snap.Status.Occupies() {
			if derr = uc.releaseSlotIfIdle(ctx, tx, key, bookingID); derr != nil {
				return derr
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.invalidator.OnBookingChanged(ctx, key)
	return nil
}

// checkUserLive rejects bookings whose referenced user row is gone or
// soft-deleted; a still-valid token does not outlive the account.
func (uc *bookingUseCaseImpl) checkUserLive(ctx context.Context, reads shared.CommandReads, userID uuid.UUID) error {
	usr, err := reads.UserByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserDeleted
		}
		return err
	}
	if usr.Deleted {
		return ErrUserDeleted
	}
	return nil
}

func (uc *bookingUseCaseImpl) reserveSlot(ctx context.Context, tx shared.Tx, key booking.SlotKey, excludeID *uuid.UUID) error {
	if err := tx.Slots().Ensure(ctx, tx.DB(), key); err != nil {
		return err
	}
	taken, err := tx.Reads().ActiveBookingExists(ctx, key, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotConflict
	}
	reserved, err := tx.Slots().TryReserve(ctx, tx.DB(), key)
	if err != nil {
		return err
	}
	if !reserved {
		return ErrSlotConflict
	}
	return nil
}

// releaseSlotIfIdle frees the slot row unless another occupying
// booking still holds the key.
//
// Under read committed a create committing between the exists check
// and Release can leave is_booked false next to an active booking.
// Exclusivity is unaffected: both TryReserve and the availability
// reads also consult the active-booking set, and the flag heals on
// the next reservation of the key.
func (uc *bookingUseCaseImpl) releaseSlotIfIdle(ctx context.Context, tx shared.Tx, key booking.SlotKey, excludeID uuid.UUID) error {
	busy, err := tx.Reads().ActiveBookingExists(ctx, key, &excludeID)
	if err != nil {
		return err
	}
	if busy {
		return nil
	}
	return tx.Slots().Release(ctx, tx.DB(), key)
}
