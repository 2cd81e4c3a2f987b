//go:build unit

package commands_test

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/domain/rate"
	"slotmarket/internal/domain/service"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory UnitOfWork. Writes apply immediately; the retry and
// rollback mechanics of the real transaction are out of scope here.
type fakeSlot struct {
	id       uuid.UUID
	isBooked bool
}

type fakeState struct {
	services map[uuid.UUID]*shared.ServiceSnapshot
	bookings map[uuid.UUID]*shared.BookingSnapshot
	slots    map[booking.SlotKey]*fakeSlot
	rates    map[uuid.UUID]*shared.RateSnapshot
	users    map[uuid.UUID]*shared.UserSnapshot
}

func newFakeState() *fakeState {
	return &fakeState{
		services: make(map[uuid.UUID]*shared.ServiceSnapshot),
		bookings: make(map[uuid.UUID]*shared.BookingSnapshot),
		slots:    make(map[booking.SlotKey]*fakeSlot),
		rates:    make(map[uuid.UUID]*shared.RateSnapshot),
		users:    make(map[uuid.UUID]*shared.UserSnapshot),
	}
}

func (s *fakeState) addService(snap *shared.ServiceSnapshot) {
	s.services[snap.ID] = snap
}

func (s *fakeState) addRate(snap *shared.RateSnapshot) {
	s.rates[snap.ID] = snap
}

func (s *fakeState) addUser(id uuid.UUID) {
	s.users[id] = &shared.UserSnapshot{ID: id, Email: "booker@example.com", Role: "user"}
}

func (s *fakeState) addDeletedUser(id uuid.UUID) {
	s.users[id] = &shared.UserSnapshot{ID: id, Email: "gone@example.com", Role: "user", Deleted: true}
}

func (s *fakeState) addBooking(snap *shared.BookingSnapshot) {
	s.bookings[snap.ID] = snap
	if _, ok := s.users[snap.UserID]; !ok {
		s.addUser(snap.UserID)
	}
	if snap.Status.Occupies() && !snap.Deleted {
		s.slots[snap.SlotKey()] = &fakeSlot{id: uuid.New(), isBooked: true}
	}
}

type fakeUoW struct {
	state *fakeState
}

func newFakeUoW(state *fakeState) *fakeUoW {
	return &fakeUoW{state: state}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Bookings() shared.BookingRepository { return &fakeBookingRepo{state: t.state} }
func (t *fakeTx) Slots() shared.SlotRepository       { return &fakeSlotRepo{state: t.state} }
func (t *fakeTx) Rates() shared.RateRepository       { return &fakeRateRepo{state: t.state} }
func (t *fakeTx) Services() shared.ServiceRepository { return &fakeServiceRepo{state: t.state} }
func (t *fakeTx) Users() shared.UserRepository       { return &fakeUserRepo{} }
func (t *fakeTx) Reads() shared.CommandReads         { return &fakeReads{state: t.state} }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeReads struct {
	state *fakeState
}

func notFound(what string) error {
	return infra.WrapRepoErr(what+" not found", errs.New("no rows"), infra.KindNotFound)
}

func (r *fakeReads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	snap, ok := r.state.services[id]
	if !ok {
		return nil, notFound("service")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) ServiceNameTaken(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for _, snap := range r.state.services {
		if snap.Deleted || snap.Name != name {
			continue
		}
		if excludeID != nil && snap.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	snap, ok := r.state.users[id]
	if !ok {
		return nil, notFound("user")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, ok := r.state.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) SlotByID(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	for key, slot := range r.state.slots {
		if slot.id == id {
			return &shared.SlotSnapshot{
				ID:        slot.id,
				ServiceID: key.ServiceID,
				Date:      key.Date,
				Time:      key.Time,
				IsBooked:  slot.isBooked,
			}, nil
		}
	}
	return nil, notFound("slot")
}

func (r *fakeReads) SlotByKey(_ context.Context, key booking.SlotKey) (*shared.SlotSnapshot, error) {
	slot, ok := r.state.slots[key]
	if !ok {
		return nil, notFound("slot")
	}
	return &shared.SlotSnapshot{
		ID:        slot.id,
		ServiceID: key.ServiceID,
		Date:      key.Date,
		Time:      key.Time,
		IsBooked:  slot.isBooked,
	}, nil
}

func (r *fakeReads) RateByID(_ context.Context, id uuid.UUID) (*shared.RateSnapshot, error) {
	snap, ok := r.state.rates[id]
	if !ok {
		return nil, notFound("rate")
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeReads) ActiveBookingExists(_ context.Context, key booking.SlotKey, excludeID *uuid.UUID) (bool, error) {
	for _, snap := range r.state.bookings {
		if snap.Deleted || !snap.Status.Occupies() {
			continue
		}
		if !snap.SlotKey().Equal(key) {
			continue
		}
		if excludeID != nil && snap.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

type fakeBookingRepo struct {
	state *fakeState
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	r.state.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:        b.ID(),
		ServiceID: b.ServiceID(),
		UserID:    b.UserID(),
		Date:      b.Date(),
		Time:      b.Time(),
		Status:    b.Status(),
		Notes:     b.Notes(),
		Price:     b.Price(),
		CreatedAt: b.CreatedAt(),
	}
	return b.ID(), nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	snap, ok := r.state.bookings[b.ID()]
	if !ok || snap.Deleted {
		return notFound("booking")
	}
	snap.ServiceID = b.ServiceID()
	snap.Date = b.Date()
	snap.Time = b.Time()
	snap.Status = b.Status()
	snap.Notes = b.Notes()
	snap.Price = b.Price()
	return nil
}

func (r *fakeBookingRepo) SoftDelete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	snap, ok := r.state.bookings[id]
	if !ok || snap.Deleted {
		return notFound("booking")
	}
	snap.Deleted = true
	return nil
}

type fakeSlotRepo struct {
	state *fakeState
}

func (r *fakeSlotRepo) Ensure(_ context.Context, _ db.DBTX, key booking.SlotKey) error {
	if _, ok := r.state.slots[key]; !ok {
		r.state.slots[key] = &fakeSlot{id: uuid.New()}
	}
	return nil
}

func (r *fakeSlotRepo) TryReserve(_ context.Context, _ db.DBTX, key booking.SlotKey) (bool, error) {
	slot, ok := r.state.slots[key]
	if !ok || slot.isBooked {
		return false, nil
	}
	slot.isBooked = true
	return true, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, _ db.DBTX, key booking.SlotKey) error {
	if slot, ok := r.state.slots[key]; ok {
		slot.isBooked = false
	}
	return nil
}

func (r *fakeSlotRepo) Insert(_ context.Context, _ db.DBTX, key booking.SlotKey, isBooked bool) (uuid.UUID, error) {
	if _, ok := r.state.slots[key]; ok {
		return uuid.Nil, infra.WrapRepoErr("slot exists", errs.New("duplicate"), infra.KindDuplicateKey)
	}
	slot := &fakeSlot{id: uuid.New(), isBooked: isBooked}
	r.state.slots[key] = slot
	return slot.id, nil
}

func (r *fakeSlotRepo) UpdateKey(_ context.Context, _ db.DBTX, id uuid.UUID, key booking.SlotKey) error {
	if existing, ok := r.state.slots[key]; ok && existing.id != id {
		return infra.WrapRepoErr("slot exists", errs.New("duplicate"), infra.KindDuplicateKey)
	}
	for oldKey, slot := range r.state.slots {
		if slot.id == id {
			delete(r.state.slots, oldKey)
			r.state.slots[key] = slot
			return nil
		}
	}
	return notFound("slot")
}

func (r *fakeSlotRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	for key, slot := range r.state.slots {
		if slot.id == id {
			delete(r.state.slots, key)
			return nil
		}
	}
	return notFound("slot")
}

type fakeRateRepo struct {
	state *fakeState
}

func (r *fakeRateRepo) Create(_ context.Context, _ db.DBTX, rt *rate.Rate) (uuid.UUID, error) {
	for _, snap := range r.state.rates {
		if !snap.Deleted && snap.ServiceID == rt.ServiceID() && snap.UserID == rt.UserID() {
			return uuid.Nil, infra.WrapRepoErr("rate exists", errs.New("duplicate"), infra.KindDuplicateKey)
		}
	}
	r.state.rates[rt.ID()] = &shared.RateSnapshot{
		ID:        rt.ID(),
		ServiceID: rt.ServiceID(),
		UserID:    rt.UserID(),
		Rating:    rt.Rating().Value(),
	}
	return rt.ID(), nil
}

func (r *fakeRateRepo) UpdateRating(_ context.Context, _ db.DBTX, id uuid.UUID, rating int) error {
	snap, ok := r.state.rates[id]
	if !ok || snap.Deleted {
		return notFound("rate")
	}
	snap.Rating = rating
	return nil
}

func (r *fakeRateRepo) SoftDelete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	snap, ok := r.state.rates[id]
	if !ok || snap.Deleted {
		return notFound("rate")
	}
	snap.Deleted = true
	return nil
}

type fakeServiceRepo struct {
	state *fakeState
}

func (r *fakeServiceRepo) Create(_ context.Context, _ db.DBTX, s *service.Service) (uuid.UUID, error) {
	r.state.services[s.ID()] = &shared.ServiceSnapshot{
		ID:          s.ID(),
		Name:        s.Name(),
		Description: s.Description(),
		Category:    s.Category(),
		Location:    s.Location(),
		Price:       s.Price(),
		IsActive:    s.IsActive(),
		AuthorID:    s.AuthorID(),
		CreatedAt:   s.CreatedAt(),
	}
	return s.ID(), nil
}

func (r *fakeServiceRepo) Update(_ context.Context, _ db.DBTX, s *service.Service) error {
	snap, ok := r.state.services[s.ID()]
	if !ok || snap.Deleted {
		return notFound("service")
	}
	snap.Name = s.Name()
	snap.Description = s.Description()
	snap.Category = s.Category()
	snap.Location = s.Location()
	snap.Price = s.Price()
	snap.IsActive = s.IsActive()
	return nil
}

func (r *fakeServiceRepo) SoftDelete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	snap, ok := r.state.services[id]
	if !ok || snap.Deleted {
		return notFound("service")
	}
	snap.Deleted = true
	snap.IsActive = false
	return nil
}

type fakeUserRepo struct{}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}
