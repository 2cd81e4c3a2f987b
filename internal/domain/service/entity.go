package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("service name cannot be empty")
	ErrNameTooLong   = errors.New("service name exceeds maximum length")
	ErrNegativePrice = errors.New("price must be a positive number")
)

const MaxNameLength = 255

type Service struct {
	id          uuid.UUID
	name        string
	description string
	category    string
	location    string
	price       decimal.Decimal
	isActive    bool
	deleted     bool
	authorID    uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewService(name, description, category, location string, price decimal.Decimal, authorID uuid.UUID, now time.Time) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return nil, ErrNameTooLong
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}

	return &Service{
		id:          uuid.New(),
		name:        name,
		description: description,
		category:    category,
		location:    location,
		price:       price,
		isActive:    true,
		authorID:    authorID,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name, description, category, location string,
	price decimal.Decimal,
	isActive, deleted bool,
	authorID uuid.UUID,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		location:    location,
		price:       price,
		isActive:    isActive,
		deleted:     deleted,
		authorID:    authorID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) Name() string           { return s.name }
func (s *Service) Description() string    { return s.description }
func (s *Service) Category() string       { return s.category }
func (s *Service) Location() string       { return s.location }
func (s *Service) Price() decimal.Decimal { return s.price }
func (s *Service) IsActive() bool         { return s.isActive }
func (s *Service) IsDeleted() bool        { return s.deleted }
func (s *Service) AuthorID() uuid.UUID    { return s.authorID }
func (s *Service) CreatedAt() time.Time   { return s.createdAt }
func (s *Service) UpdatedAt() time.Time   { return s.updatedAt }

// Bookable reports whether the service can accept new bookings.
func (s *Service) Bookable() bool {
	return !s.deleted && s.isActive
}
