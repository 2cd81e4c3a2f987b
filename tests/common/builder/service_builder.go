//go:build unit || e2e

package builder

import (
	"time"

	domservice "slotmarket/internal/domain/service"
	reqdto "slotmarket/internal/handler/dto/request"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ServiceBuilder struct {
	Name        string
	Description string
	Category    string
	Location    string
	Price       decimal.Decimal
	IsActive    bool
	AuthorID    uuid.UUID
	CreatedAt   time.Time
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		Name:        "Morning Yoga Class",
		Description: "A 60 minute group session",
		Category:    "fitness",
		Location:    "Studio 3",
		Price:       decimal.RequireFromString("45.00"),
		IsActive:    true,
		AuthorID:    uuid.New(),
		CreatedAt:   time.Now(),
	}
}

func (s *ServiceBuilder) BuildDomain() (*domservice.Service, error) {
	return domservice.NewService(s.Name, s.Description, s.Category, s.Location, s.Price, s.AuthorID, s.CreatedAt)
}

func (s *ServiceBuilder) BuildCreateRequestDTO() reqdto.CreateServiceRequest {
	return reqdto.CreateServiceRequest{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Location:    s.Location,
		Price:       s.Price.StringFixed(2),
	}
}

func (s *ServiceBuilder) BuildViewQuery() *queries.ServiceView {
	return &queries.ServiceView{
		ID:          uuid.New(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Location:    s.Location,
		Price:       s.Price.StringFixed(2),
		IsActive:    s.IsActive,
		AuthorID:    s.AuthorID,
		AvgRating:   "0.00",
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.CreatedAt,
	}
}

func (s *ServiceBuilder) BuildListItem() *queries.ServiceListItem {
	return &queries.ServiceListItem{
		ID:        uuid.New(),
		Name:      s.Name,
		Category:  s.Category,
		Location:  s.Location,
		Price:     s.Price.StringFixed(2),
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
	}
}

func (s *ServiceBuilder) BuildSnapshot() *shared.ServiceSnapshot {
	return &shared.ServiceSnapshot{
		ID:          uuid.New(),
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Location:    s.Location,
		Price:       s.Price,
		IsActive:    s.IsActive,
		AuthorID:    s.AuthorID,
		CreatedAt:   s.CreatedAt,
	}
}

func (s *ServiceBuilder) WithName(name string) *ServiceBuilder {
	s.Name = name
	return s
}

func (s *ServiceBuilder) WithPrice(price decimal.Decimal) *ServiceBuilder {
	s.Price = price
	return s
}

func (s *ServiceBuilder) WithAuthorID(id uuid.UUID) *ServiceBuilder {
	s.AuthorID = id
	return s
}

func (s *ServiceBuilder) AsInactive() *ServiceBuilder {
	s.IsActive = false
	return s
}
