package request

import (
	"slotmarket/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Price       string `json:"price" binding:"required"`
}

func (r CreateServiceRequest) ToCommand() (commands.CreateServiceRequest, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return commands.CreateServiceRequest{}, err
	}
	return commands.CreateServiceRequest{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		Price:       price,
	}, nil
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	Price       *string `json:"price,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r UpdateServiceRequest) ToCommand() (commands.UpdateServiceRequest, error) {
	cmd := commands.UpdateServiceRequest{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		IsActive:    r.IsActive,
	}
	if r.Price != nil {
		price, err := decimal.NewFromString(*r.Price)
		if err != nil {
			return commands.UpdateServiceRequest{}, err
		}
		cmd.Price = &price
	}
	return cmd, nil
}
