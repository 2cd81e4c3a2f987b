//go:build unit

package service_test

import (
	"strings"
	"testing"

	"slotmarket/internal/domain/service"
	"slotmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewServiceBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.True(t, actual.IsActive())
		assert.False(t, actual.IsDeleted())
		assert.True(t, actual.Bookable())
		assert.Equal(t, "45.00", actual.Price().StringFixed(2))
	})

	t.Run("name validation", func(t *testing.T) {
		tests := []struct {
			name  string
			value string
			errIs error
		}{
			{name: "empty name", value: "", errIs: service.ErrEmptyName},
			{name: "whitespace only name", value: "   ", errIs: service.ErrEmptyName},
			{name: "maximum length name", value: strings.Repeat("a", service.MaxNameLength)},
			{name: "name too long", value: strings.Repeat("a", service.MaxNameLength+1), errIs: service.ErrNameTooLong},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := builder.NewServiceBuilder().WithName(tt.value).BuildDomain()
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("name is trimmed", func(t *testing.T) {
		svc, err := builder.NewServiceBuilder().WithName("  Hot Stone Massage  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Hot Stone Massage", svc.Name())
	})

	t.Run("price validation", func(t *testing.T) {
		_, err := builder.NewServiceBuilder().
			WithPrice(decimal.RequireFromString("-0.01")).
			BuildDomain()
		assert.ErrorIs(t, err, service.ErrNegativePrice)

		_, err = builder.NewServiceBuilder().
			WithPrice(decimal.Zero).
			BuildDomain()
		assert.NoError(t, err)
	})
}

func TestBookable(t *testing.T) {
	b := builder.NewServiceBuilder()
	svc, err := b.BuildDomain()
	require.NoError(t, err)

	inactive := service.Reconstruct(
		svc.ID(), svc.Name(), svc.Description(), svc.Category(), svc.Location(),
		svc.Price(), false, false, svc.AuthorID(), svc.CreatedAt(), svc.UpdatedAt(),
	)
	assert.False(t, inactive.Bookable())

	deleted := service.Reconstruct(
		svc.ID(), svc.Name(), svc.Description(), svc.Category(), svc.Location(),
		svc.Price(), true, true, svc.AuthorID(), svc.CreatedAt(), svc.UpdatedAt(),
	)
	assert.False(t, deleted.Bookable())
}
