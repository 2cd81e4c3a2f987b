//go:build unit

package rate_test

import (
	"testing"

	"slotmarket/internal/domain/rate"
	"slotmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRate(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewRateBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.False(t, actual.IsDeleted())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("rating validation", func(t *testing.T) {
		tests := []struct {
			name   string
			rating int
			errIs  error
		}{
			{name: "below minimum rating", rating: 0, errIs: rate.ErrInvalidRating},
			{name: "minimum valid rating", rating: 1},
			{name: "maximum valid rating", rating: 5},
			{name: "above maximum rating", rating: 6, errIs: rate.ErrInvalidRating},
			{name: "negative rating", rating: -1, errIs: rate.ErrInvalidRating},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := builder.NewRateBuilder().WithRating(tt.rating).BuildDomain()
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestReconstructRejectsCorruptRating(t *testing.T) {
	b := builder.NewRateBuilder()
	_, err := rate.Reconstruct(uuid.New(), b.ServiceID, b.UserID, 9, false, b.CreatedAt, b.CreatedAt)
	assert.ErrorIs(t, err, rate.ErrInvalidRating)
}
