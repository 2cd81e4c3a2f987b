//go:build unit

package queries_test

import (
	"encoding/base64"
	"testing"
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	id := uuid.New()
	ts := time.Date(2026, 3, 15, 10, 0, 0, 123456000, time.UTC)

	cursor := queries.EncodeAfterCursor(ts, id)
	gotTime, gotID, err := queries.DecodeAfterCursor(cursor)
	require.NoError(t, err)

	assert.Equal(t, ts.UnixMicro(), gotTime.UnixMicro())
	assert.Equal(t, id, gotID)
}

func TestDecodeAfterCursorRejects(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "%%%"},
		{name: "wrong version", cursor: base64.URLEncoding.EncodeToString([]byte("v2:123-" + uuid.NewString()))},
		{name: "missing separator", cursor: base64.URLEncoding.EncodeToString([]byte("v1:123456"))},
		{name: "bad timestamp", cursor: base64.URLEncoding.EncodeToString([]byte("v1:abc-" + uuid.NewString()))},
		{name: "bad uuid", cursor: base64.URLEncoding.EncodeToString([]byte("v1:123-not-a-uuid"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tt.cursor)
			assert.Error(t, err)
		})
	}
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, queries.ValidateLimit(0))
	assert.Equal(t, 20, queries.ValidateLimit(-5))
	assert.Equal(t, 50, queries.ValidateLimit(50))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(queries.MaxListLimit+1))
}
