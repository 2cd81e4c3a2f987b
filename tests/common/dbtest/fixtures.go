//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"slotmarket/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) WHERE NOT deleted DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND NOT deleted", email).Scan(&userID)
	}

	return userID
}

func CreateTestService(t *testing.T, db DBLike, name, price string, authorID uuid.UUID) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO services (id, name, price, author_id) VALUES ($1, $2, $3, $4) ON CONFLICT (name) WHERE NOT deleted DO NOTHING",
		serviceID, name, price, authorID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM services WHERE name = $1 AND NOT deleted", name).Scan(&serviceID)
	}

	return serviceID
}

func CreateTestSlot(t *testing.T, db DBLike, key booking.SlotKey, isBooked bool) uuid.UUID {
	t.Helper()

	slotID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO slots (id, service_id, date, time, is_booked) VALUES ($1, $2, $3, $4, $5)",
		slotID, key.ServiceID, key.Date.Time(), timeColumn(key.Time), isBooked)
	require.NoError(t, err)

	return slotID
}

func CreateTestBooking(t *testing.T, db DBLike, key booking.SlotKey, userID uuid.UUID, status, price string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO bookings (id, service_id, user_id, date, time, status, price) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		bookingID, key.ServiceID, userID, key.Date.Time(), timeColumn(key.Time), status, price)
	require.NoError(t, err)

	return bookingID
}

func CreateTestRate(t *testing.T, db DBLike, serviceID, userID uuid.UUID, rating int) uuid.UUID {
	t.Helper()

	rateID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO rates (id, service_id, user_id, rating) VALUES ($1, $2, $3, $4)",
		rateID, serviceID, userID, rating)
	require.NoError(t, err)

	return rateID
}

func timeColumn(t booking.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between subtests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
