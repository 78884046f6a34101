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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// marks a user's membership snapshot as active.
func ActivateMembership(t *testing.T, db DBLike, userID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, `
		INSERT INTO memberships (user_id, active, expires_at)
		VALUES ($1, true, now() + interval '30 days')
		ON CONFLICT (user_id) DO UPDATE SET active = true, expires_at = now() + interval '30 days'`,
		userID)
	require.NoError(t, err)
}

// inserts a published deal that is currently inside its validity window.
// maxTotal nil means unlimited global quota.
func CreateTestDeal(t *testing.T, db DBLike, vendorID uuid.UUID, title string, maxTotal *int32, maxPerUser int32, frequency string) uuid.UUID {
	t.Helper()

	dealID := uuid.New()
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := db.Exec(ctx, `
		INSERT INTO deals (
			id, vendor_id, title, description, category, city,
			discount_kind, discount_value, tier, is_pass_locked,
			status, is_active, starts_at, ends_at,
			max_redemptions_total, max_redemptions_per_user, redemption_frequency
		) VALUES (
			$1, $2, $3, 'e2e fixture', 'food', 'portland',
			'percent', 20, 'standard', false,
			'published', true, $4, $5,
			$6, $7, $8
		)`,
		dealID, vendorID, title, now.Add(-1*time.Hour), now.Add(24*time.Hour), maxTotal, maxPerUser, frequency)
	require.NoError(t, err)

	return dealID
}

// restricts an existing deal to active members.
func MakeDealMemberOnly(t *testing.T, db DBLike, dealID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx, "UPDATE deals SET tier = 'member', is_pass_locked = true WHERE id = $1", dealID)
	require.NoError(t, err)
}

// moves a deal's validity window wholly into the past.
func LapseDealWindow(t *testing.T, db DBLike, dealID uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE deals SET starts_at = now() - interval '48 hours', ends_at = now() - interval '1 hour' WHERE id = $1",
		dealID)
	require.NoError(t, err)
}

// reads the stored lifecycle status straight from the table, bypassing the
// read store's lazy-expiry view.
func DealStatus(t *testing.T, db DBLike, dealID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(),
		"SELECT status FROM deals WHERE id = $1", dealID).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountActiveRedemptions(t *testing.T, db DBLike, dealID uuid.UUID) int64 {
	t.Helper()

	var count int64
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM redemptions WHERE deal_id = $1 AND status = 'redeemed'", dealID).Scan(&count)
	require.NoError(t, err)
	return count
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a clean slate
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
