//go:build unit

package redemption_test

import (
	"testing"
	"time"

	"dealspot/internal/domain/redemption"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedemption(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to active with in_app source", func(t *testing.T) {
		r := redemption.NewRedemption(uuid.New(), uuid.New(), uuid.New(), "", now)
		assert.Equal(t, redemption.StatusRedeemed, r.Status())
		assert.True(t, r.IsActive())
		assert.Equal(t, redemption.DefaultSource, r.Source())
		assert.Equal(t, now, r.RedeemedAt())
		assert.Nil(t, r.VoidedAt())
	})

	t.Run("source whitespace trimmed", func(t *testing.T) {
		r := redemption.NewRedemption(uuid.New(), uuid.New(), uuid.New(), "  qr_scan  ", now)
		assert.Equal(t, "qr_scan", r.Source())
	})
}

func TestRedemptionVoid(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	voidAt := now.Add(time.Hour)

	t.Run("void stops the row counting", func(t *testing.T) {
		r := redemption.NewRedemption(uuid.New(), uuid.New(), uuid.New(), "", now)
		require.NoError(t, r.Void("customer returned item", voidAt))
		assert.Equal(t, redemption.StatusVoided, r.Status())
		assert.False(t, r.IsActive())
		require.NotNil(t, r.VoidedAt())
		assert.Equal(t, voidAt, *r.VoidedAt())
		require.NotNil(t, r.VoidReason())
		assert.Equal(t, "customer returned item", *r.VoidReason())
	})

	t.Run("voiding twice fails", func(t *testing.T) {
		r := redemption.NewRedemption(uuid.New(), uuid.New(), uuid.New(), "", now)
		require.NoError(t, r.Void("mistake", voidAt))
		assert.ErrorIs(t, r.Void("again", voidAt.Add(time.Hour)), redemption.ErrAlreadyVoided)
		assert.Equal(t, voidAt, *r.VoidedAt())
	})

	t.Run("blank reason rejected", func(t *testing.T) {
		r := redemption.NewRedemption(uuid.New(), uuid.New(), uuid.New(), "", now)
		assert.ErrorIs(t, r.Void("   ", voidAt), redemption.ErrVoidReasonNeeded)
		assert.True(t, r.IsActive())
	})
}

func TestNewStatus(t *testing.T) {
	s, err := redemption.NewStatus("redeemed")
	require.NoError(t, err)
	assert.Equal(t, redemption.StatusRedeemed, s)

	_, err = redemption.NewStatus("cancelled")
	assert.ErrorIs(t, err, redemption.ErrInvalidStatus)
}
