//go:build unit

package deal_test

import (
	"testing"
	"time"

	"dealspot/internal/domain/deal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestDraft(t *testing.T) *deal.Deal {
	t.Helper()

	discount, err := deal.NewDiscount(deal.DiscountPercent, f64(20))
	require.NoError(t, err)
	window, err := deal.NewValidityWindow(nil, nil)
	require.NoError(t, err)
	policy, err := deal.NewQuotaPolicy(nil, 1, deal.FrequencyOnce, nil, nil)
	require.NoError(t, err)

	d, err := deal.NewDraft(uuid.New(), deal.Content{
		Title:       "Lunch special",
		Description: "20% off any lunch set",
		Category:    "food",
		City:        "portland",
	}, discount, deal.TierStandard, window, policy, testNow)
	require.NoError(t, err)
	return d
}

func TestNewDraft(t *testing.T) {
	t.Run("starts in draft and inactive", func(t *testing.T) {
		d := newTestDraft(t)
		assert.Equal(t, deal.StatusDraft, d.Status())
		assert.False(t, d.IsActive())
		assert.False(t, d.IsDeleted())
	})

	t.Run("member tier sets the legacy locked flag", func(t *testing.T) {
		discount, err := deal.NewDiscount(deal.DiscountBOGO, nil)
		require.NoError(t, err)
		window, _ := deal.NewValidityWindow(nil, nil)
		policy, err := deal.NewQuotaPolicy(nil, 1, deal.FrequencyUnlimited, nil, nil)
		require.NoError(t, err)

		d, err := deal.NewDraft(uuid.New(), deal.Content{Title: "t", Description: "d"}, discount, deal.TierMember, window, policy, testNow)
		require.NoError(t, err)
		assert.True(t, d.IsPassLocked())
	})

	t.Run("content whitespace trimmed", func(t *testing.T) {
		discount, _ := deal.NewDiscount(deal.DiscountBOGO, nil)
		window, _ := deal.NewValidityWindow(nil, nil)
		policy, _ := deal.NewQuotaPolicy(nil, 1, deal.FrequencyUnlimited, nil, nil)

		d, err := deal.NewDraft(uuid.New(), deal.Content{Title: "  Two for one  ", Description: " desc "}, discount, deal.TierStandard, window, policy, testNow)
		require.NoError(t, err)
		assert.Equal(t, "Two for one", d.Title())
		assert.Equal(t, "desc", d.Description())
	})
}

func TestDealPublish(t *testing.T) {
	later := testNow.Add(time.Hour)

	t.Run("draft publishes", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		assert.Equal(t, deal.StatusPublished, d.Status())
		assert.True(t, d.IsActive())
		assert.Equal(t, later, d.UpdatedAt())
	})

	t.Run("publishing twice is a no-op", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Publish(later.Add(time.Hour)))
		assert.Equal(t, later, d.UpdatedAt())
	})

	t.Run("paused deal republishes", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Pause(later))
		require.NoError(t, d.Publish(later))
		assert.Equal(t, deal.StatusPublished, d.Status())
	})

	t.Run("expired deal cannot republish", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Expire(later))
		assert.ErrorIs(t, d.Publish(later), deal.ErrDealExpired)
	})

	t.Run("deleted deal cannot publish", func(t *testing.T) {
		d := newTestDraft(t)
		d.SoftDelete(later)
		assert.ErrorIs(t, d.Publish(later), deal.ErrDealDeleted)
	})

	t.Run("blank title blocks publication", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.UpdateContent(deal.Content{Title: "  ", Description: "d"}, testNow))
		assert.ErrorIs(t, d.Publish(later), deal.ErrTitleRequired)
	})

	t.Run("blank description blocks publication", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.UpdateContent(deal.Content{Title: "t", Description: ""}, testNow))
		assert.ErrorIs(t, d.Publish(later), deal.ErrDescriptionRequired)
	})

	t.Run("misconfigured policy blocks publication", func(t *testing.T) {
		d := reconstructTestDeal(t, func(s *deal.State) {
			s.Status = "draft"
			s.Frequency = "custom"
			s.CustomDays = nil
		})
		assert.ErrorIs(t, d.Publish(later), deal.ErrMissingCustomDays)
	})
}

func TestDealPauseAndExpire(t *testing.T) {
	later := testNow.Add(time.Hour)

	t.Run("pause is idempotent", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Pause(later))
		require.NoError(t, d.Pause(later.Add(time.Hour)))
		assert.Equal(t, deal.StatusPaused, d.Status())
		assert.Equal(t, later, d.UpdatedAt())
	})

	t.Run("draft cannot pause", func(t *testing.T) {
		d := newTestDraft(t)
		assert.ErrorIs(t, d.Pause(later), deal.ErrDealNotPublishable)
	})

	t.Run("expire is terminal and idempotent", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Expire(later))
		require.NoError(t, d.Expire(later.Add(time.Hour)))
		assert.Equal(t, deal.StatusExpired, d.Status())
		assert.False(t, d.IsActive())
	})

	t.Run("paused deal can expire", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.Pause(later))
		require.NoError(t, d.Expire(later))
		assert.Equal(t, deal.StatusExpired, d.Status())
	})

	t.Run("draft cannot expire", func(t *testing.T) {
		d := newTestDraft(t)
		assert.ErrorIs(t, d.Expire(later), deal.ErrDealNotPublishable)
	})
}

func TestDealSoftDelete(t *testing.T) {
	later := testNow.Add(time.Hour)

	d := newTestDraft(t)
	d.SoftDelete(later)
	require.True(t, d.IsDeleted())
	require.NotNil(t, d.DeletedAt())
	assert.Equal(t, later, *d.DeletedAt())

	// Repeated delete keeps the original timestamp.
	d.SoftDelete(later.Add(time.Hour))
	assert.Equal(t, later, *d.DeletedAt())

	assert.ErrorIs(t, d.UpdateContent(deal.Content{Title: "t", Description: "d"}, later), deal.ErrDealDeleted)
	assert.ErrorIs(t, d.Expire(later), deal.ErrDealDeleted)
}

func TestDealSetTier(t *testing.T) {
	d := newTestDraft(t)
	require.NoError(t, d.SetTier(deal.TierMember, testNow))
	assert.Equal(t, deal.TierMember, d.Tier())
	assert.True(t, d.IsPassLocked())

	require.NoError(t, d.SetTier(deal.TierStandard, testNow))
	assert.False(t, d.IsPassLocked())

	assert.ErrorIs(t, d.SetTier(deal.Tier("vip"), testNow), deal.ErrInvalidTier)
}

func TestDealUpdatePolicy(t *testing.T) {
	later := testNow.Add(time.Hour)
	badPolicy := deal.ReconstructQuotaPolicy(nil, 1, deal.FrequencyCustom, nil, nil)
	goodPolicy, err := deal.NewQuotaPolicy(nil, 2, deal.FrequencyWeekly, nil, nil)
	require.NoError(t, err)

	t.Run("published deal rejects an invalid policy", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		assert.ErrorIs(t, d.UpdatePolicy(badPolicy, later), deal.ErrMissingCustomDays)
	})

	t.Run("draft tolerates an invalid policy until publication", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.UpdatePolicy(badPolicy, later))
		assert.ErrorIs(t, d.Publish(later), deal.ErrMissingCustomDays)
	})

	t.Run("valid policy applies", func(t *testing.T) {
		d := newTestDraft(t)
		require.NoError(t, d.Publish(later))
		require.NoError(t, d.UpdatePolicy(goodPolicy, later))
		assert.Equal(t, int32(2), d.Policy().MaxPerUser())
	})
}

func reconstructTestDeal(t *testing.T, mutate func(*deal.State)) *deal.Deal {
	t.Helper()

	s := deal.State{
		ID:           uuid.New(),
		VendorID:     uuid.New(),
		Title:        "Lunch special",
		Description:  "20% off any lunch set",
		Category:     "food",
		City:         "portland",
		DiscountKind: "percent",
		DiscountValue: func() *float64 {
			v := 20.0
			return &v
		}(),
		Tier:       "standard",
		Status:     "published",
		IsActive:   true,
		MaxPerUser: 1,
		Frequency:  "once",
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
	}
	if mutate != nil {
		mutate(&s)
	}
	d, err := deal.Reconstruct(s)
	require.NoError(t, err)
	return d
}

func TestReconstruct(t *testing.T) {
	t.Run("legacy locked flag without tier string resolves to member", func(t *testing.T) {
		d := reconstructTestDeal(t, func(s *deal.State) {
			s.Tier = ""
			s.IsPassLocked = true
		})
		assert.Equal(t, deal.TierMember, d.Tier())
		assert.True(t, d.IsPassLocked())
	})

	t.Run("active flag derives from status", func(t *testing.T) {
		d := reconstructTestDeal(t, func(s *deal.State) {
			s.Status = "paused"
			s.IsActive = true
		})
		assert.False(t, d.IsActive())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		s := deal.State{Status: "archived", DiscountKind: "percent", Frequency: "once"}
		_, err := deal.Reconstruct(s)
		assert.ErrorIs(t, err, deal.ErrInvalidStatus)
	})

	t.Run("misconfigured custom policy survives rehydration", func(t *testing.T) {
		d := reconstructTestDeal(t, func(s *deal.State) {
			s.Frequency = "custom"
			s.CustomDays = nil
		})
		_, err := d.Policy().RequiredGap()
		assert.ErrorIs(t, err, deal.ErrMissingCustomDays)
	})
}
