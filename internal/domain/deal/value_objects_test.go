//go:build unit

package deal_test

import (
	"testing"
	"time"

	"dealspot/internal/domain/deal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i32(v int32) *int32     { return &v }
func tp(t time.Time) *time.Time {
	return &t
}

func TestNewDiscount(t *testing.T) {
	tests := []struct {
		name    string
		kind    deal.DiscountKind
		value   *float64
		wantErr error
	}{
		{name: "percent with valid value", kind: deal.DiscountPercent, value: f64(20)},
		{name: "percent at upper bound", kind: deal.DiscountPercent, value: f64(100)},
		{name: "percent over 100 rejected", kind: deal.DiscountPercent, value: f64(101), wantErr: deal.ErrInvalidDiscountValue},
		{name: "percent without value rejected", kind: deal.DiscountPercent, wantErr: deal.ErrInvalidDiscountValue},
		{name: "percent zero rejected", kind: deal.DiscountPercent, value: f64(0), wantErr: deal.ErrInvalidDiscountValue},
		{name: "fixed amount with valid value", kind: deal.DiscountFixedAmount, value: f64(500)},
		{name: "fixed amount negative rejected", kind: deal.DiscountFixedAmount, value: f64(-1), wantErr: deal.ErrInvalidDiscountValue},
		{name: "bogo needs no value", kind: deal.DiscountBOGO},
		{name: "free item needs no value", kind: deal.DiscountFreeItem},
		{name: "unknown kind rejected", kind: deal.DiscountKind("half_price"), wantErr: deal.ErrInvalidDiscountKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := deal.NewDiscount(tt.kind, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind())
		})
	}

	t.Run("value dropped for kinds that carry none", func(t *testing.T) {
		d, err := deal.NewDiscount(deal.DiscountBOGO, f64(50))
		require.NoError(t, err)
		assert.Nil(t, d.Value())
	})
}

func TestNewQuotaPolicy(t *testing.T) {
	t.Run("zero per-user cap defaults to one", func(t *testing.T) {
		p, err := deal.NewQuotaPolicy(nil, 0, deal.FrequencyUnlimited, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(1), p.MaxPerUser())
	})

	t.Run("custom frequency requires days", func(t *testing.T) {
		_, err := deal.NewQuotaPolicy(nil, 1, deal.FrequencyCustom, nil, nil)
		assert.ErrorIs(t, err, deal.ErrMissingCustomDays)

		_, err = deal.NewQuotaPolicy(nil, 1, deal.FrequencyCustom, i32(0), nil)
		assert.ErrorIs(t, err, deal.ErrMissingCustomDays)
	})

	t.Run("custom days cleared for non-custom frequency", func(t *testing.T) {
		p, err := deal.NewQuotaPolicy(nil, 1, deal.FrequencyWeekly, i32(3), nil)
		require.NoError(t, err)
		assert.Nil(t, p.CustomDays())
	})

	t.Run("non-positive limits rejected", func(t *testing.T) {
		_, err := deal.NewQuotaPolicy(i32(0), 1, deal.FrequencyUnlimited, nil, nil)
		assert.ErrorIs(t, err, deal.ErrInvalidQuota)

		_, err = deal.NewQuotaPolicy(nil, -1, deal.FrequencyUnlimited, nil, nil)
		assert.ErrorIs(t, err, deal.ErrInvalidQuota)

		_, err = deal.NewQuotaPolicy(nil, 1, deal.FrequencyUnspecified, nil, i32(-5))
		assert.ErrorIs(t, err, deal.ErrInvalidQuota)
	})
}

func TestQuotaPolicyEffectiveMaxPerUser(t *testing.T) {
	t.Run("once caps per-user at one regardless of stored cap", func(t *testing.T) {
		p, err := deal.NewQuotaPolicy(nil, 5, deal.FrequencyOnce, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(1), p.EffectiveMaxPerUser())
	})

	t.Run("other frequencies keep the stored cap", func(t *testing.T) {
		p, err := deal.NewQuotaPolicy(nil, 5, deal.FrequencyWeekly, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(5), p.EffectiveMaxPerUser())
	})
}

func TestQuotaPolicyRequiredGap(t *testing.T) {
	day := 24 * time.Hour

	tests := []struct {
		name          string
		frequency     deal.Frequency
		customDays    *int32
		cooldownHours *int32
		want          time.Duration
		wantErr       error
	}{
		{name: "once has no gap", frequency: deal.FrequencyOnce, want: 0},
		{name: "unlimited has no gap", frequency: deal.FrequencyUnlimited, want: 0},
		{name: "weekly is seven days", frequency: deal.FrequencyWeekly, want: 7 * day},
		{name: "monthly is a fixed thirty days", frequency: deal.FrequencyMonthly, want: 30 * day},
		{name: "custom uses its day count", frequency: deal.FrequencyCustom, customDays: i32(3), want: 3 * day},
		{name: "custom without days fails", frequency: deal.FrequencyCustom, wantErr: deal.ErrMissingCustomDays},
		{name: "legacy rows fall back to cooldown hours", frequency: deal.FrequencyUnspecified, cooldownHours: i32(48), want: 48 * time.Hour},
		{name: "legacy rows without cooldown have no gap", frequency: deal.FrequencyUnspecified, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := deal.ReconstructQuotaPolicy(nil, 1, tt.frequency, tt.customDays, tt.cooldownHours)
			gap, err := p.RequiredGap()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, gap)
		})
	}

	t.Run("named frequency wins over legacy cooldown hours", func(t *testing.T) {
		p := deal.ReconstructQuotaPolicy(nil, 1, deal.FrequencyWeekly, nil, i32(2))
		gap, err := p.RequiredGap()
		require.NoError(t, err)
		assert.Equal(t, 7*day, gap)
	})
}

func TestValidityWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("start after end rejected", func(t *testing.T) {
		_, err := deal.NewValidityWindow(tp(now.Add(time.Hour)), tp(now))
		assert.ErrorIs(t, err, deal.ErrInvalidWindow)
	})

	t.Run("unbounded window contains everything", func(t *testing.T) {
		w, err := deal.NewValidityWindow(nil, nil)
		require.NoError(t, err)
		assert.True(t, w.Contains(now))
		assert.False(t, w.EndedBefore(now))
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		w, err := deal.NewValidityWindow(tp(now), tp(now.Add(time.Hour)))
		require.NoError(t, err)
		assert.True(t, w.Contains(now))
		assert.True(t, w.Contains(now.Add(time.Hour)))
		assert.False(t, w.Contains(now.Add(-time.Second)))
		assert.False(t, w.Contains(now.Add(time.Hour+time.Second)))
	})

	t.Run("ended window reports as ended", func(t *testing.T) {
		w, err := deal.NewValidityWindow(nil, tp(now.Add(-time.Minute)))
		require.NoError(t, err)
		assert.True(t, w.EndedBefore(now))
	})
}

func TestReconcileTier(t *testing.T) {
	tests := []struct {
		name       string
		tier       string
		passLocked bool
		want       deal.Tier
	}{
		{name: "valid tier string wins", tier: "member", passLocked: false, want: deal.TierMember},
		{name: "valid standard tier wins over flag", tier: "standard", passLocked: true, want: deal.TierStandard},
		{name: "empty tier defers to locked flag", tier: "", passLocked: true, want: deal.TierMember},
		{name: "empty tier and unlocked flag is standard", tier: "", passLocked: false, want: deal.TierStandard},
		{name: "garbage tier defers to flag", tier: "gold", passLocked: true, want: deal.TierMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deal.ReconcileTier(tt.tier, tt.passLocked))
		})
	}
}
