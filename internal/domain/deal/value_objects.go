package deal

import (
	"time"

	"dealspot/internal/pkg/errs"
)

var (
	ErrInvalidStatus        = errs.New("invalid deal status")
	ErrInvalidDiscountKind  = errs.New("invalid discount kind")
	ErrInvalidDiscountValue = errs.New("discount value must be positive for this discount kind")
	ErrInvalidTier          = errs.New("invalid deal tier")
	ErrInvalidFrequency     = errs.New("invalid redemption frequency")
	ErrInvalidQuota         = errs.New("quota limits must be positive")
	ErrMissingCustomDays    = errs.New("custom frequency requires custom redemption days")
	ErrInvalidWindow        = errs.New("validity window start must be before end")
)

type Discount struct {
	kind  DiscountKind
	value *float64
}

// NewDiscount validates the kind/value pair. Percent and fixed-amount kinds
// require a positive value (percent additionally capped at 100); the value is
// dropped for the other kinds where it carries no meaning.
func NewDiscount(kind DiscountKind, value *float64) (Discount, error) {
	if !kind.IsValid() {
		return Discount{}, ErrInvalidDiscountKind
	}
	if kind.RequiresValue() {
		if value == nil || *value <= 0 {
			return Discount{}, ErrInvalidDiscountValue
		}
		if kind == DiscountPercent && *value > 100 {
			return Discount{}, ErrInvalidDiscountValue
		}
		v := *value
		return Discount{kind: kind, value: &v}, nil
	}
	return Discount{kind: kind}, nil
}

func (d Discount) Kind() DiscountKind {
	return d.kind
}

func (d Discount) Value() *float64 {
	if d.value == nil {
		return nil
	}
	v := *d.value
	return &v
}

// ValidityWindow bounds when a deal is redeemable. A nil side is unbounded.
type ValidityWindow struct {
	startsAt *time.Time
	endsAt   *time.Time
}

func NewValidityWindow(startsAt, endsAt *time.Time) (ValidityWindow, error) {
	if startsAt != nil && endsAt != nil && startsAt.After(*endsAt) {
		return ValidityWindow{}, ErrInvalidWindow
	}
	return ValidityWindow{startsAt: startsAt, endsAt: endsAt}, nil
}

func (w ValidityWindow) StartsAt() *time.Time { return w.startsAt }
func (w ValidityWindow) EndsAt() *time.Time   { return w.endsAt }

func (w ValidityWindow) Contains(t time.Time) bool {
	if w.startsAt != nil && t.Before(*w.startsAt) {
		return false
	}
	if w.endsAt != nil && t.After(*w.endsAt) {
		return false
	}
	return true
}

func (w ValidityWindow) EndedBefore(t time.Time) bool {
	return w.endsAt != nil && t.After(*w.endsAt)
}

const (
	daysPerWeek = 7
	// The monthly gap is a fixed 30 days, not calendar-month arithmetic.
	daysPerMonth = 30
)

// QuotaPolicy bundles every limit on how often a deal may be redeemed.
type QuotaPolicy struct {
	maxTotal      *int32
	maxPerUser    int32
	frequency     Frequency
	customDays    *int32
	cooldownHours *int32
}

// NewQuotaPolicy normalizes and validates the policy fields. A zero
// maxPerUser falls back to the default of 1. The legacy cooldownHours column
// is carried only for rows that predate the frequency field; a named
// frequency always takes precedence over it.
func NewQuotaPolicy(maxTotal *int32, maxPerUser int32, frequency Frequency, customDays, cooldownHours *int32) (QuotaPolicy, error) {
	if !frequency.IsValid() {
		return QuotaPolicy{}, ErrInvalidFrequency
	}
	if maxTotal != nil && *maxTotal <= 0 {
		return QuotaPolicy{}, ErrInvalidQuota
	}
	if maxPerUser < 0 {
		return QuotaPolicy{}, ErrInvalidQuota
	}
	if maxPerUser == 0 {
		maxPerUser = 1
	}
	if frequency == FrequencyCustom && (customDays == nil || *customDays <= 0) {
		return QuotaPolicy{}, ErrMissingCustomDays
	}
	if frequency != FrequencyCustom {
		customDays = nil
	}
	if cooldownHours != nil && *cooldownHours < 0 {
		return QuotaPolicy{}, ErrInvalidQuota
	}
	return QuotaPolicy{
		maxTotal:      maxTotal,
		maxPerUser:    maxPerUser,
		frequency:     frequency,
		customDays:    customDays,
		cooldownHours: cooldownHours,
	}, nil
}

// ReconstructQuotaPolicy hydrates a policy from storage without the
// construction-time normalization, so pre-existing misconfigured rows
// survive the round trip and fail closed at evaluation instead of being
// silently repaired.
func ReconstructQuotaPolicy(maxTotal *int32, maxPerUser int32, frequency Frequency, customDays, cooldownHours *int32) QuotaPolicy {
	if maxPerUser <= 0 {
		maxPerUser = 1
	}
	return QuotaPolicy{
		maxTotal:      maxTotal,
		maxPerUser:    maxPerUser,
		frequency:     frequency,
		customDays:    customDays,
		cooldownHours: cooldownHours,
	}
}

func (p QuotaPolicy) MaxTotal() *int32      { return p.maxTotal }
func (p QuotaPolicy) MaxPerUser() int32     { return p.maxPerUser }
func (p QuotaPolicy) Frequency() Frequency  { return p.frequency }
func (p QuotaPolicy) CustomDays() *int32    { return p.customDays }
func (p QuotaPolicy) CooldownHours() *int32 { return p.cooldownHours }

// EffectiveMaxPerUser folds the `once` frequency into the per-user cap:
// once is equivalent to a cap of 1 and the stricter of the two applies.
func (p QuotaPolicy) EffectiveMaxPerUser() int32 {
	if p.frequency == FrequencyOnce && p.maxPerUser > 1 {
		return 1
	}
	return p.maxPerUser
}

// RequiredGap resolves the two cooldown representations into a single
// minimum gap between redemptions by the same user. This is the only place
// the legacy hours column and the named frequency are reconciled.
func (p QuotaPolicy) RequiredGap() (time.Duration, error) {
	switch p.frequency {
	case FrequencyOnce, FrequencyUnlimited:
		return 0, nil
	case FrequencyWeekly:
		return daysPerWeek * 24 * time.Hour, nil
	case FrequencyMonthly:
		return daysPerMonth * 24 * time.Hour, nil
	case FrequencyCustom:
		if p.customDays == nil || *p.customDays <= 0 {
			return 0, ErrMissingCustomDays
		}
		return time.Duration(*p.customDays) * 24 * time.Hour, nil
	case FrequencyUnspecified:
		if p.cooldownHours != nil {
			return time.Duration(*p.cooldownHours) * time.Hour, nil
		}
		return 0, nil
	default:
		return 0, ErrInvalidFrequency
	}
}

// Validate reports the configuration errors that must block publication.
func (p QuotaPolicy) Validate() error {
	_, err := p.RequiredGap()
	return err
}
