package deal

// Status is the publication lifecycle of a deal. A deal starts in draft,
// moves between published and paused, and ends in expired. Expired is
// terminal; nothing ever re-enters draft.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusPaused    Status = "paused"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusPaused, StatusExpired:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

type DiscountKind string

const (
	DiscountPercent     DiscountKind = "percent"
	DiscountFixedAmount DiscountKind = "fixed_amount"
	DiscountBOGO        DiscountKind = "bogo"
	DiscountFreeItem    DiscountKind = "free_item"
	DiscountOther       DiscountKind = "other"
)

func (k DiscountKind) String() string {
	return string(k)
}

func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountPercent, DiscountFixedAmount, DiscountBOGO, DiscountFreeItem, DiscountOther:
		return true
	default:
		return false
	}
}

// RequiresValue reports whether the numeric discount value is meaningful
// for this kind.
func (k DiscountKind) RequiresValue() bool {
	return k == DiscountPercent || k == DiscountFixedAmount
}

func NewDiscountKind(s string) (DiscountKind, error) {
	kind := DiscountKind(s)
	if !kind.IsValid() {
		return "", ErrInvalidDiscountKind
	}
	return kind, nil
}

// Tier gates who may redeem a deal. Member-tier deals require an active
// paid membership.
type Tier string

const (
	TierStandard Tier = "standard"
	TierMember   Tier = "member"
)

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	return t == TierStandard || t == TierMember
}

func NewTier(s string) (Tier, error) {
	tier := Tier(s)
	if !tier.IsValid() {
		return "", ErrInvalidTier
	}
	return tier, nil
}

// ReconcileTier resolves the canonical tier from legacy rows that may carry
// only the boolean pass-locked flag. A valid tier string wins; otherwise the
// flag decides.
func ReconcileTier(tier string, passLocked bool) Tier {
	if t := Tier(tier); t.IsValid() {
		return t
	}
	if passLocked {
		return TierMember
	}
	return TierStandard
}

// Frequency governs how soon the same user may redeem a deal again.
// FrequencyUnspecified marks legacy rows that predate the field; for those
// the legacy cooldown-hours column applies instead.
type Frequency string

const (
	FrequencyUnspecified Frequency = ""
	FrequencyOnce        Frequency = "once"
	FrequencyWeekly      Frequency = "weekly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyUnlimited   Frequency = "unlimited"
	FrequencyCustom      Frequency = "custom"
)

func (f Frequency) String() string {
	return string(f)
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyUnspecified, FrequencyOnce, FrequencyWeekly, FrequencyMonthly, FrequencyUnlimited, FrequencyCustom:
		return true
	default:
		return false
	}
}

func NewFrequency(s string) (Frequency, error) {
	freq := Frequency(s)
	if !freq.IsValid() {
		return "", ErrInvalidFrequency
	}
	return freq, nil
}
