package request

import (
	"time"

	"dealspot/internal/domain/deal"

	"github.com/google/uuid"
)

type CreateDealRequest struct {
	Title                 string     `json:"title" binding:"required"`
	Description           string     `json:"description"`
	FinePrint             string     `json:"fine_print"`
	Category              string     `json:"category" binding:"required"`
	City                  string     `json:"city" binding:"required"`
	ImageURL              *string    `json:"image_url,omitempty"`
	DiscountKind          string     `json:"discount_kind" binding:"required"`
	DiscountValue         *float64   `json:"discount_value,omitempty"`
	Tier                  *string    `json:"tier,omitempty"`
	StartsAt              *time.Time `json:"starts_at,omitempty"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	MaxRedemptionsTotal   *int32     `json:"max_redemptions_total,omitempty"`
	MaxRedemptionsPerUser *int32     `json:"max_redemptions_per_user,omitempty"`
	RedemptionFrequency   *string    `json:"redemption_frequency,omitempty"`
	CustomRedemptionDays  *int32     `json:"custom_redemption_days,omitempty"`
	CooldownHours         *int32     `json:"cooldown_hours,omitempty"`
}

func (r CreateDealRequest) ToDomain(vendorID uuid.UUID, now time.Time) (*deal.Deal, error) {
	kind, err := deal.NewDiscountKind(r.DiscountKind)
	if err != nil {
		return nil, err
	}
	discount, err := deal.NewDiscount(kind, r.DiscountValue)
	if err != nil {
		return nil, err
	}

	tier := deal.TierStandard
	if r.Tier != nil {
		tier, err = deal.NewTier(*r.Tier)
		if err != nil {
			return nil, err
		}
	}

	window, err := deal.NewValidityWindow(r.StartsAt, r.EndsAt)
	if err != nil {
		return nil, err
	}

	freq := deal.FrequencyUnspecified
	if r.RedemptionFrequency != nil {
		freq, err = deal.NewFrequency(*r.RedemptionFrequency)
		if err != nil {
			return nil, err
		}
	}
	var maxPerUser int32
	if r.MaxRedemptionsPerUser != nil {
		maxPerUser = *r.MaxRedemptionsPerUser
	}
	policy, err := deal.NewQuotaPolicy(r.MaxRedemptionsTotal, maxPerUser, freq, r.CustomRedemptionDays, r.CooldownHours)
	if err != nil {
		return nil, err
	}

	content := deal.Content{
		Title:       r.Title,
		Description: r.Description,
		FinePrint:   r.FinePrint,
		Category:    r.Category,
		City:        r.City,
		ImageURL:    r.ImageURL,
	}
	return deal.NewDraft(vendorID, content, discount, tier, window, policy, now)
}

// UpdateDealRequest applies partially: nil fields keep their current value.
type UpdateDealRequest struct {
	Title                 *string    `json:"title,omitempty"`
	Description           *string    `json:"description,omitempty"`
	FinePrint             *string    `json:"fine_print,omitempty"`
	Category              *string    `json:"category,omitempty"`
	City                  *string    `json:"city,omitempty"`
	ImageURL              *string    `json:"image_url,omitempty"`
	DiscountKind          *string    `json:"discount_kind,omitempty"`
	DiscountValue         *float64   `json:"discount_value,omitempty"`
	Tier                  *string    `json:"tier,omitempty"`
	StartsAt              *time.Time `json:"starts_at,omitempty"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	MaxRedemptionsTotal   *int32     `json:"max_redemptions_total,omitempty"`
	MaxRedemptionsPerUser *int32     `json:"max_redemptions_per_user,omitempty"`
	RedemptionFrequency   *string    `json:"redemption_frequency,omitempty"`
	CustomRedemptionDays  *int32     `json:"custom_redemption_days,omitempty"`
	CooldownHours         *int32     `json:"cooldown_hours,omitempty"`
}

func (r UpdateDealRequest) HasContentChanges() bool {
	return r.Title != nil || r.Description != nil || r.FinePrint != nil ||
		r.Category != nil || r.City != nil || r.ImageURL != nil
}

func (r UpdateDealRequest) HasDiscountChanges() bool {
	return r.DiscountKind != nil || r.DiscountValue != nil
}

func (r UpdateDealRequest) HasWindowChanges() bool {
	return r.StartsAt != nil || r.EndsAt != nil
}

func (r UpdateDealRequest) HasPolicyChanges() bool {
	return r.MaxRedemptionsTotal != nil || r.MaxRedemptionsPerUser != nil ||
		r.RedemptionFrequency != nil || r.CustomRedemptionDays != nil || r.CooldownHours != nil
}
