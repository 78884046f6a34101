package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type DealView struct {
	ID                    uuid.UUID  `json:"id"`
	VendorID              uuid.UUID  `json:"vendor_id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	FinePrint             string     `json:"fine_print,omitempty"`
	Category              string     `json:"category"`
	City                  string     `json:"city"`
	ImageURL              *string    `json:"image_url,omitempty"`
	DiscountKind          string     `json:"discount_kind"`
	DiscountValue         *float64   `json:"discount_value,omitempty"`
	Tier                  string     `json:"tier"`
	Status                string     `json:"status"`
	IsActive              bool       `json:"is_active"`
	StartsAt              *time.Time `json:"starts_at,omitempty"`
	EndsAt                *time.Time `json:"ends_at,omitempty"`
	MaxRedemptionsTotal   *int32     `json:"max_redemptions_total,omitempty"`
	MaxRedemptionsPerUser int32      `json:"max_redemptions_per_user"`
	RedemptionFrequency   string     `json:"redemption_frequency,omitempty"`
	CustomRedemptionDays  *int32     `json:"custom_redemption_days,omitempty"`
	CooldownHours         *int32     `json:"cooldown_hours,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type DealListItem struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      uuid.UUID  `json:"vendor_id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	City          string     `json:"city"`
	DiscountKind  string     `json:"discount_kind"`
	DiscountValue *float64   `json:"discount_value,omitempty"`
	Tier          string     `json:"tier"`
	EndsAt        *time.Time `json:"ends_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RedemptionView struct {
	ID         uuid.UUID  `json:"id"`
	DealID     uuid.UUID  `json:"deal_id"`
	DealTitle  string     `json:"deal_title"`
	VendorID   uuid.UUID  `json:"vendor_id"`
	UserID     uuid.UUID  `json:"user_id"`
	Status     string     `json:"status"`
	Source     string     `json:"source"`
	RedeemedAt time.Time  `json:"redeemed_at"`
	VoidedAt   *time.Time `json:"voided_at,omitempty"`
	VoidReason *string    `json:"void_reason,omitempty"`
}

type EligibilityView struct {
	DealID         uuid.UUID  `json:"deal_id"`
	Allowed        bool       `json:"allowed"`
	Reason         string     `json:"reason,omitempty"`
	NextEligibleAt *time.Time `json:"next_eligible_at,omitempty"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

type DealFilter struct {
	City     *string
	Category *string
	Tier     *string
}
