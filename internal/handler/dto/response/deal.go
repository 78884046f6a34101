package response

import (
	"time"

	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type DealResponse struct {
	ID                    uuid.UUID  `json:"id"`
	VendorID              uuid.UUID  `json:"vendorId"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	FinePrint             string     `json:"finePrint,omitempty"`
	Category              string     `json:"category"`
	City                  string     `json:"city"`
	ImageURL              *string    `json:"imageUrl,omitempty"`
	DiscountKind          string     `json:"discountKind"`
	DiscountValue         *float64   `json:"discountValue,omitempty"`
	Tier                  string     `json:"tier"`
	Status                string     `json:"status"`
	IsActive              bool       `json:"isActive"`
	StartsAt              *time.Time `json:"startsAt,omitempty"`
	EndsAt                *time.Time `json:"endsAt,omitempty"`
	MaxRedemptionsTotal   *int32     `json:"maxRedemptionsTotal,omitempty"`
	MaxRedemptionsPerUser int32      `json:"maxRedemptionsPerUser"`
	RedemptionFrequency   string     `json:"redemptionFrequency,omitempty"`
	CustomRedemptionDays  *int32     `json:"customRedemptionDays,omitempty"`
	CooldownHours         *int32     `json:"cooldownHours,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type DealListResponse struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      uuid.UUID  `json:"vendorId"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	City          string     `json:"city"`
	DiscountKind  string     `json:"discountKind"`
	DiscountValue *float64   `json:"discountValue,omitempty"`
	Tier          string     `json:"tier"`
	EndsAt        *time.Time `json:"endsAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func FromDealView(v *queries.DealView) *DealResponse {
	var resp DealResponse
	// Field names match one to one; copier spares the 20-line constructor.
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromDealListItem(v *queries.DealListItem) *DealListResponse {
	var resp DealListResponse
	_ = copier.Copy(&resp, v)
	return &resp
}
