package response

import (
	"time"

	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type RedemptionResponse struct {
	ID         uuid.UUID  `json:"id"`
	DealID     uuid.UUID  `json:"dealId"`
	DealTitle  string     `json:"dealTitle"`
	VendorID   uuid.UUID  `json:"vendorId"`
	UserID     uuid.UUID  `json:"userId"`
	Status     string     `json:"status"`
	Source     string     `json:"source"`
	RedeemedAt time.Time  `json:"redeemedAt"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
	VoidReason *string    `json:"voidReason,omitempty"`
}

// RedeemOutcome is returned for both allowed and denied attempts; denial is
// a 200-level outcome, not an error.
type RedeemOutcome struct {
	Allowed        bool                `json:"allowed"`
	Reason         string              `json:"reason,omitempty"`
	NextEligibleAt *time.Time          `json:"nextEligibleAt,omitempty"`
	Redemption     *RedemptionResponse `json:"redemption,omitempty"`
}

type EligibilityResponse struct {
	DealID         uuid.UUID  `json:"dealId"`
	Allowed        bool       `json:"allowed"`
	Reason         string     `json:"reason,omitempty"`
	NextEligibleAt *time.Time `json:"nextEligibleAt,omitempty"`
}

func FromRedemptionView(v *queries.RedemptionView) *RedemptionResponse {
	return &RedemptionResponse{
		ID:         v.ID,
		DealID:     v.DealID,
		DealTitle:  v.DealTitle,
		VendorID:   v.VendorID,
		UserID:     v.UserID,
		Status:     v.Status,
		Source:     v.Source,
		RedeemedAt: v.RedeemedAt,
		VoidedAt:   v.VoidedAt,
		VoidReason: v.VoidReason,
	}
}

func FromEligibilityView(v *queries.EligibilityView) *EligibilityResponse {
	return &EligibilityResponse{
		DealID:         v.DealID,
		Allowed:        v.Allowed,
		Reason:         v.Reason,
		NextEligibleAt: v.NextEligibleAt,
	}
}
