package request

import (
	"strings"

	"github.com/google/uuid"
)

type RedeemRequest struct {
	DealID uuid.UUID `json:"deal_id" binding:"required"`
	Source *string   `json:"source,omitempty"`
}

func (r RedeemRequest) GetSource() string {
	if r.Source == nil {
		return ""
	}
	return strings.TrimSpace(*r.Source)
}

type VoidRedemptionRequest struct {
	Reason string `json:"reason" binding:"required"`
}
