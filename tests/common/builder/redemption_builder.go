//go:build unit || e2e

package builder

import (
	"time"

	domredemption "dealspot/internal/domain/redemption"
	reqdto "dealspot/internal/handler/dto/request"
	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type RedemptionBuilder struct {
	ID         uuid.UUID
	DealID     uuid.UUID
	DealTitle  string
	VendorID   uuid.UUID
	UserID     uuid.UUID
	Status     string
	Source     string
	RedeemedAt time.Time
	VoidedAt   *time.Time
	VoidReason *string
}

func NewRedemptionBuilder() *RedemptionBuilder {
	return &RedemptionBuilder{
		ID:         uuid.New(),
		DealID:     uuid.New(),
		DealTitle:  "Lunch special",
		VendorID:   uuid.New(),
		UserID:     uuid.New(),
		Status:     "redeemed",
		Source:     domredemption.DefaultSource,
		RedeemedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (b *RedemptionBuilder) With(mutate func(*RedemptionBuilder)) *RedemptionBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *RedemptionBuilder) BuildDomain() *domredemption.Redemption {
	return domredemption.Reconstruct(
		b.ID, b.DealID, b.VendorID, b.UserID,
		domredemption.Status(b.Status), b.Source, b.RedeemedAt, b.VoidedAt, b.VoidReason,
	)
}

func (b *RedemptionBuilder) BuildRedeemRequestDTO() reqdto.RedeemRequest {
	source := b.Source
	return reqdto.RedeemRequest{
		DealID: b.DealID,
		Source: &source,
	}
}

func (b *RedemptionBuilder) BuildViewQuery() *queries.RedemptionView {
	return &queries.RedemptionView{
		ID:         b.ID,
		DealID:     b.DealID,
		DealTitle:  b.DealTitle,
		VendorID:   b.VendorID,
		UserID:     b.UserID,
		Status:     b.Status,
		Source:     b.Source,
		RedeemedAt: b.RedeemedAt,
		VoidedAt:   b.VoidedAt,
		VoidReason: b.VoidReason,
	}
}

// Fluent builder methods
func (b *RedemptionBuilder) WithDealID(dealID uuid.UUID) *RedemptionBuilder {
	b.DealID = dealID
	return b
}

func (b *RedemptionBuilder) WithVendorID(vendorID uuid.UUID) *RedemptionBuilder {
	b.VendorID = vendorID
	return b
}

func (b *RedemptionBuilder) WithUserID(userID uuid.UUID) *RedemptionBuilder {
	b.UserID = userID
	return b
}

func (b *RedemptionBuilder) WithVoided(reason string, at time.Time) *RedemptionBuilder {
	b.Status = "voided"
	b.VoidedAt = &at
	b.VoidReason = &reason
	return b
}
