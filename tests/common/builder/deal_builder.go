//go:build unit || e2e

package builder

import (
	"time"

	domdeal "dealspot/internal/domain/deal"
	reqdto "dealspot/internal/handler/dto/request"
	"dealspot/internal/usecase/queries"

	"github.com/google/uuid"
)

type DealBuilder struct {
	ID                    uuid.UUID
	VendorID              uuid.UUID
	Title                 string
	Description           string
	FinePrint             string
	Category              string
	City                  string
	ImageURL              *string
	DiscountKind          string
	DiscountValue         *float64
	Tier                  string
	Status                string
	StartsAt              *time.Time
	EndsAt                *time.Time
	MaxRedemptionsTotal   *int32
	MaxRedemptionsPerUser int32
	RedemptionFrequency   string
	CustomRedemptionDays  *int32
	CooldownHours         *int32
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func NewDealBuilder() *DealBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	value := 20.0
	return &DealBuilder{
		ID:                    uuid.New(),
		VendorID:              uuid.New(),
		Title:                 "Lunch special",
		Description:           "20% off any lunch set",
		Category:              "food",
		City:                  "portland",
		DiscountKind:          "percent",
		DiscountValue:         &value,
		Tier:                  "standard",
		Status:                "published",
		MaxRedemptionsPerUser: 1,
		RedemptionFrequency:   "unlimited",
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func (b *DealBuilder) With(mutate func(*DealBuilder)) *DealBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *DealBuilder) BuildDomain() (*domdeal.Deal, error) {
	return domdeal.Reconstruct(domdeal.State{
		ID:            b.ID,
		VendorID:      b.VendorID,
		Title:         b.Title,
		Description:   b.Description,
		FinePrint:     b.FinePrint,
		Category:      b.Category,
		City:          b.City,
		ImageURL:      b.ImageURL,
		DiscountKind:  b.DiscountKind,
		DiscountValue: b.DiscountValue,
		Tier:          b.Tier,
		IsPassLocked:  b.Tier == "member",
		Status:        b.Status,
		IsActive:      b.Status == "published",
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt,
		MaxTotal:      b.MaxRedemptionsTotal,
		MaxPerUser:    b.MaxRedemptionsPerUser,
		Frequency:     b.RedemptionFrequency,
		CustomDays:    b.CustomRedemptionDays,
		CooldownHours: b.CooldownHours,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	})
}

func (b *DealBuilder) BuildCreateRequestDTO() reqdto.CreateDealRequest {
	tier := b.Tier
	freq := b.RedemptionFrequency
	perUser := b.MaxRedemptionsPerUser
	return reqdto.CreateDealRequest{
		Title:                 b.Title,
		Description:           b.Description,
		FinePrint:             b.FinePrint,
		Category:              b.Category,
		City:                  b.City,
		ImageURL:              b.ImageURL,
		DiscountKind:          b.DiscountKind,
		DiscountValue:         b.DiscountValue,
		Tier:                  &tier,
		StartsAt:              b.StartsAt,
		EndsAt:                b.EndsAt,
		MaxRedemptionsTotal:   b.MaxRedemptionsTotal,
		MaxRedemptionsPerUser: &perUser,
		RedemptionFrequency:   &freq,
		CustomRedemptionDays:  b.CustomRedemptionDays,
		CooldownHours:         b.CooldownHours,
	}
}

func (b *DealBuilder) BuildUpdateRequestDTO() reqdto.UpdateDealRequest {
	title := b.Title
	description := b.Description
	return reqdto.UpdateDealRequest{
		Title:       &title,
		Description: &description,
	}
}

func (b *DealBuilder) BuildViewQuery() *queries.DealView {
	return &queries.DealView{
		ID:                    b.ID,
		VendorID:              b.VendorID,
		Title:                 b.Title,
		Description:           b.Description,
		FinePrint:             b.FinePrint,
		Category:              b.Category,
		City:                  b.City,
		ImageURL:              b.ImageURL,
		DiscountKind:          b.DiscountKind,
		DiscountValue:         b.DiscountValue,
		Tier:                  b.Tier,
		Status:                b.Status,
		IsActive:              b.Status == "published",
		StartsAt:              b.StartsAt,
		EndsAt:                b.EndsAt,
		MaxRedemptionsTotal:   b.MaxRedemptionsTotal,
		MaxRedemptionsPerUser: b.MaxRedemptionsPerUser,
		RedemptionFrequency:   b.RedemptionFrequency,
		CustomRedemptionDays:  b.CustomRedemptionDays,
		CooldownHours:         b.CooldownHours,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func (b *DealBuilder) BuildListItem() *queries.DealListItem {
	return &queries.DealListItem{
		ID:            b.ID,
		VendorID:      b.VendorID,
		Title:         b.Title,
		Category:      b.Category,
		City:          b.City,
		DiscountKind:  b.DiscountKind,
		DiscountValue: b.DiscountValue,
		Tier:          b.Tier,
		EndsAt:        b.EndsAt,
		CreatedAt:     b.CreatedAt,
	}
}

// Fluent builder methods
func (b *DealBuilder) WithVendorID(vendorID uuid.UUID) *DealBuilder {
	b.VendorID = vendorID
	return b
}

func (b *DealBuilder) WithTitle(title string) *DealBuilder {
	b.Title = title
	return b
}

func (b *DealBuilder) WithStatus(status string) *DealBuilder {
	b.Status = status
	return b
}

func (b *DealBuilder) WithTier(tier string) *DealBuilder {
	b.Tier = tier
	return b
}

func (b *DealBuilder) WithWindow(startsAt, endsAt *time.Time) *DealBuilder {
	b.StartsAt = startsAt
	b.EndsAt = endsAt
	return b
}

func (b *DealBuilder) WithQuota(maxTotal *int32, maxPerUser int32) *DealBuilder {
	b.MaxRedemptionsTotal = maxTotal
	b.MaxRedemptionsPerUser = maxPerUser
	return b
}

func (b *DealBuilder) WithFrequency(frequency string, customDays *int32) *DealBuilder {
	b.RedemptionFrequency = frequency
	b.CustomRedemptionDays = customDays
	return b
}
