package redemption

import (
	"strings"
	"time"

	"dealspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrAlreadyVoided    = errs.New("redemption is already voided")
	ErrVoidReasonNeeded = errs.New("void reason is required")
)

const DefaultSource = "in_app"

// Redemption is one ledger row. Rows are append-only from the consumer's
// perspective; voiding is the only post-creation mutation and is reserved
// for vendor/admin action.
type Redemption struct {
	id         uuid.UUID
	dealID     uuid.UUID
	vendorID   uuid.UUID
	userID     uuid.UUID
	status     Status
	source     string
	redeemedAt time.Time
	voidedAt   *time.Time
	voidReason *string
}

func NewRedemption(dealID, vendorID, userID uuid.UUID, source string, now time.Time) *Redemption {
	source = strings.TrimSpace(source)
	if source == "" {
		source = DefaultSource
	}
	return &Redemption{
		id:         uuid.New(),
		dealID:     dealID,
		vendorID:   vendorID,
		userID:     userID,
		status:     StatusRedeemed,
		source:     source,
		redeemedAt: now,
	}
}

func Reconstruct(id, dealID, vendorID, userID uuid.UUID, status Status, source string, redeemedAt time.Time, voidedAt *time.Time, voidReason *string) *Redemption {
	return &Redemption{
		id:         id,
		dealID:     dealID,
		vendorID:   vendorID,
		userID:     userID,
		status:     status,
		source:     source,
		redeemedAt: redeemedAt,
		voidedAt:   voidedAt,
		voidReason: voidReason,
	}
}

func (r *Redemption) ID() uuid.UUID         { return r.id }
func (r *Redemption) DealID() uuid.UUID     { return r.dealID }
func (r *Redemption) VendorID() uuid.UUID   { return r.vendorID }
func (r *Redemption) UserID() uuid.UUID     { return r.userID }
func (r *Redemption) Status() Status        { return r.status }
func (r *Redemption) Source() string        { return r.source }
func (r *Redemption) RedeemedAt() time.Time { return r.redeemedAt }
func (r *Redemption) VoidedAt() *time.Time  { return r.voidedAt }
func (r *Redemption) VoidReason() *string   { return r.voidReason }

// IsActive reports whether this row still counts toward quotas.
func (r *Redemption) IsActive() bool {
	return r.status == StatusRedeemed
}

// Void reverses a redemption. The row keeps its place in history but stops
// counting toward quotas and cooldowns.
func (r *Redemption) Void(reason string, now time.Time) error {
	if r.status == StatusVoided {
		return ErrAlreadyVoided
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrVoidReasonNeeded
	}
	r.status = StatusVoided
	t := now
	r.voidedAt = &t
	r.voidReason = &reason
	return nil
}
