package redemption

import (
	"time"

	"dealspot/internal/pkg/errs"
)

var ErrInvalidStatus = errs.New("invalid redemption status")

type Status string

const (
	StatusRedeemed Status = "redeemed"
	StatusVoided   Status = "voided"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	return s == StatusRedeemed || s == StatusVoided
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// DenyReason is a typed business outcome, not an error. Every reason maps
// to specific user-facing copy in the presentation layer.
type DenyReason string

const (
	DenyDealNotPublished      DenyReason = "deal_not_published"
	DenyOutsideValidityWindow DenyReason = "outside_validity_window"
	DenyDealSoftDeleted       DenyReason = "deal_soft_deleted"
	DenyMembershipRequired    DenyReason = "membership_required"
	DenyGlobalQuotaExhausted  DenyReason = "global_quota_exhausted"
	DenyUserQuotaExhausted    DenyReason = "user_quota_exhausted"
	DenyCooldownActive        DenyReason = "cooldown_active"
	DenyMisconfiguredDeal     DenyReason = "misconfigured_deal"
)

func (r DenyReason) String() string {
	return string(r)
}

// Decision is the outcome of an eligibility evaluation. NextEligibleAt is
// set only for cooldown denials.
type Decision struct {
	Allowed        bool
	Reason         DenyReason
	NextEligibleAt *time.Time
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

func DenyUntil(reason DenyReason, nextEligibleAt time.Time) Decision {
	return Decision{Reason: reason, NextEligibleAt: &nextEligibleAt}
}
