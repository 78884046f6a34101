package redemption

import (
	"time"

	"dealspot/internal/domain/deal"
)

// QuotaState is what the ledger knows at evaluation time: non-voided counts
// and the most recent non-voided redemption by this user. Voided rows are
// excluded before these numbers are computed, so voiding frees quota and
// clears the cooldown derived from the voided attempt.
type QuotaState struct {
	GlobalCount    int64
	UserCount      int64
	LastRedeemedAt *time.Time
}

// Evaluate decides whether a user may redeem a deal right now. It is a pure
// function: all state arrives as arguments and nothing is mutated. Checks
// short-circuit on the first failure, cheapest and most authoritative first.
func Evaluate(d *deal.Deal, membershipActive bool, quota QuotaState, now time.Time) Decision {
	// 1. Lifecycle and availability.
	if d.Status() != deal.StatusPublished {
		return Deny(DenyDealNotPublished)
	}
	if d.IsDeleted() {
		return Deny(DenyDealSoftDeleted)
	}
	if !d.Window().Contains(now) {
		return Deny(DenyOutsideValidityWindow)
	}

	// 2. Tier gating. Unknown or stale membership fails closed.
	if d.Tier() == deal.TierMember && !membershipActive {
		return Deny(DenyMembershipRequired)
	}

	policy := d.Policy()

	// A published deal should never carry an invalid policy (publication
	// rejects it), but pre-existing bad data fails closed rather than
	// silently allowing.
	gap, err := policy.RequiredGap()
	if err != nil {
		return Deny(DenyMisconfiguredDeal)
	}

	// 3. Global cap across all users.
	if limit := policy.MaxTotal(); limit != nil && quota.GlobalCount >= int64(*limit) {
		return Deny(DenyGlobalQuotaExhausted)
	}

	// 4. Per-user lifetime cap. `once` folds into this as a cap of 1.
	if quota.UserCount >= int64(policy.EffectiveMaxPerUser()) {
		return Deny(DenyUserQuotaExhausted)
	}

	// 5. Frequency / cooldown against the most recent non-voided redemption.
	if quota.LastRedeemedAt != nil && gap > 0 {
		nextEligibleAt := quota.LastRedeemedAt.Add(gap)
		if now.Before(nextEligibleAt) {
			return DenyUntil(DenyCooldownActive, nextEligibleAt)
		}
	}

	return Allow()
}
