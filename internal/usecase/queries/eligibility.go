package queries

import (
	"context"

	"dealspot/internal/domain/redemption"
	"dealspot/internal/infra"
	"dealspot/internal/pkg/clock"
	"dealspot/internal/usecase/shared"

	"github.com/google/uuid"
)

// EligibilityQueries is the read-only preview of the redemption decision. It
// runs the same rule set as the redemption command but takes no locks, so a
// positive answer can still lose the race at redemption time.
type EligibilityQueries interface {
	Preview(ctx context.Context, userID, dealID uuid.UUID) (*EligibilityView, error)
}

type eligibilityQueriesImpl struct {
	reads       shared.CommandReads
	memberships shared.MembershipProvider
	clock       clock.Clock
}

func NewEligibilityQueries(reads shared.CommandReads, memberships shared.MembershipProvider, clock clock.Clock) EligibilityQueries {
	return &eligibilityQueriesImpl{
		reads:       reads,
		memberships: memberships,
		clock:       clock,
	}
}

func (q *eligibilityQueriesImpl) Preview(ctx context.Context, userID, dealID uuid.UUID) (*EligibilityView, error) {
	d, err := q.reads.DealByID(ctx, dealID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealViewNotFound
		}
		return nil, err
	}

	now := q.clock.Now()

	member, err := q.memberships.IsActiveMember(ctx, userID, now)
	if err != nil {
		member = false
	}

	quota, err := q.reads.QuotaState(ctx, userID, dealID)
	if err != nil {
		return nil, err
	}

	decision := redemption.Evaluate(d, member, *quota, now)
	return &EligibilityView{
		DealID:         dealID,
		Allowed:        decision.Allowed,
		Reason:         decision.Reason.String(),
		NextEligibleAt: decision.NextEligibleAt,
	}, nil
}
