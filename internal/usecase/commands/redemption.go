package commands

import (
	"context"
	"errors"

	"dealspot/internal/domain/deal"
	"dealspot/internal/domain/redemption"
	"dealspot/internal/domain/user"
	reqdto "dealspot/internal/handler/dto/request"
	"dealspot/internal/infra"
	"dealspot/internal/pkg/clock"
	"dealspot/internal/pkg/errs"
	"dealspot/internal/usecase/queries"
	"dealspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRedemptionNotFound = errs.New("redemption not found")
	ErrNotRedemptionOwner = errs.New("redemption belongs to another vendor")
	ErrVoidConflict       = errs.New("redemption cannot be voided")
)

// RedeemResult separates business denial from failure: a denied redemption
// is a successful command whose Decision says no. Redemption is set only
// when the decision allowed and the ledger row was written.
type RedeemResult struct {
	Decision   redemption.Decision
	Redemption *queries.RedemptionView
}

type RedemptionCommands interface {
	Redeem(ctx context.Context, userID uuid.UUID, req reqdto.RedeemRequest) (*RedeemResult, error)
	VoidRedemption(ctx context.Context, actorID uuid.UUID, actorRole user.Role, redemptionID uuid.UUID, reason string) error
}

type redemptionCommandsImpl struct {
	uow               shared.UnitOfWork
	memberships       shared.MembershipProvider
	redemptionQueries queries.RedemptionQueries
	clock             clock.Clock
}

func NewRedemptionCommands(
	uow shared.UnitOfWork,
	memberships shared.MembershipProvider,
	redemptionQueries queries.RedemptionQueries,
	clock clock.Clock,
) RedemptionCommands {
	return &redemptionCommandsImpl{
		uow:               uow,
		memberships:       memberships,
		redemptionQueries: redemptionQueries,
		clock:             clock,
	}
}

// Redeem evaluates eligibility and appends to the ledger in one transaction.
// The deal row is locked first, so two concurrent attempts against the same
// deal serialize and the loser re-reads quota counts that include the winner.
func (c *redemptionCommandsImpl) Redeem(ctx context.Context, userID uuid.UUID, req reqdto.RedeemRequest) (*RedeemResult, error) {
	now := c.clock.Now()

	// Membership is resolved outside the transaction; a lookup failure
	// reads as not a member rather than aborting the attempt.
	member, err := c.memberships.IsActiveMember(ctx, userID, now)
	if err != nil {
		member = false
	}

	var result *RedeemResult
	var recordID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Deals().FindByIDForUpdate(ctx, req.DealID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrDealNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		// Lazy expiry: flip the stored status on first touch after the
		// window closes. The evaluation below then denies on status.
		if d.Status() == deal.StatusPublished && d.Window().EndedBefore(now) {
			if err := d.Expire(now); err != nil {
				return errs.Mark(err, ErrDealStateConflict)
			}
			if err := tx.Deals().Update(ctx, d); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		quota, err := tx.Reads().QuotaState(ctx, userID, d.ID())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		decision := redemption.Evaluate(d, member, *quota, now)
		if !decision.Allowed {
			result = &RedeemResult{Decision: decision}
			return nil
		}

		record := redemption.NewRedemption(d.ID(), d.VendorID(), userID, req.GetSource(), now)
		if _, err := tx.Redemptions().Append(ctx, record); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		recordID = record.ID()
		result = &RedeemResult{Decision: decision}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Decision.Allowed {
		view, err := c.redemptionQueries.GetByID(ctx, userID, user.RoleConsumer, recordID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result.Redemption = view
	}
	return result, nil
}

// VoidRedemption reverses a ledger row. Vendors may void redemptions of
// their own deals; admins any. Consumers cannot void.
func (c *redemptionCommandsImpl) VoidRedemption(ctx context.Context, actorID uuid.UUID, actorRole user.Role, redemptionID uuid.UUID, reason string) error {
	if actorRole != user.RoleAdmin && actorRole != user.RoleVendor {
		return ErrNotRedemptionOwner
	}
	now := c.clock.Now()

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		record, err := tx.Redemptions().FindByID(ctx, redemptionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRedemptionNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if actorRole == user.RoleVendor && record.VendorID() != actorID {
			return ErrNotRedemptionOwner
		}

		if err := record.Void(reason, now); err != nil {
			if errors.Is(err, redemption.ErrAlreadyVoided) {
				return errs.Mark(err, ErrVoidConflict)
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.Redemptions().Void(ctx, record); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrVoidConflict)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
