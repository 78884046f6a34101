package commands

import (
	"context"
	"time"

	"dealspot/internal/domain/deal"
	"dealspot/internal/domain/user"
	reqdto "dealspot/internal/handler/dto/request"
	"dealspot/internal/infra"
	"dealspot/internal/pkg/clock"
	"dealspot/internal/pkg/errs"
	"dealspot/internal/pkg/patch"
	"dealspot/internal/usecase/queries"
	"dealspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDealNotFound            = errs.New("deal not found")
	ErrNotDealOwner            = errs.New("deal belongs to another vendor")
	ErrDealStateConflict       = errs.New("deal state does not allow this transition")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type DealCommands interface {
	CreateDeal(ctx context.Context, vendorID uuid.UUID, req reqdto.CreateDealRequest) (*queries.DealView, error)
	UpdateDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID, req reqdto.UpdateDealRequest) (*queries.DealView, error)
	PublishDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error
	PauseDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error
	ExpireDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error
	DeleteDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error
}

type dealCommandsImpl struct {
	uow         shared.UnitOfWork
	dealQueries queries.DealQueries
	clock       clock.Clock
}

func NewDealCommands(uow shared.UnitOfWork, dealQueries queries.DealQueries, clock clock.Clock) DealCommands {
	return &dealCommandsImpl{
		uow:         uow,
		dealQueries: dealQueries,
		clock:       clock,
	}
}

func (c *dealCommandsImpl) CreateDeal(ctx context.Context, vendorID uuid.UUID, req reqdto.CreateDealRequest) (*queries.DealView, error) {
	entity, err := req.ToDomain(vendorID, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, createErr := tx.Deals().Create(ctx, entity)
		return createErr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write through the read store
	view, err := c.dealQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *dealCommandsImpl) UpdateDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID, req reqdto.UpdateDealRequest) (*queries.DealView, error) {
	now := c.clock.Now()

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.loadOwnedDeal(ctx, tx, actorID, actorRole, dealID)
		if err != nil {
			return err
		}
		if err := applyDealPatch(entity, req, now); err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
		return tx.Deals().Update(ctx, entity)
	})
	if err != nil {
		return nil, err
	}

	view, err := c.dealQueries.GetByID(ctx, dealID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *dealCommandsImpl) PublishDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error {
	return c.transition(ctx, actorID, actorRole, dealID, func(d *deal.Deal) error {
		return d.Publish(c.clock.Now())
	})
}

func (c *dealCommandsImpl) PauseDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error {
	return c.transition(ctx, actorID, actorRole, dealID, func(d *deal.Deal) error {
		return d.Pause(c.clock.Now())
	})
}

func (c *dealCommandsImpl) ExpireDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error {
	return c.transition(ctx, actorID, actorRole, dealID, func(d *deal.Deal) error {
		return d.Expire(c.clock.Now())
	})
}

func (c *dealCommandsImpl) DeleteDeal(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) error {
	return c.transition(ctx, actorID, actorRole, dealID, func(d *deal.Deal) error {
		d.SoftDelete(c.clock.Now())
		return nil
	})
}

func (c *dealCommandsImpl) transition(ctx context.Context, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID, mutate func(*deal.Deal) error) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.loadOwnedDeal(ctx, tx, actorID, actorRole, dealID)
		if err != nil {
			return err
		}
		if err := mutate(entity); err != nil {
			return errs.Mark(err, ErrDealStateConflict)
		}
		return tx.Deals().Update(ctx, entity)
	})
}

// loadOwnedDeal locks the deal row and checks the actor may write to it.
// Admins may act on any deal; vendors only on their own.
func (c *dealCommandsImpl) loadOwnedDeal(ctx context.Context, tx shared.Tx, actorID uuid.UUID, actorRole user.Role, dealID uuid.UUID) (*deal.Deal, error) {
	entity, err := tx.Deals().FindByIDForUpdate(ctx, dealID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if actorRole != user.RoleAdmin && entity.VendorID() != actorID {
		return nil, ErrNotDealOwner
	}
	return entity, nil
}

func applyDealPatch(entity *deal.Deal, req reqdto.UpdateDealRequest, now time.Time) error {
	if req.HasContentChanges() {
		content := deal.Content{
			Title:       patch.Coalesce(req.Title, entity.Title()),
			Description: patch.Coalesce(req.Description, entity.Description()),
			FinePrint:   patch.Coalesce(req.FinePrint, entity.FinePrint()),
			Category:    patch.Coalesce(req.Category, entity.Category()),
			City:        patch.Coalesce(req.City, entity.City()),
			ImageURL:    entity.ImageURL(),
		}
		if req.ImageURL != nil {
			content.ImageURL = req.ImageURL
		}
		if err := entity.UpdateContent(content, now); err != nil {
			return err
		}
	}

	if req.HasDiscountChanges() {
		kind := entity.Discount().Kind()
		if req.DiscountKind != nil {
			newKind, err := deal.NewDiscountKind(*req.DiscountKind)
			if err != nil {
				return err
			}
			kind = newKind
		}
		value := entity.Discount().Value()
		if req.DiscountValue != nil {
			value = req.DiscountValue
		}
		discount, err := deal.NewDiscount(kind, value)
		if err != nil {
			return err
		}
		if err := entity.UpdateDiscount(discount, now); err != nil {
			return err
		}
	}

	if req.Tier != nil {
		tier, err := deal.NewTier(*req.Tier)
		if err != nil {
			return err
		}
		if err := entity.SetTier(tier, now); err != nil {
			return err
		}
	}

	if req.HasWindowChanges() {
		startsAt := entity.Window().StartsAt()
		if req.StartsAt != nil {
			startsAt = req.StartsAt
		}
		endsAt := entity.Window().EndsAt()
		if req.EndsAt != nil {
			endsAt = req.EndsAt
		}
		window, err := deal.NewValidityWindow(startsAt, endsAt)
		if err != nil {
			return err
		}
		if err := entity.SetWindow(window, now); err != nil {
			return err
		}
	}

	if req.HasPolicyChanges() {
		current := entity.Policy()
		freq := current.Frequency()
		if req.RedemptionFrequency != nil {
			newFreq, err := deal.NewFrequency(*req.RedemptionFrequency)
			if err != nil {
				return err
			}
			freq = newFreq
		}
		maxTotal := current.MaxTotal()
		if req.MaxRedemptionsTotal != nil {
			maxTotal = req.MaxRedemptionsTotal
		}
		maxPerUser := current.MaxPerUser()
		if req.MaxRedemptionsPerUser != nil {
			maxPerUser = *req.MaxRedemptionsPerUser
		}
		customDays := current.CustomDays()
		if req.CustomRedemptionDays != nil {
			customDays = req.CustomRedemptionDays
		}
		cooldownHours := current.CooldownHours()
		if req.CooldownHours != nil {
			cooldownHours = req.CooldownHours
		}
		policy, err := deal.NewQuotaPolicy(maxTotal, maxPerUser, freq, customDays, cooldownHours)
		if err != nil {
			return err
		}
		if err := entity.UpdatePolicy(policy, now); err != nil {
			return err
		}
	}

	return nil
}
