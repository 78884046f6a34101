package deal

import (
	"strings"
	"time"

	"dealspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTitleRequired       = errs.New("deal title is required to publish")
	ErrDescriptionRequired = errs.New("deal description is required to publish")
	ErrDealExpired         = errs.New("deal is expired and cannot change state")
	ErrDealDeleted         = errs.New("deal is deleted")
	ErrDealNotPublishable  = errs.New("deal cannot leave draft through this transition")
)

// Deal is a vendor-published offer: content, a discount, a tier gate, a
// publication lifecycle and a redemption quota policy. The tier and the
// legacy pass-locked flag are always moved together; the active flag is a
// display convenience derived from status and must never contradict it.
type Deal struct {
	id          uuid.UUID
	vendorID    uuid.UUID
	title       string
	description string
	finePrint   string
	category    string
	city        string
	imageURL    *string
	discount    Discount
	tier        Tier
	passLocked  bool
	status      Status
	active      bool
	window      ValidityWindow
	policy      QuotaPolicy
	deletedAt   *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

// Content groups the editorial fields a vendor manages on a deal.
type Content struct {
	Title       string
	Description string
	FinePrint   string
	Category    string
	City        string
	ImageURL    *string
}

// NewDraft creates a deal in draft. Content may still be sparse at this
// point; publication is where completeness is enforced.
func NewDraft(vendorID uuid.UUID, content Content, discount Discount, tier Tier, window ValidityWindow, policy QuotaPolicy, now time.Time) (*Deal, error) {
	if !tier.IsValid() {
		return nil, ErrInvalidTier
	}

	return &Deal{
		id:          uuid.New(),
		vendorID:    vendorID,
		title:       strings.TrimSpace(content.Title),
		description: strings.TrimSpace(content.Description),
		finePrint:   strings.TrimSpace(content.FinePrint),
		category:    strings.TrimSpace(content.Category),
		city:        strings.TrimSpace(content.City),
		imageURL:    content.ImageURL,
		discount:    discount,
		tier:        tier,
		passLocked:  tier == TierMember,
		status:      StatusDraft,
		active:      false,
		window:      window,
		policy:      policy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// State carries raw storage fields for rehydration. Legacy rows may have a
// desynchronized tier/pass-locked pair or an unset frequency; Reconstruct
// normalizes tier here, at the data-access boundary, so business logic never
// branches on the legacy flag.
type State struct {
	ID            uuid.UUID
	VendorID      uuid.UUID
	Title         string
	Description   string
	FinePrint     string
	Category      string
	City          string
	ImageURL      *string
	DiscountKind  string
	DiscountValue *float64
	Tier          string
	IsPassLocked  bool
	Status        string
	IsActive      bool
	StartsAt      *time.Time
	EndsAt        *time.Time
	MaxTotal      *int32
	MaxPerUser    int32
	Frequency     string
	CustomDays    *int32
	CooldownHours *int32
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func Reconstruct(s State) (*Deal, error) {
	status, err := NewStatus(s.Status)
	if err != nil {
		return nil, err
	}

	kind := DiscountKind(s.DiscountKind)
	if !kind.IsValid() {
		return nil, ErrInvalidDiscountKind
	}

	freq := Frequency(s.Frequency)
	if !freq.IsValid() {
		return nil, ErrInvalidFrequency
	}

	window, err := NewValidityWindow(s.StartsAt, s.EndsAt)
	if err != nil {
		return nil, err
	}

	tier := ReconcileTier(s.Tier, s.IsPassLocked)

	return &Deal{
		id:          s.ID,
		vendorID:    s.VendorID,
		title:       s.Title,
		description: s.Description,
		finePrint:   s.FinePrint,
		category:    s.Category,
		city:        s.City,
		imageURL:    s.ImageURL,
		discount:    Discount{kind: kind, value: s.DiscountValue},
		tier:        tier,
		passLocked:  tier == TierMember,
		status:      status,
		active:      status == StatusPublished,
		window:      window,
		policy:      ReconstructQuotaPolicy(s.MaxTotal, s.MaxPerUser, freq, s.CustomDays, s.CooldownHours),
		deletedAt:   s.DeletedAt,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}, nil
}

func (d *Deal) ID() uuid.UUID          { return d.id }
func (d *Deal) VendorID() uuid.UUID    { return d.vendorID }
func (d *Deal) Title() string          { return d.title }
func (d *Deal) Description() string    { return d.description }
func (d *Deal) FinePrint() string      { return d.finePrint }
func (d *Deal) Category() string       { return d.category }
func (d *Deal) City() string           { return d.city }
func (d *Deal) ImageURL() *string      { return d.imageURL }
func (d *Deal) Discount() Discount     { return d.discount }
func (d *Deal) Tier() Tier             { return d.tier }
func (d *Deal) IsPassLocked() bool     { return d.passLocked }
func (d *Deal) Status() Status         { return d.status }
func (d *Deal) IsActive() bool         { return d.active }
func (d *Deal) Window() ValidityWindow { return d.window }
func (d *Deal) Policy() QuotaPolicy    { return d.policy }
func (d *Deal) DeletedAt() *time.Time  { return d.deletedAt }
func (d *Deal) CreatedAt() time.Time   { return d.createdAt }
func (d *Deal) UpdatedAt() time.Time   { return d.updatedAt }

func (d *Deal) IsDeleted() bool {
	return d.deletedAt != nil
}

// Publish moves a draft or paused deal to published. Publishing an already
// published deal is a no-op. Expired deals cannot be republished; the vendor
// must create a new deal.
func (d *Deal) Publish(now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	switch d.status {
	case StatusPublished:
		return nil
	case StatusExpired:
		return ErrDealExpired
	case StatusDraft, StatusPaused:
		if err := d.validatePublishable(); err != nil {
			return err
		}
		d.status = StatusPublished
		d.active = true
		d.updatedAt = now
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Pause hides a published deal without touching quotas or the ledger.
func (d *Deal) Pause(now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	switch d.status {
	case StatusPaused:
		return nil
	case StatusPublished:
		d.status = StatusPaused
		d.active = false
		d.updatedAt = now
		return nil
	case StatusExpired:
		return ErrDealExpired
	default:
		return ErrDealNotPublishable
	}
}

// Expire is terminal. It is triggered explicitly by the vendor or lazily
// when the validity window has passed.
func (d *Deal) Expire(now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	switch d.status {
	case StatusExpired:
		return nil
	case StatusPublished, StatusPaused:
		d.status = StatusExpired
		d.active = false
		d.updatedAt = now
		return nil
	default:
		return ErrDealNotPublishable
	}
}

func (d *Deal) SoftDelete(now time.Time) {
	if d.deletedAt != nil {
		return
	}
	t := now
	d.deletedAt = &t
	d.active = false
	d.updatedAt = now
}

func (d *Deal) UpdateContent(content Content, now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	if d.status == StatusExpired {
		return ErrDealExpired
	}
	d.title = strings.TrimSpace(content.Title)
	d.description = strings.TrimSpace(content.Description)
	d.finePrint = strings.TrimSpace(content.FinePrint)
	d.category = strings.TrimSpace(content.Category)
	d.city = strings.TrimSpace(content.City)
	d.imageURL = content.ImageURL
	d.updatedAt = now
	return nil
}

func (d *Deal) UpdateDiscount(discount Discount, now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	if d.status == StatusExpired {
		return ErrDealExpired
	}
	d.discount = discount
	d.updatedAt = now
	return nil
}

func (d *Deal) UpdatePolicy(policy QuotaPolicy, now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	if d.status == StatusExpired {
		return ErrDealExpired
	}
	if d.status == StatusPublished {
		if err := policy.Validate(); err != nil {
			return err
		}
	}
	d.policy = policy
	d.updatedAt = now
	return nil
}

// SetTier moves the tier and the legacy pass-locked flag together; they are
// never updated independently.
func (d *Deal) SetTier(tier Tier, now time.Time) error {
	if !tier.IsValid() {
		return ErrInvalidTier
	}
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	d.tier = tier
	d.passLocked = tier == TierMember
	d.updatedAt = now
	return nil
}

func (d *Deal) SetWindow(window ValidityWindow, now time.Time) error {
	if d.IsDeleted() {
		return ErrDealDeleted
	}
	if d.status == StatusExpired {
		return ErrDealExpired
	}
	d.window = window
	d.updatedAt = now
	return nil
}

func (d *Deal) validatePublishable() error {
	if d.title == "" {
		return ErrTitleRequired
	}
	if d.description == "" {
		return ErrDescriptionRequired
	}
	if d.discount.kind.RequiresValue() && (d.discount.value == nil || *d.discount.value <= 0) {
		return ErrInvalidDiscountValue
	}
	return d.policy.Validate()
}
