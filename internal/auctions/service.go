package auctions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/internal/bidding"
	"github.com/mazadcars/mazad-backend/internal/users"
	"github.com/mazadcars/mazad-backend/internal/vehicles"
	dbpkg "github.com/mazadcars/mazad-backend/pkg/db"
	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/metrics"
	"github.com/mazadcars/mazad-backend/pkg/outbox"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// CreateInput carries the operator request to list a vehicle.
type CreateInput struct {
	VehicleID         uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
	StartingPrice     int64
	EntryFee          *int64
	LaunchImmediately bool
}

// PlaceBidInput identifies one bid attempt.
type PlaceBidInput struct {
	AuctionID uuid.UUID
	BidderID  uuid.UUID
	Amount    int64
}

// BidResult reports an accepted bid, including any anti-snipe extension.
type BidResult struct {
	Amount   int64
	EndTime  time.Time
	Extended bool
}

// Detail augments the row with derived fields for API reads.
type Detail struct {
	Auction    models.Auction
	ReserveMet bool
}

// Page is one cursor page of auctions.
type Page struct {
	Items      []models.Auction
	NextCursor string
}

// BidPage is one cursor page of bid history.
type BidPage struct {
	Items      []models.Bid
	NextCursor string
}

// Service drives the auction lifecycle and bidding.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Auction, error)
	PlaceBid(ctx context.Context, input PlaceBidInput) (*BidResult, error)
	PayEntry(ctx context.Context, auctionID, userID uuid.UUID) error
	SetStatus(ctx context.Context, auctionID uuid.UUID, target enums.AuctionStatus) (*models.Auction, error)
	ExtendTime(ctx context.Context, auctionID uuid.UUID, minutes int) (*models.Auction, error)
	Get(ctx context.Context, id uuid.UUID) (*Detail, error)
	List(ctx context.Context, statuses []enums.AuctionStatus, params pagination.Params) (*Page, error)
	ListBids(ctx context.Context, auctionID uuid.UUID, params pagination.Params) (*BidPage, error)
}

// Params wires the service dependencies.
type Params struct {
	Repo     Repository
	Users    users.Repository
	Vehicles vehicles.Repository
	Tx       txRunner
	Outbox   outboxPublisher
	Metrics  *metrics.BiddingMetrics

	AntiSnipeWindow    time.Duration
	AntiSnipeExtension time.Duration
	DefaultEntryFee    int64

	Now func() time.Time
}

type service struct {
	repo     Repository
	users    users.Repository
	vehicles vehicles.Repository
	tx       txRunner
	outbox   outboxPublisher
	metrics  *metrics.BiddingMetrics

	antiSnipeWindow    time.Duration
	antiSnipeExtension time.Duration
	defaultEntryFee    int64

	now func() time.Time
}

const bidContextLabel = "auction"

// NewService builds the auctions service.
func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("auctions repository required")
	}
	if p.Users == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if p.Vehicles == nil {
		return nil, fmt.Errorf("vehicles repository required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if p.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if p.AntiSnipeWindow <= 0 {
		p.AntiSnipeWindow = 60 * time.Second
	}
	if p.AntiSnipeExtension <= 0 {
		p.AntiSnipeExtension = 120 * time.Second
	}
	if p.DefaultEntryFee <= 0 {
		p.DefaultEntryFee = 200
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		repo:               p.Repo,
		users:              p.Users,
		vehicles:           p.Vehicles,
		tx:                 p.Tx,
		outbox:             p.Outbox,
		metrics:            p.Metrics,
		antiSnipeWindow:    p.AntiSnipeWindow,
		antiSnipeExtension: p.AntiSnipeExtension,
		defaultEntryFee:    p.DefaultEntryFee,
		now:                p.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Auction, error) {
	if input.VehicleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if input.StartingPrice <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "starting price must be positive")
	}

	now := s.now()
	start := input.StartTime
	status := enums.AuctionStatusDraft
	if input.LaunchImmediately {
		start = now
		status = enums.AuctionStatusActive
	}
	if !input.EndTime.After(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end time must be after start time")
	}

	entryFee := s.defaultEntryFee
	if input.EntryFee != nil {
		if *input.EntryFee < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry fee cannot be negative")
		}
		entryFee = *input.EntryFee
	}

	var auction *models.Auction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		vehicleRepo := s.vehicles.WithTx(tx)
		vehicle, err := vehicleRepo.FindByID(ctx, input.VehicleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}

		busy, err := vehicleRepo.HasOpenSaleContext(ctx, input.VehicleID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sale contexts")
		}
		if busy {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle already listed for sale")
		}

		auction = &models.Auction{
			VehicleID:     input.VehicleID,
			Status:        status,
			StartTime:     start,
			EndTime:       input.EndTime,
			StartingPrice: input.StartingPrice,
			ReservePrice:  vehicle.ConditionReport.ReservePrice,
			EntryFee:      entryFee,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, auction); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_auctions_open_vehicle") {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle already listed for sale")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create auction")
		}

		if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventNewCar,
			AggregateType: enums.AggregateAuction,
			AggregateID:   auction.ID,
			Data: outbox.NewCarData{
				AuctionID: auction.ID,
				VehicleID: vehicle.ID,
				Make:      vehicle.Make,
				Model:     vehicle.Model,
				Year:      vehicle.Year,
			},
			Version: 1,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit new_car")
		}

		if status == enums.AuctionStatusActive {
			return s.emitAuctionStart(ctx, tx, auction)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auction, nil
}

// PlaceBid validates against a snapshot, then settles the race with a
// conditional update. Losers are re-evaluated against the fresh row so the
// rejection names the amount that actually beat them.
func (s *service) PlaceBid(ctx context.Context, input PlaceBidInput) (*BidResult, error) {
	if input.AuctionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	if input.BidderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid amount must be positive")
	}

	bidder, err := s.users.FindByID(ctx, input.BidderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown bidder")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bidder")
	}

	rules := bidding.AuctionRules()
	var result *BidResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		auction, err := repo.FindByID(ctx, input.AuctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load auction")
		}

		entryPaid, err := repo.HasEntry(ctx, input.AuctionID, input.BidderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check entry")
		}

		now := s.now()
		bc := bidding.BidContext{
			Open:           auction.Status == enums.AuctionStatusActive && now.Before(auction.EndTime),
			DepositBalance: bidder.DepositBalance,
			EntryFeePaid:   entryPaid,
			CurrentBid:     auction.CurrentHighestBid,
			StartingPrice:  auction.StartingPrice,
		}
		if err := rules.Validate(bc, input.Amount); err != nil {
			return s.rejectBid(err)
		}

		won, err := repo.TryOutbid(ctx, input.AuctionID, input.BidderID, input.Amount, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply bid")
		}
		if !won {
			// Lost the race. Re-read and report the state that beat us.
			fresh, err := repo.FindByID(ctx, input.AuctionID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload auction")
			}
			bc.Open = fresh.Status == enums.AuctionStatusActive && s.now().Before(fresh.EndTime)
			bc.CurrentBid = fresh.CurrentHighestBid
			if verr := rules.Validate(bc, input.Amount); verr != nil {
				return s.rejectBid(verr)
			}
			return s.rejectBid(&bidding.Rejection{
				Reason:        bidding.ReasonBidTooLow,
				CurrentAmount: fresh.CurrentHighestBid,
				MinimumBid:    rules.MinimumBid(bc),
			})
		}

		if err := repo.AppendBid(ctx, &models.Bid{
			AuctionID: input.AuctionID,
			BidderID:  input.BidderID,
			Amount:    input.Amount,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append bid")
		}

		if prev := auction.HighestBidderID; prev != nil && *prev != input.BidderID {
			lotless := outbox.OutbidData{
				AuctionID:      auction.ID,
				OutbidUserID:   *prev,
				NewHighestBid:  input.Amount,
				PreviousAmount: auction.CurrentHighestBid,
			}
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOutbid,
				AggregateType: enums.AggregateAuction,
				AggregateID:   auction.ID,
				Actor:         &outbox.ActorRef{UserID: input.BidderID, Role: "bidder"},
				Data:          lotless,
				Version:       1,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit outbid")
			}
		}

		// Anti-snipe: the conditional update above holds the row lock, so
		// this re-read observes a stable end_time even if an earlier bid
		// already extended it.
		current, err := repo.FindByID(ctx, input.AuctionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload auction")
		}
		endTime := current.EndTime
		extended := false
		if remaining := endTime.Sub(now); remaining <= s.antiSnipeWindow {
			endTime = endTime.Add(s.antiSnipeExtension)
			if err := repo.SetEndTime(ctx, input.AuctionID, endTime); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "extend end time")
			}
			extended = true
		}

		result = &BidResult{Amount: input.Amount, EndTime: endTime, Extended: extended}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncAccepted(bidContextLabel)
	return result, nil
}

// rejectBid converts a validation failure into the API error and counts it.
func (s *service) rejectBid(err error) error {
	var rej *bidding.Rejection
	if !errors.As(err, &rej) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bid validation")
	}
	s.metrics.IncRejected(bidContextLabel, string(rej.Reason))
	return rejectionError(rej)
}

// rejectionError maps validator reasons onto the error taxonomy. Gates that
// the bidder can fix (deposit, entry, tier) are Forbidden; state races are
// StateConflict.
func rejectionError(rej *bidding.Rejection) *pkgerrors.Error {
	details := map[string]any{"reason": string(rej.Reason)}
	switch rej.Reason {
	case bidding.ReasonNotOpen:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "bidding is not open").WithDetails(details)
	case bidding.ReasonDepositRequired:
		return pkgerrors.New(pkgerrors.CodeForbidden, "deposit required to bid").WithDetails(details)
	case bidding.ReasonEntryFeeRequired:
		return pkgerrors.New(pkgerrors.CodeForbidden, "entry fee required to bid").WithDetails(details)
	case bidding.ReasonTierLimitExceeded:
		details["max_bid"] = rej.MaxBid
		return pkgerrors.New(pkgerrors.CodeForbidden, "bid exceeds tier limit").WithDetails(details)
	default:
		details["current_amount"] = rej.CurrentAmount
		details["minimum_bid"] = rej.MinimumBid
		return pkgerrors.New(pkgerrors.CodeStateConflict, "bid too low").WithDetails(details)
	}
}

// PayEntry records the entry fee gate. Paying twice is a no-op.
func (s *service) PayEntry(ctx context.Context, auctionID, userID uuid.UUID) error {
	if auctionID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		auction, err := repo.FindByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load auction")
		}
		if auction.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "auction is closed")
		}

		paid, err := repo.HasEntry(ctx, auctionID, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check entry")
		}
		if paid {
			return nil
		}

		entry := &models.AuctionEntry{
			AuctionID: auctionID,
			UserID:    userID,
			FeePaid:   auction.EntryFee,
		}
		if err := repo.CreateEntry(ctx, entry); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_auction_entries_auction_user") {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create entry")
		}

		description := fmt.Sprintf("entry fee for auction %s", auctionID)
		row := &models.Transaction{
			UserID:      userID,
			Type:        enums.TransactionTypeEntryFee,
			Status:      enums.TransactionStatusCompleted,
			Amount:      auction.EntryFee,
			ReferenceID: &auctionID,
			Description: &description,
		}
		if err := s.users.WithTx(tx).CreateTransaction(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record entry fee")
		}
		return nil
	})
}

// transitionSources lists the statuses each operator target may come from.
// draft reverses an accidental activation; accepted bids are kept as-is.
var transitionSources = map[enums.AuctionStatus][]enums.AuctionStatus{
	enums.AuctionStatusDraft:     {enums.AuctionStatusActive},
	enums.AuctionStatusActive:    {enums.AuctionStatusDraft},
	enums.AuctionStatusEnded:     {enums.AuctionStatusActive},
	enums.AuctionStatusSettled:   {enums.AuctionStatusEnded},
	enums.AuctionStatusCancelled: {enums.AuctionStatusDraft, enums.AuctionStatusActive},
}

func (s *service) SetStatus(ctx context.Context, auctionID uuid.UUID, target enums.AuctionStatus) (*models.Auction, error) {
	if auctionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	sources, ok := transitionSources[target]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported target status")
	}

	var updated *models.Auction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		auction, err := repo.FindByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load auction")
		}

		extra := map[string]any{}
		now := s.now()
		if target == enums.AuctionStatusActive && auction.StartTime.After(now) {
			extra["start_time"] = now
		}

		flipped, err := repo.TransitionStatus(ctx, auctionID, sources, target, extra)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update status")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move auction from %s to %s", auction.Status, target))
		}

		switch target {
		case enums.AuctionStatusActive:
			if err := s.emitAuctionStart(ctx, tx, auction); err != nil {
				return err
			}
		case enums.AuctionStatusEnded:
			if err := s.emitWon(ctx, tx, auction); err != nil {
				return err
			}
		}

		updated, err = repo.FindByID(ctx, auctionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload auction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) emitAuctionStart(ctx context.Context, tx *gorm.DB, auction *models.Auction) error {
	err := s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventAuctionStart,
		AggregateType: enums.AggregateAuction,
		AggregateID:   auction.ID,
		Data: outbox.AuctionStartData{
			AuctionID:     auction.ID,
			VehicleID:     auction.VehicleID,
			StartingPrice: auction.StartingPrice,
			EndTime:       auction.EndTime.UTC().Format(time.RFC3339),
		},
		Version: 1,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit auction_start")
	}
	return nil
}

func (s *service) emitWon(ctx context.Context, tx *gorm.DB, auction *models.Auction) error {
	if auction.HighestBidderID == nil {
		return nil
	}
	auctionID := auction.ID
	err := s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventWon,
		AggregateType: enums.AggregateAuction,
		AggregateID:   auction.ID,
		Data: outbox.WonData{
			AuctionID:    &auctionID,
			VehicleID:    auction.VehicleID,
			WinnerUserID: *auction.HighestBidderID,
			FinalPrice:   auction.CurrentHighestBid,
		},
		Version: 1,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit won")
	}
	return nil
}

func (s *service) ExtendTime(ctx context.Context, auctionID uuid.UUID, minutes int) (*models.Auction, error) {
	if auctionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	if minutes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "extension minutes must be positive")
	}

	var updated *models.Auction
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		auction, err := repo.FindByID(ctx, auctionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load auction")
		}
		if auction.Status != enums.AuctionStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "only active auctions can be extended")
		}

		newEnd := auction.EndTime.Add(time.Duration(minutes) * time.Minute)
		if err := repo.SetEndTime(ctx, auctionID, newEnd); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "extend end time")
		}

		auction.EndTime = newEnd
		updated = auction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Detail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	auction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "auction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load auction")
	}
	return &Detail{
		Auction:    *auction,
		ReserveMet: reserveMet(auction),
	}, nil
}

// reserveMet is advisory only; settlement never blocks on it.
func reserveMet(a *models.Auction) bool {
	if a.ReservePrice == nil {
		return true
	}
	return a.CurrentHighestBid >= *a.ReservePrice
}

func (s *service) List(ctx context.Context, statuses []enums.AuctionStatus, params pagination.Params) (*Page, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	rows, err := s.repo.List(ctx, statuses, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list auctions")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &Page{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}

func (s *service) ListBids(ctx context.Context, auctionID uuid.UUID, params pagination.Params) (*BidPage, error) {
	if auctionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "auction id required")
	}
	rows, err := s.repo.ListBids(ctx, auctionID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bids")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := &BidPage{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		last := page.Items[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return page, nil
}
