package catalogs

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

// LotInput is one vehicle slot in a new catalog, in session order.
type LotInput struct {
	VehicleID     uuid.UUID
	StartingPrice int64
}

// CreateInput carries the operator request to schedule a catalog session.
type CreateInput struct {
	Title        string
	ScheduledAt  time.Time
	BidIncrement int64
	Lots         []LotInput
}

// PlaceBidInput identifies one lot bid attempt.
type PlaceBidInput struct {
	LotID    uuid.UUID
	BidderID uuid.UUID
	Amount   int64
}

// BidResult reports an accepted lot bid.
type BidResult struct {
	Amount  int64
	EndTime time.Time
}

// AdvanceResult reports what AdvanceLot closed and what it opened.
type AdvanceResult struct {
	ClosedLot    *models.CatalogLot
	NextLot      *models.CatalogLot
	CatalogEnded bool
}

// Page is one cursor page of catalogs.
type Page struct {
	Items      []models.Catalog
	NextCursor string
}

// BidPage is one cursor page of lot bid history.
type BidPage struct {
	Items      []models.CatalogBid
	NextCursor string
}

// Service runs catalog sessions lot by lot.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Catalog, error)
	Start(ctx context.Context, catalogID uuid.UUID) (*models.Catalog, error)
	AdvanceLot(ctx context.Context, catalogID uuid.UUID, outcome enums.LotOutcome) (*AdvanceResult, error)
	ExtendLot(ctx context.Context, catalogID uuid.UUID, seconds int) (*models.CatalogLot, error)
	PlaceBid(ctx context.Context, input PlaceBidInput) (*BidResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Catalog, error)
	List(ctx context.Context, statuses []enums.CatalogStatus, params pagination.Params) (*Page, error)
	ListLotBids(ctx context.Context, lotID uuid.UUID, params pagination.Params) (*BidPage, error)
}

// Params wires the service dependencies.
type Params struct {
	Repo     Repository
	Users    users.Repository
	Vehicles vehicles.Repository
	Tx       txRunner
	Outbox   outboxPublisher
	Metrics  *metrics.BiddingMetrics

	LotDuration time.Duration

	Now func() time.Time
}

type service struct {
	repo     Repository
	users    users.Repository
	vehicles vehicles.Repository
	tx       txRunner
	outbox   outboxPublisher
	metrics  *metrics.BiddingMetrics

	lotDuration time.Duration

	now func() time.Time
}

const lotBidContextLabel = "catalog_lot"

// NewService builds the catalogs service.
func NewService(p Params) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("catalogs repository required")
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
	if p.LotDuration <= 0 {
		p.LotDuration = 90 * time.Second
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &service{
		repo:        p.Repo,
		users:       p.Users,
		vehicles:    p.Vehicles,
		tx:          p.Tx,
		outbox:      p.Outbox,
		metrics:     p.Metrics,
		lotDuration: p.LotDuration,
		now:         p.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Catalog, error) {
	if input.Title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.BidIncrement <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid increment must be positive")
	}
	if len(input.Lots) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one lot is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(input.Lots))
	for _, lot := range input.Lots {
		if lot.VehicleID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot vehicle id required")
		}
		if lot.StartingPrice <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot starting price must be positive")
		}
		if _, dup := seen[lot.VehicleID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate vehicle in catalog")
		}
		seen[lot.VehicleID] = struct{}{}
	}

	var catalog *models.Catalog
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		vehicleRepo := s.vehicles.WithTx(tx)
		for _, lot := range input.Lots {
			if _, err := vehicleRepo.FindByID(ctx, lot.VehicleID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound,
						fmt.Sprintf("vehicle %s not found", lot.VehicleID))
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
			}
			busy, err := vehicleRepo.HasOpenSaleContext(ctx, lot.VehicleID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check sale contexts")
			}
			if busy {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle already listed for sale")
			}
		}

		lots := make([]models.CatalogLot, 0, len(input.Lots))
		for i, lot := range input.Lots {
			lots = append(lots, models.CatalogLot{
				VehicleID:     lot.VehicleID,
				LotOrder:      i + 1,
				Status:        enums.LotStatusPending,
				StartingPrice: lot.StartingPrice,
			})
		}
		catalog = &models.Catalog{
			Title:        input.Title,
			Status:       enums.CatalogStatusScheduled,
			ScheduledAt:  input.ScheduledAt,
			BidIncrement: input.BidIncrement,
			Lots:         lots,
		}
		if _, err := s.repo.WithTx(tx).Create(ctx, catalog); err != nil {
			if dbpkg.IsUniqueViolation(err, "ux_catalog_lots_open_vehicle") {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle already listed for sale")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create catalog")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Start activates the catalog and opens its first lot with a fresh timer.
func (s *service) Start(ctx context.Context, catalogID uuid.UUID) (*models.Catalog, error) {
	if catalogID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog id required")
	}

	var started *models.Catalog
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		catalog, err := repo.FindByID(ctx, catalogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "catalog not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
		}

		first, err := repo.NextPendingLot(ctx, catalogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "catalog has no pending lots")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find first lot")
		}

		flipped, err := repo.TransitionCatalogStatus(ctx, catalogID,
			[]enums.CatalogStatus{enums.CatalogStatusScheduled},
			enums.CatalogStatusActive,
			map[string]any{"current_lot_order": first.LotOrder})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate catalog")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot start catalog in status %s", catalog.Status))
		}

		if err := s.openLot(ctx, repo, first.ID); err != nil {
			return err
		}

		if err := s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventAuctionStart,
			AggregateType: enums.AggregateCatalog,
			AggregateID:   catalogID,
			Data: outbox.CatalogStartData{
				CatalogID:  catalogID,
				Title:      catalog.Title,
				FirstLotID: first.ID,
				EndTime:    s.now().Add(s.lotDuration).UTC().Format(time.RFC3339),
			},
			Version: 1,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit auction_start")
		}

		started, err = repo.FindByID(ctx, catalogID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload catalog")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// openLot flips a pending lot to active with a fresh end time.
func (s *service) openLot(ctx context.Context, repo Repository, lotID uuid.UUID) error {
	flipped, err := repo.TransitionLotStatus(ctx, lotID,
		[]enums.LotStatus{enums.LotStatusPending},
		enums.LotStatusActive,
		map[string]any{"end_time": s.now().Add(s.lotDuration)})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate lot")
	}
	if !flipped {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "lot is no longer pending")
	}
	return nil
}

// AdvanceLot closes the single active lot with the operator's outcome and
// opens the next pending lot. The catalog ends when no lots remain.
func (s *service) AdvanceLot(ctx context.Context, catalogID uuid.UUID, outcome enums.LotOutcome) (*AdvanceResult, error) {
	if catalogID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog id required")
	}
	if !outcome.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "outcome must be sold or no_sale")
	}

	var result *AdvanceResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		catalog, err := repo.FindByID(ctx, catalogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "catalog not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
		}
		if catalog.Status != enums.CatalogStatusActive {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "catalog is not active")
		}

		lot, err := repo.FindActiveLot(ctx, catalogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no active lot to advance")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active lot")
		}

		closing, err := closingStatus(lot, outcome)
		if err != nil {
			return err
		}

		flipped, err := repo.TransitionLotStatus(ctx, lot.ID,
			[]enums.LotStatus{enums.LotStatusActive}, closing, nil)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close lot")
		}
		if !flipped {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "lot already closed")
		}
		lot.Status = closing

		if closing == enums.LotStatusSold {
			lotID := lot.ID
			if err := s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventWon,
				AggregateType: enums.AggregateCatalogLot,
				AggregateID:   lot.ID,
				Data: outbox.WonData{
					LotID:        &lotID,
					VehicleID:    lot.VehicleID,
					WinnerUserID: *lot.HighestBidderID,
					FinalPrice:   lot.CurrentBid,
				},
				Version: 1,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit won")
			}
		}

		result = &AdvanceResult{ClosedLot: lot}

		next, err := repo.NextPendingLot(ctx, catalogID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find next lot")
			}
			// No lots left; the session is over.
			flipped, err := repo.TransitionCatalogStatus(ctx, catalogID,
				[]enums.CatalogStatus{enums.CatalogStatusActive},
				enums.CatalogStatusEnded, nil)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "end catalog")
			}
			if !flipped {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "catalog already ended")
			}
			result.CatalogEnded = true
			return nil
		}

		if err := s.openLot(ctx, repo, next.ID); err != nil {
			return err
		}
		_, err = repo.TransitionCatalogStatus(ctx, catalogID,
			[]enums.CatalogStatus{enums.CatalogStatusActive},
			enums.CatalogStatusActive,
			map[string]any{"current_lot_order": next.LotOrder})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "bump lot order")
		}

		next, err = repo.FindLot(ctx, next.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload next lot")
		}
		result.NextLot = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// closingStatus maps the operator outcome onto the stored lot status. A lot
// that drew no bids records passed rather than no_sale.
func closingStatus(lot *models.CatalogLot, outcome enums.LotOutcome) (enums.LotStatus, error) {
	switch outcome {
	case enums.LotOutcomeSold:
		if lot.HighestBidderID == nil {
			return "", pkgerrors.New(pkgerrors.CodeStateConflict, "cannot sell a lot without bids")
		}
		return enums.LotStatusSold, nil
	case enums.LotOutcomeNoSale:
		if lot.HighestBidderID == nil {
			return enums.LotStatusPassed, nil
		}
		return enums.LotStatusNoSale, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "outcome must be sold or no_sale")
}

// ExtendLot pushes the active lot's end time out by the given seconds. Lots
// have no automatic anti-snipe; this is the only extension path.
func (s *service) ExtendLot(ctx context.Context, catalogID uuid.UUID, seconds int) (*models.CatalogLot, error) {
	if catalogID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog id required")
	}
	if seconds <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "extension seconds must be positive")
	}

	var updated *models.CatalogLot
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		lot, err := repo.FindActiveLot(ctx, catalogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "no active lot to extend")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active lot")
		}
		if lot.EndTime == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "active lot has no end time")
		}

		newEnd := lot.EndTime.Add(time.Duration(seconds) * time.Second)
		if err := repo.SetLotEndTime(ctx, lot.ID, newEnd); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "extend lot")
		}
		lot.EndTime = &newEnd
		updated = lot
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// PlaceBid validates against a snapshot, then settles the race with a
// conditional update. Lot bids skip the deposit and entry gates but keep the
// tier ceiling and use the catalog's increment floor.
func (s *service) PlaceBid(ctx context.Context, input PlaceBidInput) (*BidResult, error) {
	if input.LotID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot id required")
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

	var result *BidResult
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		lot, err := repo.FindLot(ctx, input.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "lot not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lot")
		}
		catalog, err := repo.FindByID(ctx, lot.CatalogID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
		}

		rules := bidding.LotRules(catalog.BidIncrement)
		now := s.now()
		bc := bidding.BidContext{
			Open:           lotOpen(lot, now),
			DepositBalance: bidder.DepositBalance,
			CurrentBid:     lot.CurrentBid,
			StartingPrice:  lot.StartingPrice,
		}
		if err := rules.Validate(bc, input.Amount); err != nil {
			return s.rejectBid(err)
		}

		won, err := repo.TryOutbidLot(ctx, input.LotID, input.BidderID, input.Amount, catalog.BidIncrement, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply bid")
		}
		if !won {
			// Lost the race. Re-read and report the state that beat us.
			fresh, err := repo.FindLot(ctx, input.LotID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload lot")
			}
			bc.Open = lotOpen(fresh, s.now())
			bc.CurrentBid = fresh.CurrentBid
			if verr := rules.Validate(bc, input.Amount); verr != nil {
				return s.rejectBid(verr)
			}
			return s.rejectBid(&bidding.Rejection{
				Reason:        bidding.ReasonBidTooLow,
				CurrentAmount: fresh.CurrentBid,
				MinimumBid:    rules.MinimumBid(bc),
			})
		}

		if err := repo.AppendLotBid(ctx, &models.CatalogBid{
			LotID:    input.LotID,
			BidderID: input.BidderID,
			Amount:   input.Amount,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append bid")
		}

		if prev := lot.HighestBidderID; prev != nil && *prev != input.BidderID {
			lotID := lot.ID
			if err := s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOutbid,
				AggregateType: enums.AggregateCatalogLot,
				AggregateID:   lot.ID,
				Actor:         &outbox.ActorRef{UserID: input.BidderID, Role: "bidder"},
				Data: outbox.OutbidData{
					LotID:          &lotID,
					OutbidUserID:   *prev,
					NewHighestBid:  input.Amount,
					PreviousAmount: lot.CurrentBid,
				},
				Version: 1,
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "emit outbid")
			}
		}

		result = &BidResult{Amount: input.Amount, EndTime: *lot.EndTime}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncAccepted(lotBidContextLabel)
	return result, nil
}

// lotOpen reports whether the lot is taking bids right now.
func lotOpen(lot *models.CatalogLot, now time.Time) bool {
	return lot.Status == enums.LotStatusActive && lot.EndTime != nil && now.Before(*lot.EndTime)
}

// rejectBid converts a validation failure into the API error and counts it.
func (s *service) rejectBid(err error) error {
	var rej *bidding.Rejection
	if !errors.As(err, &rej) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "bid validation")
	}
	s.metrics.IncRejected(lotBidContextLabel, string(rej.Reason))
	return rejectionError(rej)
}

// rejectionError maps validator reasons onto the error taxonomy, matching the
// auction variant so API consumers see one shape.
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

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Catalog, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog id required")
	}
	catalog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog")
	}
	return catalog, nil
}

func (s *service) List(ctx context.Context, statuses []enums.CatalogStatus, params pagination.Params) (*Page, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
	}
	rows, err := s.repo.List(ctx, statuses, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list catalogs")
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

func (s *service) ListLotBids(ctx context.Context, lotID uuid.UUID, params pagination.Params) (*BidPage, error) {
	if lotID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lot id required")
	}
	rows, err := s.repo.ListLotBids(ctx, lotID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list lot bids")
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
