package auctions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

// Repository persists auctions, bids and entry records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, auction *models.Auction) (*models.Auction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	List(ctx context.Context, statuses []enums.AuctionStatus, params pagination.Params) ([]models.Auction, error)

	// TryOutbid runs the conditional update that decides bid races. It
	// returns true when this bid took the highest spot.
	TryOutbid(ctx context.Context, auctionID, bidderID uuid.UUID, amount int64, now time.Time) (bool, error)
	AppendBid(ctx context.Context, bid *models.Bid) error
	ListBids(ctx context.Context, auctionID uuid.UUID, params pagination.Params) ([]models.Bid, error)

	SetEndTime(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error
	// TransitionStatus flips status only when the row is still in one of
	// the expected source statuses. Returns false when the guard failed.
	TransitionStatus(ctx context.Context, auctionID uuid.UUID, from []enums.AuctionStatus, to enums.AuctionStatus, extra map[string]any) (bool, error)

	HasEntry(ctx context.Context, auctionID, userID uuid.UUID) (bool, error)
	CreateEntry(ctx context.Context, entry *models.AuctionEntry) error

	// ActivateDue and EndDue drive the lifecycle sweep. Both flip the due
	// rows in one guarded update and return exactly the rows that update
	// touched, so a sweep racing another caller never over-counts.
	ActivateDue(ctx context.Context, now time.Time) ([]models.Auction, error)
	EndDue(ctx context.Context, now time.Time) ([]models.Auction, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an auctions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, auction *models.Auction) (*models.Auction, error) {
	if auction.ID == uuid.Nil {
		auction.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(auction).Error; err != nil {
		return nil, err
	}
	return auction, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Where("id = ?", id).
		First(&auction).Error
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

func (r *repository) List(ctx context.Context, statuses []enums.AuctionStatus, params pagination.Params) ([]models.Auction, error) {
	query := r.db.WithContext(ctx).Preload("Vehicle")
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Auction
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	return rows, err
}

// TryOutbid is the single-statement compare-and-set. The effective floor is
// the standing bid when one exists, the starting price otherwise; the status
// guard keeps bids out of anything but active auctions. Under concurrency
// exactly one contender updates the row; everyone else sees zero rows and
// gets re-evaluated against the new state.
func (r *repository) TryOutbid(ctx context.Context, auctionID, bidderID uuid.UUID, amount int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE auctions
		SET current_highest_bid = ?, highest_bidder_id = ?, updated_at = ?
		WHERE id = ?
		  AND status = ?
		  AND (CASE WHEN current_highest_bid > 0 THEN current_highest_bid ELSE starting_price END) < ?`,
		amount, bidderID, now, auctionID, enums.AuctionStatusActive, amount,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) AppendBid(ctx context.Context, bid *models.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *repository) ListBids(ctx context.Context, auctionID uuid.UUID, params pagination.Params) ([]models.Bid, error) {
	query := r.db.WithContext(ctx).Where("auction_id = ?", auctionID)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Bid
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) SetEndTime(ctx context.Context, auctionID uuid.UUID, endTime time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ?", auctionID).
		Update("end_time", endTime).Error
}

func (r *repository) TransitionStatus(ctx context.Context, auctionID uuid.UUID, from []enums.AuctionStatus, to enums.AuctionStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).Model(&models.Auction{}).
		Where("id = ? AND status IN ?", auctionID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) HasEntry(ctx context.Context, auctionID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AuctionEntry{}).
		Where("auction_id = ? AND user_id = ?", auctionID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateEntry(ctx context.Context, entry *models.AuctionEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ActivateDue(ctx context.Context, now time.Time) ([]models.Auction, error) {
	var flipped []models.Auction
	result := r.db.WithContext(ctx).
		Model(&flipped).
		Clauses(clause.Returning{}).
		Where("status = ? AND start_time <= ? AND end_time > ?", enums.AuctionStatusDraft, now, now).
		Update("status", enums.AuctionStatusActive)
	if result.Error != nil {
		return nil, result.Error
	}
	return flipped, nil
}

func (r *repository) EndDue(ctx context.Context, now time.Time) ([]models.Auction, error) {
	var flipped []models.Auction
	result := r.db.WithContext(ctx).
		Model(&flipped).
		Clauses(clause.Returning{}).
		Where("status = ? AND end_time <= ?", enums.AuctionStatusActive, now).
		Update("status", enums.AuctionStatusEnded)
	if result.Error != nil {
		return nil, result.Error
	}
	return flipped, nil
}
