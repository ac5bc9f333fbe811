package catalogs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

// Repository persists catalogs, their lots and lot bids.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, catalog *models.Catalog) (*models.Catalog, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Catalog, error)
	List(ctx context.Context, statuses []enums.CatalogStatus, params pagination.Params) ([]models.Catalog, error)

	FindLot(ctx context.Context, lotID uuid.UUID) (*models.CatalogLot, error)
	// FindActiveLot returns the catalog's single active lot, or
	// gorm.ErrRecordNotFound when no lot is running.
	FindActiveLot(ctx context.Context, catalogID uuid.UUID) (*models.CatalogLot, error)
	// NextPendingLot returns the pending lot with the lowest lot_order.
	NextPendingLot(ctx context.Context, catalogID uuid.UUID) (*models.CatalogLot, error)

	// TryOutbidLot runs the conditional update that decides lot bid races.
	// The floor is current_bid + increment once a bid stands, the starting
	// price before that. Returns true when this bid took the highest spot.
	TryOutbidLot(ctx context.Context, lotID, bidderID uuid.UUID, amount, increment int64, now time.Time) (bool, error)
	AppendLotBid(ctx context.Context, bid *models.CatalogBid) error
	ListLotBids(ctx context.Context, lotID uuid.UUID, params pagination.Params) ([]models.CatalogBid, error)

	TransitionCatalogStatus(ctx context.Context, catalogID uuid.UUID, from []enums.CatalogStatus, to enums.CatalogStatus, extra map[string]any) (bool, error)
	TransitionLotStatus(ctx context.Context, lotID uuid.UUID, from []enums.LotStatus, to enums.LotStatus, extra map[string]any) (bool, error)
	SetLotEndTime(ctx context.Context, lotID uuid.UUID, endTime time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalogs repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, catalog *models.Catalog) (*models.Catalog, error) {
	if catalog.ID == uuid.Nil {
		catalog.ID = uuid.New()
	}
	for i := range catalog.Lots {
		if catalog.Lots[i].ID == uuid.Nil {
			catalog.Lots[i].ID = uuid.New()
		}
		catalog.Lots[i].CatalogID = catalog.ID
	}
	if err := r.db.WithContext(ctx).Create(catalog).Error; err != nil {
		return nil, err
	}
	return catalog, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Catalog, error) {
	var catalog models.Catalog
	err := r.db.WithContext(ctx).
		Preload("Lots", func(db *gorm.DB) *gorm.DB {
			return db.Order("lot_order ASC")
		}).
		Preload("Lots.Vehicle").
		Where("id = ?", id).
		First(&catalog).Error
	if err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (r *repository) List(ctx context.Context, statuses []enums.CatalogStatus, params pagination.Params) ([]models.Catalog, error) {
	query := r.db.WithContext(ctx)
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

	var rows []models.Catalog
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindLot(ctx context.Context, lotID uuid.UUID) (*models.CatalogLot, error) {
	var lot models.CatalogLot
	err := r.db.WithContext(ctx).
		Where("id = ?", lotID).
		First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *repository) FindActiveLot(ctx context.Context, catalogID uuid.UUID) (*models.CatalogLot, error) {
	var lot models.CatalogLot
	err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND status = ?", catalogID, enums.LotStatusActive).
		First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *repository) NextPendingLot(ctx context.Context, catalogID uuid.UUID) (*models.CatalogLot, error) {
	var lot models.CatalogLot
	err := r.db.WithContext(ctx).
		Where("catalog_id = ? AND status = ?", catalogID, enums.LotStatusPending).
		Order("lot_order ASC").
		First(&lot).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// TryOutbidLot mirrors the auction compare-and-set with the increment floor
// folded into the guard. Under concurrency exactly one contender updates the
// row; everyone else sees zero rows and gets re-evaluated.
func (r *repository) TryOutbidLot(ctx context.Context, lotID, bidderID uuid.UUID, amount, increment int64, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE catalog_lots
		SET current_bid = ?, highest_bidder_id = ?, updated_at = ?
		WHERE id = ?
		  AND status = ?
		  AND (CASE WHEN current_bid > 0 THEN current_bid + ? ELSE starting_price END) <= ?`,
		amount, bidderID, now, lotID, enums.LotStatusActive, increment, amount,
	)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) AppendLotBid(ctx context.Context, bid *models.CatalogBid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(bid).Error
}

func (r *repository) ListLotBids(ctx context.Context, lotID uuid.UUID, params pagination.Params) ([]models.CatalogBid, error) {
	query := r.db.WithContext(ctx).Where("lot_id = ?", lotID)

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

	var rows []models.CatalogBid
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) TransitionCatalogStatus(ctx context.Context, catalogID uuid.UUID, from []enums.CatalogStatus, to enums.CatalogStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).Model(&models.Catalog{}).
		Where("id = ? AND status IN ?", catalogID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) TransitionLotStatus(ctx context.Context, lotID uuid.UUID, from []enums.LotStatus, to enums.LotStatus, extra map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	result := r.db.WithContext(ctx).Model(&models.CatalogLot{}).
		Where("id = ? AND status IN ?", lotID, from).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SetLotEndTime(ctx context.Context, lotID uuid.UUID, endTime time.Time) error {
	return r.db.WithContext(ctx).Model(&models.CatalogLot{}).
		Where("id = ?", lotID).
		Update("end_time", endTime).Error
}
