package auctions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			deposit_balance INTEGER NOT NULL DEFAULT 0,
			is_operator INTEGER NOT NULL DEFAULT 0,
			whatsapp_alerts INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE vehicles (
			id TEXT PRIMARY KEY,
			make TEXT NOT NULL,
			model TEXT NOT NULL,
			year INTEGER NOT NULL,
			mileage INTEGER NOT NULL DEFAULT 0,
			damage_type TEXT,
			fines_cleared INTEGER NOT NULL DEFAULT 0,
			condition_report TEXT NOT NULL DEFAULT '{}',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE auctions (
			id TEXT PRIMARY KEY,
			vehicle_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			starting_price INTEGER NOT NULL,
			current_highest_bid INTEGER NOT NULL DEFAULT 0,
			highest_bidder_id TEXT,
			reserve_price INTEGER,
			entry_fee INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX ux_auctions_open_vehicle ON auctions (vehicle_id)
			WHERE status IN ('draft', 'active')`,
		`CREATE TABLE bids (
			id TEXT PRIMARY KEY,
			auction_id TEXT NOT NULL,
			bidder_id TEXT NOT NULL,
			amount INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE auction_entries (
			id TEXT PRIMARY KEY,
			auction_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			fee_paid INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE UNIQUE INDEX ux_auction_entries_auction_user ON auction_entries (auction_id, user_id)`,
		`CREATE TABLE transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			type TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			amount INTEGER NOT NULL,
			reference_id TEXT,
			description TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE catalog_lots (
			id TEXT PRIMARY KEY,
			catalog_id TEXT NOT NULL,
			vehicle_id TEXT NOT NULL,
			lot_order INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			starting_price INTEGER NOT NULL,
			current_bid INTEGER NOT NULL DEFAULT 0,
			highest_bidder_id TEXT,
			end_time DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE outbox_events (
			id TEXT PRIMARY KEY,
			event_type TEXT NOT NULL,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			published_at DATETIME,
			attempt_count INTEGER NOT NULL DEFAULT 0,
			last_error TEXT
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedVehicle(t *testing.T, conn *gorm.DB) *models.Vehicle {
	t.Helper()
	vehicle := &models.Vehicle{
		ID:    uuid.New(),
		Make:  "Toyota",
		Model: "Land Cruiser",
		Year:  2021,
	}
	require.NoError(t, conn.Create(vehicle).Error)
	return vehicle
}

func seedAuction(t *testing.T, conn *gorm.DB, status enums.AuctionStatus, startingPrice int64, end time.Time) *models.Auction {
	t.Helper()
	vehicle := seedVehicle(t, conn)
	auction := &models.Auction{
		ID:            uuid.New(),
		VehicleID:     vehicle.ID,
		Status:        status,
		StartTime:     end.Add(-time.Hour),
		EndTime:       end,
		StartingPrice: startingPrice,
		EntryFee:      200,
	}
	require.NoError(t, conn.Create(auction).Error)
	return auction
}

func TestTryOutbidFirstBidUsesStartingPrice(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	auction := seedAuction(t, conn, enums.AuctionStatusActive, 20_000, time.Now().Add(time.Hour))
	bidder := uuid.New()

	// equal to the starting price loses the strictly-greater floor
	won, err := repo.TryOutbid(ctx, auction.ID, bidder, 20_000, time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	won, err = repo.TryOutbid(ctx, auction.ID, bidder, 20_001, time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	fresh, err := repo.FindByID(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20_001), fresh.CurrentHighestBid)
	require.NotNil(t, fresh.HighestBidderID)
	assert.Equal(t, bidder, *fresh.HighestBidderID)
}

func TestTryOutbidMonotonicity(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	auction := seedAuction(t, conn, enums.AuctionStatusActive, 20_000, time.Now().Add(time.Hour))

	first := uuid.New()
	won, err := repo.TryOutbid(ctx, auction.ID, first, 25_000, time.Now())
	require.NoError(t, err)
	require.True(t, won)

	// equal and lower bids always lose once a higher bid stands
	second := uuid.New()
	won, err = repo.TryOutbid(ctx, auction.ID, second, 25_000, time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	won, err = repo.TryOutbid(ctx, auction.ID, second, 24_000, time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	fresh, err := repo.FindByID(ctx, auction.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(25_000), fresh.CurrentHighestBid)
	require.NotNil(t, fresh.HighestBidderID)
	assert.Equal(t, first, *fresh.HighestBidderID)
}

func TestTryOutbidStampsCallerClock(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	auction := seedAuction(t, conn, enums.AuctionStatusActive, 20_000, time.Now().Add(time.Hour))
	stamp := time.Now().Add(-3 * time.Hour)

	won, err := repo.TryOutbid(ctx, auction.ID, uuid.New(), 21_000, stamp)
	require.NoError(t, err)
	require.True(t, won)

	fresh, err := repo.FindByID(ctx, auction.ID)
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, fresh.UpdatedAt, time.Second)
}

func TestTryOutbidRejectsNonActiveStatus(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for _, status := range []enums.AuctionStatus{
		enums.AuctionStatusDraft,
		enums.AuctionStatusEnded,
		enums.AuctionStatusSettled,
		enums.AuctionStatusCancelled,
	} {
		auction := seedAuction(t, conn, status, 20_000, time.Now().Add(time.Hour))
		won, err := repo.TryOutbid(ctx, auction.ID, uuid.New(), 100_000, time.Now())
		require.NoError(t, err)
		assert.False(t, won, "status %s should not accept bids", status)
	}
}

func TestTransitionStatusGuards(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	auction := seedAuction(t, conn, enums.AuctionStatusDraft, 20_000, time.Now().Add(time.Hour))

	flipped, err := repo.TransitionStatus(ctx, auction.ID,
		[]enums.AuctionStatus{enums.AuctionStatusDraft}, enums.AuctionStatusActive, nil)
	require.NoError(t, err)
	assert.True(t, flipped)

	// second flip from draft fails the guard
	flipped, err = repo.TransitionStatus(ctx, auction.ID,
		[]enums.AuctionStatus{enums.AuctionStatusDraft}, enums.AuctionStatusActive, nil)
	require.NoError(t, err)
	assert.False(t, flipped)
}

func TestActivateAndEndDue(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	now := time.Now()

	pastDraft := seedAuction(t, conn, enums.AuctionStatusDraft, 20_000, now.Add(time.Hour))
	require.NoError(t, conn.Model(&models.Auction{}).Where("id = ?", pastDraft.ID).
		Update("start_time", now.Add(-time.Minute)).Error)

	futureDraft := seedAuction(t, conn, enums.AuctionStatusDraft, 20_000, now.Add(2*time.Hour))
	require.NoError(t, conn.Model(&models.Auction{}).Where("id = ?", futureDraft.ID).
		Update("start_time", now.Add(time.Hour)).Error)

	expiredActive := seedAuction(t, conn, enums.AuctionStatusActive, 20_000, now.Add(-time.Minute))

	activated, err := repo.ActivateDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, activated, 1)
	assert.Equal(t, pastDraft.ID, activated[0].ID)

	ended, err := repo.EndDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, ended, 1)
	assert.Equal(t, expiredActive.ID, ended[0].ID)

	// second sweep finds nothing
	activated, err = repo.ActivateDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, activated)
	ended, err = repo.EndDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, ended)
}

func TestListBidsPagination(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	auction := seedAuction(t, conn, enums.AuctionStatusActive, 10_000, time.Now().Add(time.Hour))
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		bid := &models.Bid{
			ID:        uuid.New(),
			AuctionID: auction.ID,
			BidderID:  uuid.New(),
			Amount:    int64(10_000 + i*500),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, conn.Create(bid).Error)
	}

	firstPage, err := repo.ListBids(ctx, auction.ID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 3) // limit + 1 buffer
	assert.True(t, firstPage[0].Amount > firstPage[1].Amount, "newest first")

	cursor := pagination.EncodeCursor(pagination.Cursor{
		CreatedAt: firstPage[1].CreatedAt,
		ID:        firstPage[1].ID,
	})
	secondPage, err := repo.ListBids(ctx, auction.ID, pagination.Params{Limit: 2, Cursor: cursor})
	require.NoError(t, err)
	require.NotEmpty(t, secondPage)
	assert.True(t, secondPage[0].CreatedAt.Before(firstPage[1].CreatedAt))
}
