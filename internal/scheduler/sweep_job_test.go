package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/internal/auctions"
	dbpkg "github.com/mazadcars/mazad-backend/pkg/db"
	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/outbox"
)

func newSweepDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	statements := []string{
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

func seedSweepAuction(t *testing.T, conn *gorm.DB, status enums.AuctionStatus, start, end time.Time, bidder *uuid.UUID) *models.Auction {
	t.Helper()
	vehicle := &models.Vehicle{ID: uuid.New(), Make: "Kia", Model: "Sportage", Year: 2021}
	require.NoError(t, conn.Create(vehicle).Error)

	auction := &models.Auction{
		ID:            uuid.New(),
		VehicleID:     vehicle.ID,
		Status:        status,
		StartTime:     start,
		EndTime:       end,
		StartingPrice: 15_000,
	}
	if bidder != nil {
		auction.HighestBidderID = bidder
		auction.CurrentHighestBid = 18_000
	}
	require.NoError(t, conn.Create(auction).Error)
	return auction
}

func TestLifecycleSweep(t *testing.T) {
	conn := newSweepDB(t)
	now := time.Now()

	job, err := NewLifecycleSweepJob(
		auctions.NewRepository(conn),
		dbpkg.NewFromGorm(conn),
		outbox.NewService(outbox.NewRepository(conn), nil),
		nil,
	)
	require.NoError(t, err)

	winner := uuid.New()
	dueDraft := seedSweepAuction(t, conn, enums.AuctionStatusDraft, now.Add(-time.Minute), now.Add(time.Hour), nil)
	futureDraft := seedSweepAuction(t, conn, enums.AuctionStatusDraft, now.Add(time.Hour), now.Add(2*time.Hour), nil)
	expired := seedSweepAuction(t, conn, enums.AuctionStatusActive, now.Add(-2*time.Hour), now.Add(-time.Minute), &winner)
	running := seedSweepAuction(t, conn, enums.AuctionStatusActive, now.Add(-time.Hour), now.Add(time.Hour), nil)
	// ended with no bids gets no won event
	seedSweepAuction(t, conn, enums.AuctionStatusActive, now.Add(-2*time.Hour), now.Add(-time.Minute), nil)

	result, err := job.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Activated)
	assert.Equal(t, 2, result.Ended)

	statusOf := func(id uuid.UUID) enums.AuctionStatus {
		var auction models.Auction
		require.NoError(t, conn.First(&auction, "id = ?", id).Error)
		return auction.Status
	}
	assert.Equal(t, enums.AuctionStatusActive, statusOf(dueDraft.ID))
	assert.Equal(t, enums.AuctionStatusDraft, statusOf(futureDraft.ID))
	assert.Equal(t, enums.AuctionStatusEnded, statusOf(expired.ID))
	assert.Equal(t, enums.AuctionStatusActive, statusOf(running.ID))

	countEvents := func(eventType enums.OutboxEventType) int64 {
		var n int64
		require.NoError(t, conn.Model(&models.OutboxEvent{}).
			Where("event_type = ?", eventType).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), countEvents(enums.EventAuctionStart))
	assert.Equal(t, int64(1), countEvents(enums.EventWon))

	// second pass is a no-op and emits nothing new
	result, err = job.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Activated)
	assert.Equal(t, 0, result.Ended)
	assert.Equal(t, int64(1), countEvents(enums.EventAuctionStart))
	assert.Equal(t, int64(1), countEvents(enums.EventWon))
}
