package scheduler

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mazadcars/mazad-backend/internal/auctions"
	"github.com/mazadcars/mazad-backend/pkg/db/models"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	"github.com/mazadcars/mazad-backend/pkg/outbox"
)

const lifecycleSweepJobName = "auction_lifecycle_sweep"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// SweepResult reports what one lifecycle pass changed.
type SweepResult struct {
	Activated int `json:"activated"`
	Ended     int `json:"ended"`
}

// LifecycleSweepJob flips due auctions between statuses on the clock:
// draft auctions whose window has opened become active, active auctions
// past their end time become ended. Status guards make the sweep
// idempotent and safe to run concurrently.
type LifecycleSweepJob struct {
	repo   auctions.Repository
	tx     txRunner
	outbox outboxPublisher
	logg   *logger.Logger
	now    func() time.Time
}

// NewLifecycleSweepJob builds the sweep job.
func NewLifecycleSweepJob(repo auctions.Repository, tx txRunner, ob outboxPublisher, logg *logger.Logger) (*LifecycleSweepJob, error) {
	if repo == nil {
		return nil, fmt.Errorf("auctions repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &LifecycleSweepJob{
		repo:   repo,
		tx:     tx,
		outbox: ob,
		logg:   logg,
		now:    time.Now,
	}, nil
}

// Name implements Job.
func (j *LifecycleSweepJob) Name() string {
	return lifecycleSweepJobName
}

// Run implements Job.
func (j *LifecycleSweepJob) Run(ctx context.Context) error {
	_, err := j.Sweep(ctx)
	return err
}

// Sweep runs one lifecycle pass. Also called directly by the admin
// endpoint for externally triggered cadences.
func (j *LifecycleSweepJob) Sweep(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}
	now := j.now()

	err := j.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := j.repo.WithTx(tx)

		activated, err := repo.ActivateDue(ctx, now)
		if err != nil {
			return fmt.Errorf("activate due: %w", err)
		}
		for i := range activated {
			if err := j.emitStart(ctx, tx, &activated[i]); err != nil {
				return err
			}
		}
		result.Activated = len(activated)

		ended, err := repo.EndDue(ctx, now)
		if err != nil {
			return fmt.Errorf("end due: %w", err)
		}
		for i := range ended {
			if err := j.emitWon(ctx, tx, &ended[i]); err != nil {
				return err
			}
		}
		result.Ended = len(ended)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if j.logg != nil && (result.Activated > 0 || result.Ended > 0) {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"activated": result.Activated,
			"ended":     result.Ended,
		})
		j.logg.Info(logCtx, "lifecycle sweep applied changes")
	}
	return result, nil
}

func (j *LifecycleSweepJob) emitStart(ctx context.Context, tx *gorm.DB, auction *models.Auction) error {
	err := j.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
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
		return fmt.Errorf("emit auction_start: %w", err)
	}
	return nil
}

func (j *LifecycleSweepJob) emitWon(ctx context.Context, tx *gorm.DB, auction *models.Auction) error {
	if auction.HighestBidderID == nil {
		return nil
	}
	auctionID := auction.ID
	err := j.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
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
		return fmt.Errorf("emit won: %w", err)
	}
	return nil
}
