package outbox

import "github.com/google/uuid"

// Event data shapes consumed by the notification dispatcher. Field names are
// part of the published contract.

// NewCarData announces a freshly listed vehicle.
type NewCarData struct {
	AuctionID uuid.UUID `json:"auctionId"`
	VehicleID uuid.UUID `json:"vehicleId"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
}

// AuctionStartData announces that bidding has opened.
type AuctionStartData struct {
	AuctionID     uuid.UUID `json:"auctionId"`
	VehicleID     uuid.UUID `json:"vehicleId"`
	StartingPrice int64     `json:"startingPrice"`
	EndTime       string    `json:"endTime"`
}

// CatalogStartData announces that a catalog session has opened its first lot.
type CatalogStartData struct {
	CatalogID  uuid.UUID `json:"catalogId"`
	Title      string    `json:"title"`
	FirstLotID uuid.UUID `json:"firstLotId"`
	EndTime    string    `json:"endTime"`
}

// OutbidData targets the displaced highest bidder.
type OutbidData struct {
	AuctionID      uuid.UUID  `json:"auctionId"`
	LotID          *uuid.UUID `json:"lotId,omitempty"`
	OutbidUserID   uuid.UUID  `json:"outbidUserId"`
	NewHighestBid  int64      `json:"newHighestBid"`
	PreviousAmount int64      `json:"previousAmount"`
}

// WonData targets the winning bidder when a sale closes.
type WonData struct {
	AuctionID    *uuid.UUID `json:"auctionId,omitempty"`
	LotID        *uuid.UUID `json:"lotId,omitempty"`
	VehicleID    uuid.UUID  `json:"vehicleId"`
	WinnerUserID uuid.UUID  `json:"winnerUserId"`
	FinalPrice   int64      `json:"finalPrice"`
}
