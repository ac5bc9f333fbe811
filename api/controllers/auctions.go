package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/api/responses"
	"github.com/mazadcars/mazad-backend/api/validators"
	"github.com/mazadcars/mazad-backend/internal/auctions"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

type createAuctionRequest struct {
	VehicleID         string    `json:"vehicle_id" validate:"required,uuid"`
	StartTime         time.Time `json:"start_time" validate:"required"`
	EndTime           time.Time `json:"end_time" validate:"required"`
	StartingPrice     int64     `json:"starting_price" validate:"required,gt=0"`
	EntryFee          *int64    `json:"entry_fee,omitempty" validate:"omitempty,min=0"`
	LaunchImmediately bool      `json:"launch_immediately,omitempty"`
}

type bidRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type extendAuctionRequest struct {
	Minutes int `json:"minutes" validate:"required,gt=0"`
}

// CreateAuction registers a single-vehicle auction for an operator.
func CreateAuction(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		var payload createAuctionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicleID, err := uuid.Parse(payload.VehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id"))
			return
		}

		auction, err := svc.Create(r.Context(), auctions.CreateInput{
			VehicleID:         vehicleID,
			StartTime:         payload.StartTime,
			EndTime:           payload.EndTime,
			StartingPrice:     payload.StartingPrice,
			EntryFee:          payload.EntryFee,
			LaunchImmediately: payload.LaunchImmediately,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, auction)
	}
}

// PlaceAuctionBid submits a bid on behalf of the authenticated bidder.
func PlaceAuctionBid(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bidderID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload bidRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.PlaceBid(r.Context(), auctions.PlaceBidInput{
			AuctionID: auctionID,
			BidderID:  bidderID,
			Amount:    payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PayAuctionEntry records the bidder's one-time entry fee for an auction.
func PayAuctionEntry(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.PayEntry(r.Context(), auctionID, userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "paid"})
	}
}

// SetAuctionStatus applies an operator-driven lifecycle transition.
func SetAuctionStatus(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := enums.ParseAuctionStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		auction, err := svc.SetStatus(r.Context(), auctionID, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, auction)
	}
}

// ExtendAuction pushes the auction end time out by whole minutes.
func ExtendAuction(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload extendAuctionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		auction, err := svc.ExtendTime(r.Context(), auctionID, payload.Minutes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, auction)
	}
}

// GetAuction returns one auction with derived read fields.
func GetAuction(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), auctionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

// ListAuctions returns a cursor page, optionally filtered by status.
func ListAuctions(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var statuses []enums.AuctionStatus
		for _, token := range splitStatusFilter(r) {
			status, parseErr := enums.ParseAuctionStatus(token)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			statuses = append(statuses, status)
		}

		page, err := svc.List(r.Context(), statuses, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ListAuctionBids returns the bid history page for one auction.
func ListAuctionBids(svc auctions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auction service unavailable"))
			return
		}

		auctionID, err := parseUUIDParam(r, "auctionId", "auction id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListBids(r.Context(), auctionID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}
