package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mazadcars/mazad-backend/api/responses"
	"github.com/mazadcars/mazad-backend/api/validators"
	"github.com/mazadcars/mazad-backend/internal/catalogs"
	"github.com/mazadcars/mazad-backend/pkg/enums"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/logger"
	"github.com/mazadcars/mazad-backend/pkg/pagination"
)

type createCatalogLotRequest struct {
	VehicleID     string `json:"vehicle_id" validate:"required,uuid"`
	StartingPrice int64  `json:"starting_price" validate:"required,gt=0"`
}

type createCatalogRequest struct {
	Title        string                    `json:"title" validate:"required,min=1"`
	ScheduledAt  time.Time                 `json:"scheduled_at" validate:"required"`
	BidIncrement int64                     `json:"bid_increment" validate:"required,gt=0"`
	Lots         []createCatalogLotRequest `json:"lots" validate:"required,min=1,dive"`
}

type advanceLotRequest struct {
	Outcome string `json:"outcome" validate:"required"`
}

type extendLotRequest struct {
	Seconds int `json:"seconds" validate:"required,gt=0"`
}

// CreateCatalog schedules a sequential catalog session with its lot list.
func CreateCatalog(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createCatalogRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lots := make([]catalogs.LotInput, 0, len(payload.Lots))
		for _, lot := range payload.Lots {
			vehicleID, err := uuid.Parse(lot.VehicleID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id"))
				return
			}
			lots = append(lots, catalogs.LotInput{
				VehicleID:     vehicleID,
				StartingPrice: lot.StartingPrice,
			})
		}

		catalog, err := svc.Create(r.Context(), catalogs.CreateInput{
			Title:        payload.Title,
			ScheduledAt:  payload.ScheduledAt,
			BidIncrement: payload.BidIncrement,
			Lots:         lots,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, catalog)
	}
}

// StartCatalog opens the session and activates the first lot.
func StartCatalog(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		catalogID, err := parseUUIDParam(r, "catalogId", "catalog id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		catalog, err := svc.Start(r.Context(), catalogID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog)
	}
}

// AdvanceCatalogLot closes the active lot with the given outcome and opens the next one.
func AdvanceCatalogLot(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		catalogID, err := parseUUIDParam(r, "catalogId", "catalog id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload advanceLotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outcome, err := enums.ParseLotOutcome(strings.TrimSpace(payload.Outcome))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid outcome"))
			return
		}

		result, err := svc.AdvanceLot(r.Context(), catalogID, outcome)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ExtendCatalogLot adds seconds to the active lot's timer.
func ExtendCatalogLot(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		catalogID, err := parseUUIDParam(r, "catalogId", "catalog id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload extendLotRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lot, err := svc.ExtendLot(r.Context(), catalogID, payload.Seconds)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, lot)
	}
}

// PlaceLotBid submits a bid on the active lot for the authenticated bidder.
func PlaceLotBid(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		lotID, err := parseUUIDParam(r, "lotId", "lot id")
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

		result, err := svc.PlaceBid(r.Context(), catalogs.PlaceBidInput{
			LotID:    lotID,
			BidderID: bidderID,
			Amount:   payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetCatalog returns one catalog with its ordered lots.
func GetCatalog(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		catalogID, err := parseUUIDParam(r, "catalogId", "catalog id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		catalog, err := svc.Get(r.Context(), catalogID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog)
	}
}

// ListCatalogs returns a cursor page, optionally filtered by status.
func ListCatalogs(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var statuses []enums.CatalogStatus
		for _, token := range splitStatusFilter(r) {
			status, parseErr := enums.ParseCatalogStatus(token)
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

// ListLotBids returns the bid history page for one lot.
func ListLotBids(svc catalogs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		lotID, err := parseUUIDParam(r, "lotId", "lot id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListLotBids(r.Context(), lotID, pagination.Params{
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
