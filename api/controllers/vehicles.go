package controllers

import (
	"net/http"

	"github.com/mazadcars/mazad-backend/api/responses"
	"github.com/mazadcars/mazad-backend/api/validators"
	"github.com/mazadcars/mazad-backend/internal/vehicles"
	dbtypes "github.com/mazadcars/mazad-backend/pkg/db/types"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/logger"
)

type createVehicleRequest struct {
	Make            string                  `json:"make" validate:"required,min=1"`
	Model           string                  `json:"model" validate:"required,min=1"`
	Year            int                     `json:"year" validate:"required,gt=1900"`
	Mileage         int64                   `json:"mileage" validate:"min=0"`
	DamageType      *string                 `json:"damage_type,omitempty"`
	FinesCleared    bool                    `json:"fines_cleared"`
	ConditionReport dbtypes.ConditionReport `json:"condition_report"`
}

// CreateVehicle registers a vehicle in the operator's inventory.
func CreateVehicle(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		var payload createVehicleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Create(r.Context(), vehicles.CreateInput{
			Make:            payload.Make,
			Model:           payload.Model,
			Year:            payload.Year,
			Mileage:         payload.Mileage,
			DamageType:      payload.DamageType,
			FinesCleared:    payload.FinesCleared,
			ConditionReport: payload.ConditionReport,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vehicle)
	}
}

// GetVehicle returns one vehicle by id.
func GetVehicle(svc vehicles.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vehicle service unavailable"))
			return
		}

		vehicleID, err := parseUUIDParam(r, "vehicleId", "vehicle id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicle, err := svc.Get(r.Context(), vehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicle)
	}
}
