package controllers

import (
	"net/http"

	"github.com/mazadcars/mazad-backend/api/responses"
	"github.com/mazadcars/mazad-backend/internal/users"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/logger"
)

// MyTier reports the authenticated bidder's deposit balance and resulting tier.
func MyTier(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.TierStatus(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
