package controllers

import (
	"net/http"

	"github.com/mazadcars/mazad-backend/api/responses"
	"github.com/mazadcars/mazad-backend/internal/scheduler"
	pkgerrors "github.com/mazadcars/mazad-backend/pkg/errors"
	"github.com/mazadcars/mazad-backend/pkg/logger"
)

// TriggerSweep runs one lifecycle sweep pass on demand.
func TriggerSweep(job *scheduler.LifecycleSweepJob, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if job == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sweep job unavailable"))
			return
		}

		result, err := job.Sweep(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
