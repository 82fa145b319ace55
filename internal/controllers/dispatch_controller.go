package controllers

import (
	"net/http"
	"time"

	"giftdrip/internal/dispatch"
	"giftdrip/internal/providers"
	"giftdrip/internal/structures"
)

const dispatchSecretHeader = "X-Push-Dispatch-Secret"

// DispatchController exposes the administrative trigger for one push
// dispatch cycle. The caller (an external cron) authorizes with a
// shared secret header; the endpoint refuses outright when no secret
// is configured server-side rather than silently succeeding.
type DispatchController struct {
	logger providers.Logger
	cycle  dispatch.Runner
	conf   *structures.Config
}

func NewDispatchController(logger providers.Logger, cycle dispatch.Runner, conf *structures.Config) *DispatchController {
	return &DispatchController{
		logger: logger,
		cycle:  cycle,
		conf:   conf,
	}
}

type dispatchResponse struct {
	Dispatched bool              `json:"dispatched"`
	Reason     string            `json:"reason,omitempty"`
	Summary    *dispatch.Summary `json:"summary,omitempty"`
}

func (dc *DispatchController) Dispatch(w http.ResponseWriter, r *http.Request) {
	if dc.conf.Push.DispatchSecret == "" {
		writeJSON(w, http.StatusServiceUnavailable, dispatchResponse{
			Reason: "Push dispatch secret is not configured.",
		})
		return
	}

	if r.Header.Get(dispatchSecretHeader) != dc.conf.Push.DispatchSecret {
		dc.logger.Warnf(providers.TypeDispatch, "Unauthorized dispatch call from %s", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, dispatchResponse{
			Reason: "Unauthorized dispatch call.",
		})
		return
	}

	summary, err := dc.cycle.Run(r.Context(), time.Now())
	if err != nil {
		dc.logger.Errorf(providers.TypeDispatch, "Dispatch cycle failed: %s", err)
		writeJSON(w, http.StatusInternalServerError, dispatchResponse{
			Reason: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, dispatchResponse{
		Dispatched: true,
		Summary:    &summary,
	})
}
