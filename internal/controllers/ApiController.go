package controllers

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"giftdrip/internal/providers"
	"giftdrip/internal/schedule"
	"giftdrip/internal/services"
	"giftdrip/internal/store"
)

const maxRequestBodySize = 64 << 10 // 64 KB

type ApiController struct {
	logger  providers.Logger
	service services.GiftServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.GiftServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

type acceptedResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func rejected(w http.ResponseWriter, status int, reason string) {
	writeJSON(w, status, acceptedResponse{Accepted: false, Reason: reason})
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Compute failed for %s: %s", cacheKey, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) GetGift(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		rejected(w, http.StatusBadRequest, "slug is required")
		return
	}
	tz := r.URL.Query().Get("tz")

	// The unlock decision is hour-granular, so a short cache TTL keeps
	// responses warm without serving a stale unlock past the boundary.
	ac.serveFromCacheOrCompute(w, "gift:"+slug+":"+tz, func() (any, error) {
		return ac.service.GetExperience(r.Context(), slug, tz, time.Now())
	})
}

func (ac *ApiController) RecordOpened(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload services.OpenedEvent
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rejected(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Slug == "" || payload.Timezone == "" {
		rejected(w, http.StatusBadRequest, "slug and timezone are required")
		return
	}
	if payload.DayIndex < 1 {
		rejected(w, http.StatusBadRequest, "dayIndex must be at least 1")
		return
	}

	if err := ac.service.RecordOpened(r.Context(), payload); err != nil {
		ac.logger.Errorf(providers.TypeApi, "Failed to record opened event for %q: %s", payload.Slug, err)
		rejected(w, http.StatusInternalServerError, "failed to record event")
		return
	}

	ac.logger.Infof(providers.TypeApi, "Gift open event recorded: slug=%s tz=%s day=%d",
		payload.Slug, payload.Timezone, payload.DayIndex)
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

type subscriptionPayload struct {
	Slug         string `json:"slug"`
	Timezone     string `json:"timezone"`
	NotifyTime   string `json:"notifyTime"` // optional "HH:MM", overrides hour/minute
	NotifyHour   int    `json:"notifyHour"`
	NotifyMinute int    `json:"notifyMinute"`
	Endpoint     string `json:"endpoint"`
	Keys         struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

func (p *subscriptionPayload) validate() string {
	switch {
	case p.Slug == "":
		return "slug is required"
	case p.Timezone == "":
		return "timezone is required"
	case p.Endpoint == "":
		return "endpoint is required"
	case p.Keys.P256dh == "" || p.Keys.Auth == "":
		return "subscription keys are required"
	}
	if p.NotifyTime != "" {
		tod, ok := schedule.ParseTimeOfDay(p.NotifyTime)
		if !ok {
			return "notifyTime must be HH:MM"
		}
		p.NotifyHour = tod.Hour
		p.NotifyMinute = tod.Minute
	}
	switch {
	case p.NotifyHour < 0 || p.NotifyHour > 23:
		return "notifyHour must be between 0 and 23"
	case p.NotifyMinute < 0 || p.NotifyMinute > 59:
		return "notifyMinute must be between 0 and 59"
	}
	return ""
}

func (ac *ApiController) UpsertSubscription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload subscriptionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rejected(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if reason := payload.validate(); reason != "" {
		rejected(w, http.StatusBadRequest, reason)
		return
	}

	err := ac.service.UpsertSubscription(r.Context(), services.SubscriptionRequest{
		Slug:         payload.Slug,
		Timezone:     payload.Timezone,
		NotifyHour:   payload.NotifyHour,
		NotifyMinute: payload.NotifyMinute,
		Endpoint:     payload.Endpoint,
		P256dh:       payload.Keys.P256dh,
		Auth:         payload.Keys.Auth,
	})
	if errors.Is(err, store.ErrNotFound) {
		rejected(w, http.StatusNotFound, "unknown gift")
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeApi, "Failed to upsert subscription: %s", err)
		rejected(w, http.StatusInternalServerError, "failed to store subscription")
		return
	}

	ac.logger.Infof(providers.TypeApi, "Push subscription upserted: slug=%s tz=%s at=%02d:%02d",
		payload.Slug, payload.Timezone, payload.NotifyHour, payload.NotifyMinute)
	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}

func (ac *ApiController) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		rejected(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if payload.Endpoint == "" {
		rejected(w, http.StatusBadRequest, "endpoint is required")
		return
	}

	if err := ac.service.DeleteSubscription(r.Context(), payload.Endpoint); err != nil {
		ac.logger.Errorf(providers.TypeApi, "Failed to delete subscription: %s", err)
		rejected(w, http.StatusInternalServerError, "failed to delete subscription")
		return
	}

	writeJSON(w, http.StatusAccepted, acceptedResponse{Accepted: true})
}
