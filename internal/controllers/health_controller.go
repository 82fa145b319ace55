package controllers

import (
	"fmt"
	"net/http"
	"time"

	"giftdrip/internal/push"
	"giftdrip/internal/services"
	"giftdrip/internal/structures"
)

type HealthController struct {
	service   services.GiftServiceInterface
	sender    push.Sender
	conf      *structures.Config
	startTime time.Time
}

func NewHealthController(service services.GiftServiceInterface, sender push.Sender, conf *structures.Config) *HealthController {
	return &HealthController{
		service:   service,
		sender:    sender,
		conf:      conf,
		startTime: time.Now(),
	}
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version"`
}

// Health is the root liveness probe: the process is up.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Version:       hc.conf.Version,
	})
}

type apiHealthResponse struct {
	Status    string                  `json:"status"`
	Service   string                  `json:"service"`
	Version   string                  `json:"version"`
	Timestamp string                  `json:"timestamp"`
	Database  services.DatabaseHealth `json:"database"`
}

// ApiHealth includes the storage backend, so it degrades when the
// database is unreachable or not configured.
func (hc *HealthController) ApiHealth(w http.ResponseWriter, r *http.Request) {
	db := hc.service.DatabaseHealth(r.Context())
	status := "ok"
	if !db.OK {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, apiHealthResponse{
		Status:    status,
		Service:   "giftdrip-api",
		Version:   hc.conf.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  db,
	})
}

type runtimeResponse struct {
	AppVersion          string `json:"appVersion"`
	PushVapidConfigured bool   `json:"pushVapidConfigured"`
	DispatchConfigured  bool   `json:"dispatchConfigured"`
	CacheEnabled        bool   `json:"cacheEnabled"`
}

func (hc *HealthController) Runtime(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, runtimeResponse{
		AppVersion:          hc.conf.Version,
		PushVapidConfigured: hc.sender.Configured(),
		DispatchConfigured:  hc.conf.Push.DispatchSecret != "",
		CacheEnabled:        hc.conf.Cache.Enabled,
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}
