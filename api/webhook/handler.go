// Package webhook exposes one GET route per voice intent and serializes every
// result as the assistant's {status, msg} envelope.
package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/mpetrov/askmycar/core/logger"
	"github.com/mpetrov/askmycar/infra/metrics"
)

// tokenValidity is the minimum token lifetime required before an intent runs,
// covering the duration of all its provider calls.
const tokenValidity = 60 * time.Second

// TokenRefresher guarantees a valid provider token for at least the given
// duration before any core operation fires.
type TokenRefresher interface {
	Refresh(ctx context.Context, minValidity time.Duration) error
}

// VehicleResolver maps the requesting user to the active vehicle.
type VehicleResolver interface {
	ToVehicleID(userID string) string
}

// IntentService is the set of intent operations exposed as webhook routes.
type IntentService interface {
	StartVehicle(ctx context.Context, vehicleID string) string
	LockVehicle(ctx context.Context, vehicleID string) string
	UnlockVehicle(ctx context.Context, vehicleID string) string
	CheckFuel(ctx context.Context, vehicleID string) string
	CheckPlug(ctx context.Context, vehicleID string) string
	ChargeVehicle(ctx context.Context, vehicleID string) string
	LocateVehicle(ctx context.Context, vehicleID string) string
	WhenCharging(ctx context.Context, vehicleID string) string
	GoodNight(ctx context.Context, vehicleID string) string
}

type response struct {
	Status string `json:"status"`
	Msg    string `json:"msg"`
}

// Handler routes webhook calls to intents.
type Handler struct {
	intents  IntentService
	tokens   TokenRefresher
	vehicles VehicleResolver
	sink     metrics.Sink
	log      logger.Logger
}

// NewHandler creates a Handler. A nil sink disables metrics.
func NewHandler(svc IntentService, tokens TokenRefresher, vehicles VehicleResolver, sink metrics.Sink, log logger.Logger) *Handler {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Handler{intents: svc, tokens: tokens, vehicles: vehicles, sink: sink, log: log}
}

// Router returns the webhook route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	routes := []struct {
		path   string
		intent string
		fn     func(ctx context.Context, vehicleID string) string
	}{
		{"/my-ford/start-vehicle", "start vehicle", h.intents.StartVehicle},
		{"/my-ford/lock-vehicle", "lock vehicle", h.intents.LockVehicle},
		{"/my-ford/unlock-vehicle", "unlock vehicle", h.intents.UnlockVehicle},
		{"/my-ford/check-fuel", "check fuel", h.intents.CheckFuel},
		{"/my-ford/check-plug", "check plug", h.intents.CheckPlug},
		{"/my-ford/charge-vehicle", "request charge", h.intents.ChargeVehicle},
		{"/my-ford/where-vehicle", "where vehicle", h.intents.LocateVehicle},
		{"/my-ford/when-charging", "when charging", h.intents.WhenCharging},
		{"/my-ford/good-night", "good night", h.intents.GoodNight},
	}
	for _, rt := range routes {
		r.HandleFunc(rt.path, h.handle(rt.intent, rt.fn)).Methods(http.MethodGet)
	}
	return r
}

func (h *Handler) handle(intent string, fn func(ctx context.Context, vehicleID string) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		h.log.Infof("%s invoked", intent)

		ctx := r.Context()
		if err := h.tokens.Refresh(ctx, tokenValidity); err != nil {
			h.log.Errorf("token refresh: %v", err)
			h.send(w, reqID, intent, "Failed to authorize with the vehicle provider.", start)
			return
		}
		vehicleID := h.vehicles.ToVehicleID(r.URL.Query().Get("user"))
		h.send(w, reqID, intent, fn(ctx, vehicleID), start)
	}
}

// send writes the {status, msg} envelope. The assistant treats the request as
// failed exactly when the message begins with "Fail".
func (h *Handler) send(w http.ResponseWriter, reqID, intent, msg string, start time.Time) {
	status := "SUCCESS"
	if strings.HasPrefix(msg, "Fail") {
		status = "FAILED"
	}
	h.log.Debugw("intent result", map[string]any{
		"request_id": reqID,
		"intent":     intent,
		"status":     status,
		"msg":        msg,
		"elapsed":    time.Since(start).String(),
	})
	if err := h.sink.RecordIntent(metrics.IntentResult{Intent: intent, Success: status == "SUCCESS", Duration: time.Since(start)}); err != nil {
		h.log.Warnf("record intent: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response{Status: status, Msg: msg}); err != nil {
		h.log.Errorf("encode response: %v", err)
	}
}
