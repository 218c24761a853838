// Package session owns the single piece of shared mutable state in the
// system: the active vehicle identity. One vehicle is discovered at startup
// and every request resolves to it; the provider's consent UI only lets a
// user authorize one vehicle, so the process is single-tenant.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/mpetrov/askmycar/core/logger"
	"github.com/mpetrov/askmycar/core/telematics"
)

// Bootstrapper acquires the initial provider token before discovery runs.
type Bootstrapper interface {
	Bootstrap(ctx context.Context) error
}

// Resolver maps end users to the active vehicle.
type Resolver struct {
	client telematics.Client
	tokens Bootstrapper
	log    logger.Logger

	mu     sync.RWMutex
	active telematics.VehicleSummary
}

// NewResolver creates a Resolver. Init must be called before ToVehicleID.
func NewResolver(client telematics.Client, tokens Bootstrapper, log logger.Logger) *Resolver {
	return &Resolver{client: client, tokens: tokens, log: log}
}

// Init acquires a token and discovers the authorized vehicle. Failure here is
// fatal for the process: without an authorized vehicle no per-request recovery
// is possible, so the caller is expected to halt.
func (r *Resolver) Init(ctx context.Context) error {
	if err := r.tokens.Bootstrap(ctx); err != nil {
		return fmt.Errorf("token bootstrap: %w", err)
	}

	res, err := r.client.GetVehicles(ctx)
	if err != nil {
		return fmt.Errorf("list vehicles: %w", err)
	}
	switch {
	case res.StatusCode == http.StatusOK:
		if res.Body != nil {
			for _, v := range res.Body.Vehicles {
				if v.VehicleAuthorizationIndicator == 1 && v.VehicleID != "" {
					r.mu.Lock()
					r.active = v
					r.mu.Unlock()
					r.log.Infof("voice commands will use vehicle %s (%s %s)", v.VehicleID, v.Make, v.ModelName)
					return nil
				}
			}
		}
		r.log.Debugw("vehicle list without authorized vehicle", map[string]any{"body": res.Body})
		return fmt.Errorf("no authorized vehicle returned; provide a new authorization code or refresh token")
	case res.StatusCode == http.StatusInternalServerError:
		// The provider answers 500 when it wants fresh credentials even
		// though the OAuth calls themselves still succeed.
		return fmt.Errorf("provider returned 500 listing vehicles; provide a new authorization code or refresh token")
	case res.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("access denied listing vehicles; provide a new authorization code or refresh token")
	default:
		return fmt.Errorf("unexpected status %d listing vehicles", res.StatusCode)
	}
}

// ToVehicleID resolves a user identifier to the active vehicle id. All users
// map to the single authorized vehicle; a persistent mapping would be needed
// to support more than one.
func (r *Resolver) ToVehicleID(userID string) string {
	r.mu.RLock()
	id := r.active.VehicleID
	r.mu.RUnlock()
	r.log.Infof("user %s is using vehicle %s", userID, id)
	return id
}
