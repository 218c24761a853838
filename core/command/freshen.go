package command

import (
	"context"

	"github.com/mpetrov/askmycar/core/telematics"
)

// Freshen forces the provider to pull current telemetry from the vehicle and
// returns the raw poll response for downstream reads. The same acceptance
// predicate as RunWithConfirmation applies; a rejected refresh returns nil,
// meaning "freshen unavailable, proceed with best-effort stale data". Because
// of the aggressive time budget the poll may still report PENDINGRESPONSE.
func (r *Runner) Freshen(ctx context.Context, vehicleID string) *telematics.CommandResponse {
	res, err := r.client.DoStatus(ctx, vehicleID)
	if err != nil {
		r.log.Errorf("status refresh issue call failed: %v", err)
		return nil
	}
	if !Accepted(res) {
		r.log.Debugw("status refresh rejected", map[string]any{"status_code": res.StatusCode, "body": res.Body})
		return nil
	}
	// The poll answers 202, not 200.
	chk, err := r.client.GetStatus(ctx, vehicleID, res.Body.CommandID)
	if err != nil {
		r.log.Errorf("status refresh poll failed: %v", err)
		return nil
	}
	return &chk
}
