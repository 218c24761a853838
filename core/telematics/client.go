package telematics

import "context"

// Client issues authenticated calls against the vehicle telematics provider.
// Every call returns the provider's status code and decoded body; an error is
// only returned for transport-level failures, never for non-2xx responses.
//
// Remote vehicle actions follow a do/check pair: the do call starts an
// asynchronous command and the check call polls its outcome via the returned
// command id.
type Client interface {
	DoStartEngine(ctx context.Context, vehicleID string) (CommandResponse, error)
	CheckStartEngine(ctx context.Context, vehicleID, commandID string) (CommandResponse, error)

	DoLock(ctx context.Context, vehicleID string) (CommandResponse, error)
	CheckLock(ctx context.Context, vehicleID, commandID string) (CommandResponse, error)

	DoUnlock(ctx context.Context, vehicleID string) (CommandResponse, error)
	CheckUnlock(ctx context.Context, vehicleID, commandID string) (CommandResponse, error)

	DoStartCharge(ctx context.Context, vehicleID string) (CommandResponse, error)

	// DoStatus asks the provider to pull fresh telemetry from the vehicle;
	// GetStatus polls the refresh command.
	DoStatus(ctx context.Context, vehicleID string) (CommandResponse, error)
	GetStatus(ctx context.Context, vehicleID, commandID string) (CommandResponse, error)

	// DoLocation asks the provider to refresh the vehicle location.
	DoLocation(ctx context.Context, vehicleID string) (CommandResponse, error)
	GetLocation(ctx context.Context, vehicleID string) (LocationResponse, error)

	GetDetails(ctx context.Context, vehicleID string) (DetailsResponse, error)
	GetChargeSchedule(ctx context.Context, vehicleID string) (ScheduleResponse, error)
	GetVehicles(ctx context.Context) (VehicleListResponse, error)
}
