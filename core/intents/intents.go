// Package intents composes the command orchestration, status interpretation
// and external collaborators into one operation per voice intent. Every
// operation resolves to a spoken message string; failures degrade to failure
// sentences beginning with "Fail" or "Unable" and are never raised.
package intents

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mpetrov/askmycar/core/command"
	"github.com/mpetrov/askmycar/core/logger"
	"github.com/mpetrov/askmycar/core/speech"
	"github.com/mpetrov/askmycar/core/telematics"
)

// Geocoder translates coordinates into a spoken address. Implementations
// render their own failures as an inline text fragment.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) string
}

// Service implements the vehicle-action intents.
type Service struct {
	client telematics.Client
	runner *command.Runner
	geo    Geocoder
	log    logger.Logger
}

// New creates the intent service.
func New(client telematics.Client, geo Geocoder, log logger.Logger) *Service {
	return &Service{
		client: client,
		runner: command.NewRunner(client, log),
		geo:    geo,
		log:    log,
	}
}

// StartVehicle remotely starts the engine.
func (s *Service) StartVehicle(ctx context.Context, vehicleID string) string {
	return s.runner.RunWithConfirmation(ctx, "start vehicle", vehicleID, s.client.DoStartEngine, s.client.CheckStartEngine)
}

// LockVehicle locks the doors.
func (s *Service) LockVehicle(ctx context.Context, vehicleID string) string {
	return s.runner.RunWithConfirmation(ctx, "lock vehicle", vehicleID, s.client.DoLock, s.client.CheckLock)
}

// UnlockVehicle unlocks the doors.
func (s *Service) UnlockVehicle(ctx context.Context, vehicleID string) string {
	return s.runner.RunWithConfirmation(ctx, "unlock vehicle", vehicleID, s.client.DoUnlock, s.client.CheckUnlock)
}

// CheckFuel reports fuel and battery levels from a freshened details read.
func (s *Service) CheckFuel(ctx context.Context, vehicleID string) string {
	return s.withDetails(ctx, vehicleID, speech.FuelAndBattery)
}

// CheckPlug reports the EV plug and charging state from a freshened details read.
func (s *Service) CheckPlug(ctx context.Context, vehicleID string) string {
	return s.withDetails(ctx, vehicleID, speech.PlugAndCharge)
}

// withDetails freshens the cloud state best-effort, fetches the vehicle
// details and hands the snapshot to the interpreter.
func (s *Service) withDetails(ctx context.Context, vehicleID string, interpret func(*telematics.Vehicle) string) string {
	s.runner.Freshen(ctx, vehicleID)

	details, err := s.client.GetDetails(ctx, vehicleID)
	if err != nil {
		s.log.Errorf("details read failed: %v", err)
		return fmt.Sprintf("Failed to get vehicle details with statusCode %d", details.StatusCode)
	}
	if details.StatusCode != http.StatusOK || details.Body == nil || details.Body.Vehicle == nil {
		s.log.Debugw("details read unusable", map[string]any{"status_code": details.StatusCode, "body": details.Body})
		return fmt.Sprintf("Failed to get vehicle details with statusCode %d", details.StatusCode)
	}
	return interpret(details.Body.Vehicle)
}

// ChargeVehicle starts charging. The provider answers 406 for vehicles that
// cannot charge, which is a terminal outcome; any other sub-300 answer
// triggers a freshen plus details read to report the plug state, since the
// charging status itself rarely updates inside the time budget.
func (s *Service) ChargeVehicle(ctx context.Context, vehicleID string) string {
	res, err := s.client.DoStartCharge(ctx, vehicleID)
	if err != nil {
		s.log.Errorf("start charge failed: %v", err)
		return "Failed charging vehicle."
	}

	switch {
	case res.StatusCode == http.StatusNotAcceptable:
		if res.Body != nil && res.Body.Error != nil && res.Body.Error.Details != "" {
			return fmt.Sprintf("Failed charging vehicle.  %s.", res.Body.Error.Details)
		}
		s.log.Debugw("charge rejected without detail", map[string]any{"status_code": res.StatusCode, "body": res.Body})
		return "Failed charging vehicle.  Only EV cars are supported."
	case res.StatusCode < 300:
		s.runner.Freshen(ctx, vehicleID)
		details, err := s.client.GetDetails(ctx, vehicleID)
		if err == nil && details.StatusCode == http.StatusOK &&
			details.Body != nil && details.Body.Vehicle != nil &&
			details.Body.Vehicle.VehicleStatus != nil && details.Body.Vehicle.VehicleStatus.PlugStatus != nil {
			plug := details.Body.Vehicle.VehicleStatus.PlugStatus
			switch {
			case plug.Value != nil && *plug.Value:
				return "Request for charging sent."
			case plug.Value != nil:
				return "Request for charging sent, but the plug is not connected."
			default:
				s.log.Debugw("plug state indeterminate", map[string]any{"body": details.Body})
				return "Request for charging sent, but I'm unable to determine if the vehicle is plugged in."
			}
		}
		s.log.Debugw("post-charge details unusable", map[string]any{"err": err, "status_code": details.StatusCode})
		return "Request for charging sent, but getting vehicle status failed."
	default:
		return fmt.Sprintf("Failed charging vehicle.  Got status code %d.", res.StatusCode)
	}
}

// LocateVehicle reports the address where the vehicle is parked. The location
// refresh command is fire and forget; the follow-up read does not take a
// command id, so the freshest available fix is reported.
func (s *Service) LocateVehicle(ctx context.Context, vehicleID string) string {
	if _, err := s.client.DoLocation(ctx, vehicleID); err != nil {
		s.log.Warnf("location refresh failed: %v", err)
	}

	res, err := s.client.GetLocation(ctx, vehicleID)
	if err != nil {
		s.log.Errorf("location read failed: %v", err)
		return fmt.Sprintf("Failed to get location information with status %d.", res.StatusCode)
	}
	if res.StatusCode == http.StatusOK && res.Body != nil && res.Body.Status == "SUCCESS" && res.Body.VehicleLocation != nil {
		loc := res.Body.VehicleLocation
		return "The vehicle is at " + s.geo.ReverseGeocode(ctx, loc.Latitude, loc.Longitude)
	}
	if res.Body != nil {
		return fmt.Sprintf("Failed to get location information with status code %d and body status of %s.", res.StatusCode, res.Body.Status)
	}
	return fmt.Sprintf("Failed to get location information with status %d.", res.StatusCode)
}

// WhenCharging reports the configured charge schedule.
func (s *Service) WhenCharging(ctx context.Context, vehicleID string) string {
	res, err := s.client.GetChargeSchedule(ctx, vehicleID)
	if err != nil {
		s.log.Errorf("charge schedule read failed: %v", err)
		return fmt.Sprintf("Failed getting charge schedule with status code %d", res.StatusCode)
	}
	if res.StatusCode != http.StatusOK || res.Body == nil || res.Body.ChargeSchedules == nil {
		s.log.Debugw("charge schedule unusable", map[string]any{"status_code": res.StatusCode, "body": res.Body})
		return fmt.Sprintf("Failed getting charge schedule with status code %d", res.StatusCode)
	}
	return speech.ChargeScheduleText(res.Body.ChargeSchedules)
}

// GoodNight combines the door, lock/alarm and fuel/plug checks into one
// report. The checks run concurrently so the slowest one bounds the latency.
func (s *Service) GoodNight(ctx context.Context, vehicleID string) string {
	return command.Aggregate(ctx,
		func(ctx context.Context) string { return s.checkDoors(ctx, vehicleID) },
		func(ctx context.Context) string { return s.checkLocksAndAlarm(ctx, vehicleID) },
		func(ctx context.Context) string { return s.checkFuelAndPlug(ctx, vehicleID) },
	)
}

func (s *Service) checkDoors(ctx context.Context, vehicleID string) string {
	s.runner.Freshen(ctx, vehicleID)

	details, err := s.client.GetDetails(ctx, vehicleID)
	if err != nil || details.Body == nil || details.Body.Vehicle == nil || details.Body.Vehicle.VehicleStatus == nil {
		s.log.Debugw("door check unusable", map[string]any{"err": err, "status_code": details.StatusCode})
		return "Unable to check doors."
	}
	return speech.Doors(details.Body.Vehicle.VehicleStatus.DoorStatus)
}

// checkLocksAndAlarm reads the lock and alarm state from the freshened status
// payload. That payload nests under the provider's lowercase vehiclestatus key
// and is a different shape from the details snapshot.
func (s *Service) checkLocksAndAlarm(ctx context.Context, vehicleID string) string {
	cloud := s.runner.Freshen(ctx, vehicleID)
	if cloud != nil && cloud.StatusCode == http.StatusAccepted &&
		cloud.Body != nil && cloud.Body.CommandStatus == "COMPLETED" &&
		cloud.Body.VehicleStatus != nil &&
		cloud.Body.VehicleStatus.LockStatus != nil && cloud.Body.VehicleStatus.Alarm != nil {
		return speech.LocksAndAlarm(cloud.Body.VehicleStatus.LockStatus.Value, cloud.Body.VehicleStatus.Alarm.Value)
	}
	s.log.Debugw("lock and alarm status unavailable", map[string]any{"response": cloud})
	return "Unable to check locks and alarm."
}

func (s *Service) checkFuelAndPlug(ctx context.Context, vehicleID string) string {
	details, err := s.client.GetDetails(ctx, vehicleID)
	if err != nil || details.StatusCode != http.StatusOK || details.Body == nil || details.Body.Vehicle == nil {
		s.log.Debugw("fuel check unusable", map[string]any{"err": err, "status_code": details.StatusCode})
		return "Unable to check fuel level."
	}
	v := details.Body.Vehicle
	msg := speech.FuelAndBattery(v)
	// The plug only matters for electrified engine types (BEV, PHEV, ...).
	if strings.Contains(v.EngineType, "EV") {
		msg = speech.Join([]string{msg, speech.PlugAndCharge(v)})
	}
	return msg
}
