// Package speech maps partially populated vehicle payloads to short spoken
// status fragments. All functions are pure: no I/O, no mutable state, and a
// missing or malformed input degrades to an empty or generic fragment instead
// of an error. Messages are assembled from an ordered list of optional
// fragments joined with a single space.
package speech

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mpetrov/askmycar/core/telematics"
)

const milesPerKilometer = 0.62137119

// Join concatenates non-empty fragments with a single space.
func Join(frags []string) string {
	parts := frags[:0:0]
	for _, f := range frags {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " ")
}

// formatNumber renders a provider number without trailing zeros, so 50.0
// speaks as "50" and 47.5 as "47.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Distance renders a kilometer range as spoken miles and kilometers, both
// rounded to the nearest integer.
func Distance(km float64) string {
	miles := math.Round(km * milesPerKilometer)
	return fmt.Sprintf("%d miles (%d kilometers)", int64(miles), int64(math.Round(km)))
}

// energyFragments emits the level and range fragments for one energy source.
// A level value present and <= 0 speaks as empty, present otherwise as a
// percentage, absent as nothing. The range fragment is emitted independently
// whenever distance-to-empty is present and non-negative.
func energyFragments(name string, level *telematics.EnergyLevel) []string {
	if level == nil {
		return nil
	}
	var frags []string
	if level.Value != nil {
		if *level.Value <= 0 {
			frags = append(frags, name+" is empty.")
		} else {
			frags = append(frags, fmt.Sprintf("%s is %s percent.", name, formatNumber(*level.Value)))
		}
	}
	if level.DistanceToEmpty != nil && *level.DistanceToEmpty >= 0 {
		frags = append(frags, fmt.Sprintf("You can travel %s on %s.", Distance(*level.DistanceToEmpty), strings.ToLower(name)))
	}
	return frags
}

// FuelAndBattery reports the fuel and battery levels and ranges of a vehicle.
func FuelAndBattery(v *telematics.Vehicle) string {
	if v == nil || v.VehicleDetails == nil {
		return ""
	}
	var frags []string
	frags = append(frags, energyFragments("Fuel", v.VehicleDetails.FuelLevel)...)
	frags = append(frags, energyFragments("Battery", v.VehicleDetails.BatteryChargeLevel)...)
	return Join(frags)
}

// PlugAndCharge reports the EV plug connection and the raw charging status.
func PlugAndCharge(v *telematics.Vehicle) string {
	if v == nil || v.VehicleStatus == nil {
		return "Failed to get EV plug status."
	}
	var frags []string
	if plug := v.VehicleStatus.PlugStatus; plug != nil {
		if plug.Value != nil && *plug.Value {
			frags = append(frags, "The EV plug is connected.")
		} else {
			frags = append(frags, "The EV plug is disconnected.")
		}
	} else {
		frags = append(frags, "Failed to get EV plug status.")
	}
	if cs := v.VehicleStatus.ChargingStatus; cs != nil {
		frags = append(frags, fmt.Sprintf("The current charging status is %s.", cs.Value))
	}
	return Join(frags)
}

// Doors reports every door that is not closed, or confirms all doors are
// closed. Provider door labels carry placeholder tokens and underscores that
// read badly out loud, so UNSPECIFIED_ and NOT_APPLICABLE are stripped and
// remaining underscores become spaces.
func Doors(doors []telematics.DoorStatus) string {
	var frags []string
	for _, d := range doors {
		if d.Value == "CLOSED" {
			continue
		}
		frag := fmt.Sprintf("%s %s is %s.", d.VehicleOccupantRole, d.VehicleDoor, d.Value)
		frag = strings.ReplaceAll(frag, "UNSPECIFIED_", "")
		frag = strings.ReplaceAll(frag, "NOT_APPLICABLE", "")
		frag = strings.ReplaceAll(frag, "_", " ")
		frags = append(frags, strings.Join(strings.Fields(frag), " "))
	}
	if len(frags) == 0 {
		return "All doors are closed."
	}
	return Join(frags)
}

// LocksAndAlarm reports the lock and alarm state. The provider's NOTSET alarm
// value is rendered as "NOT SET"; everything else passes through unchanged.
func LocksAndAlarm(lockValue, alarmValue string) string {
	alarmValue = strings.ReplaceAll(alarmValue, "NOTSET", "NOT SET")
	return fmt.Sprintf("The locks are %s. The alarm is %s.", lockValue, alarmValue)
}

// ChargeScheduleText reports every charge window of every schedule, or that no
// schedule is set. The dash UI allows several windows per schedule; the
// desired charge level and days apply per schedule.
func ChargeScheduleText(schedules []telematics.ChargeSchedule) string {
	if len(schedules) == 0 {
		return "No charging schedule is set."
	}
	var frags []string
	for _, sch := range schedules {
		for _, w := range sch.ChargeWindows {
			frags = append(frags, fmt.Sprintf("%sS from %s to %s at %s percent.",
				sch.Days, w.StartTime, w.EndTime, formatNumber(sch.DesiredChargeLevel)))
		}
	}
	return "The charge schedule is " + Join(frags)
}
