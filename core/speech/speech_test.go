package speech

import (
	"strings"
	"testing"

	"github.com/mpetrov/askmycar/core/telematics"
)

func f64(v float64) *float64 { return &v }

func boolp(v bool) *bool { return &v }

func TestDistance(t *testing.T) {
	if got := Distance(100); got != "62 miles (100 kilometers)" {
		t.Fatalf("Distance(100) = %q", got)
	}
	if got := Distance(0); got != "0 miles (0 kilometers)" {
		t.Fatalf("Distance(0) = %q", got)
	}
	if got := Distance(160); got != "99 miles (160 kilometers)" {
		t.Fatalf("Distance(160) = %q", got)
	}
}

func TestFuelAndBattery_ZeroVsAbsent(t *testing.T) {
	empty := &telematics.Vehicle{VehicleDetails: &telematics.VehicleDetails{
		FuelLevel: &telematics.EnergyLevel{Value: f64(0)},
	}}
	if got := FuelAndBattery(empty); got != "Fuel is empty." {
		t.Fatalf("zero fuel = %q", got)
	}

	absent := &telematics.Vehicle{VehicleDetails: &telematics.VehicleDetails{}}
	if got := FuelAndBattery(absent); got != "" {
		t.Fatalf("absent fuel = %q", got)
	}
}

func TestFuelAndBattery_FullSnapshot(t *testing.T) {
	v := &telematics.Vehicle{VehicleDetails: &telematics.VehicleDetails{
		FuelLevel:          &telematics.EnergyLevel{Value: f64(47.5), DistanceToEmpty: f64(160)},
		BatteryChargeLevel: &telematics.EnergyLevel{Value: f64(80), DistanceToEmpty: f64(90)},
	}}
	want := "Fuel is 47.5 percent. You can travel 99 miles (160 kilometers) on fuel. " +
		"Battery is 80 percent. You can travel 56 miles (90 kilometers) on battery."
	if got := FuelAndBattery(v); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFuelAndBattery_RangeWithoutLevel(t *testing.T) {
	v := &telematics.Vehicle{VehicleDetails: &telematics.VehicleDetails{
		BatteryChargeLevel: &telematics.EnergyLevel{DistanceToEmpty: f64(200)},
	}}
	want := "You can travel 124 miles (200 kilometers) on battery."
	if got := FuelAndBattery(v); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestFuelAndBattery_NilVehicle(t *testing.T) {
	if got := FuelAndBattery(nil); got != "" {
		t.Fatalf("nil vehicle = %q", got)
	}
}

func TestPlugAndCharge(t *testing.T) {
	cases := []struct {
		name   string
		status *telematics.VehicleStatus
		want   string
	}{
		{
			"connected and charging",
			&telematics.VehicleStatus{
				PlugStatus:     &telematics.BoolField{Value: boolp(true)},
				ChargingStatus: &telematics.StringField{Value: "ChargingAC"},
			},
			"The EV plug is connected. The current charging status is ChargingAC.",
		},
		{
			"disconnected",
			&telematics.VehicleStatus{PlugStatus: &telematics.BoolField{Value: boolp(false)}},
			"The EV plug is disconnected.",
		},
		{
			"plug status missing",
			&telematics.VehicleStatus{ChargingStatus: &telematics.StringField{Value: "NotReady"}},
			"Failed to get EV plug status. The current charging status is NotReady.",
		},
		{
			"no status at all",
			nil,
			"Failed to get EV plug status.",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PlugAndCharge(&telematics.Vehicle{VehicleStatus: c.status})
			if got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

func TestDoors_AllClosed(t *testing.T) {
	doors := []telematics.DoorStatus{
		{VehicleDoor: "UNSPECIFIED_FRONT", VehicleOccupantRole: "DRIVER", Value: "CLOSED"},
		{VehicleDoor: "HOOD_DOOR", VehicleOccupantRole: "NOT_APPLICABLE", Value: "CLOSED"},
	}
	if got := Doors(doors); got != "All doors are closed." {
		t.Fatalf("got %q", got)
	}
	if got := Doors(nil); got != "All doors are closed." {
		t.Fatalf("empty list got %q", got)
	}
}

func TestDoors_Open(t *testing.T) {
	doors := []telematics.DoorStatus{
		{VehicleDoor: "UNSPECIFIED_FRONT", VehicleOccupantRole: "DRIVER", Value: "OPEN"},
		{VehicleDoor: "REAR_LEFT", VehicleOccupantRole: "PASSENGER", Value: "CLOSED"},
		{VehicleDoor: "HOOD_DOOR", VehicleOccupantRole: "NOT_APPLICABLE", Value: "OPEN"},
	}
	got := Doors(doors)
	want := "DRIVER FRONT is OPEN. HOOD DOOR is OPEN."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	for _, token := range []string{"UNSPECIFIED_", "NOT_APPLICABLE", "_"} {
		if strings.Contains(got, token) {
			t.Fatalf("output %q still contains %q", got, token)
		}
	}
}

func TestLocksAndAlarm(t *testing.T) {
	if got := LocksAndAlarm("LOCKED", "NOTSET"); got != "The locks are LOCKED. The alarm is NOT SET." {
		t.Fatalf("got %q", got)
	}
	if got := LocksAndAlarm("UNLOCKED", "ACTIVE"); got != "The locks are UNLOCKED. The alarm is ACTIVE." {
		t.Fatalf("got %q", got)
	}
}

func TestChargeScheduleText(t *testing.T) {
	if got := ChargeScheduleText(nil); got != "No charging schedule is set." {
		t.Fatalf("empty schedule got %q", got)
	}

	schedules := []telematics.ChargeSchedule{{
		Days:               "WEEKDAY",
		DesiredChargeLevel: 85,
		ChargeWindows: []telematics.ChargeWindow{
			{StartTime: "21:00", EndTime: "23:00"},
			{StartTime: "01:00", EndTime: "05:00"},
		},
	}}
	got := ChargeScheduleText(schedules)
	want := "The charge schedule is WEEKDAYS from 21:00 to 23:00 at 85 percent. WEEKDAYS from 01:00 to 05:00 at 85 percent."
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestJoinSkipsEmptyFragments(t *testing.T) {
	if got := Join([]string{"", "a.", "", "b.", ""}); got != "a. b." {
		t.Fatalf("got %q", got)
	}
}
