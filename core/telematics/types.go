package telematics

// The provider returns deeply optional JSON payloads: any leaf may be absent,
// which means "not supported by this vehicle" rather than "unknown". Optional
// fields are therefore modeled as pointers so that absence and a present zero
// value stay distinguishable.

// CommandOutcome is the body returned by do and check calls.
type CommandOutcome struct {
	Status        string         `json:"status,omitempty"`
	CommandStatus string         `json:"commandStatus,omitempty"`
	CommandID     string         `json:"commandId,omitempty"`
	Error         *ErrorDetail   `json:"error,omitempty"`
	VehicleStatus *AlarmSnapshot `json:"vehiclestatus,omitempty"`
}

// ErrorDetail carries a provider-supplied error description.
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Title   string `json:"title,omitempty"`
	Details string `json:"details,omitempty"`
}

// AlarmSnapshot is the freshened status shape nested under the provider's
// lowercase "vehiclestatus" key. It is a different read shape from
// Vehicle.VehicleStatus and is kept separate on purpose.
type AlarmSnapshot struct {
	LockStatus *StringField `json:"lockStatus,omitempty"`
	Alarm      *StringField `json:"alarm,omitempty"`
}

// StringField wraps a categorical provider value.
type StringField struct {
	Value string `json:"value"`
}

// BoolField wraps an optional boolean provider value.
type BoolField struct {
	Value *bool `json:"value"`
}

// EnergyLevel describes one energy source: percent level plus distance to
// empty in kilometers.
type EnergyLevel struct {
	Value           *float64 `json:"value"`
	DistanceToEmpty *float64 `json:"distanceToEmpty"`
}

// VehicleDetails holds the fuel and battery levels of a vehicle.
type VehicleDetails struct {
	FuelLevel          *EnergyLevel `json:"fuelLevel,omitempty"`
	BatteryChargeLevel *EnergyLevel `json:"batteryChargeLevel,omitempty"`
}

// DoorStatus describes one door of the vehicle.
type DoorStatus struct {
	VehicleDoor         string `json:"vehicleDoor"`
	VehicleOccupantRole string `json:"vehicleOccupantRole"`
	Value               string `json:"value"`
}

// VehicleStatus is the status shape embedded in a details read.
type VehicleStatus struct {
	PlugStatus     *BoolField   `json:"plugStatus,omitempty"`
	ChargingStatus *StringField `json:"chargingStatus,omitempty"`
	DoorStatus     []DoorStatus `json:"doorStatus,omitempty"`
}

// Vehicle is the provider's point-in-time view of a vehicle.
type Vehicle struct {
	VehicleID      string          `json:"vehicleId,omitempty"`
	Make           string          `json:"make,omitempty"`
	ModelName      string          `json:"modelName,omitempty"`
	EngineType     string          `json:"engineType,omitempty"`
	VehicleDetails *VehicleDetails `json:"vehicleDetails,omitempty"`
	VehicleStatus  *VehicleStatus  `json:"vehicleStatus,omitempty"`
}

// DetailsBody is the body of a details read.
type DetailsBody struct {
	Status  string   `json:"status,omitempty"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// Location is a vehicle geolocation.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Speed     float64 `json:"speed,omitempty"`
	Direction string  `json:"direction,omitempty"`
}

// LocationBody is the body of a location read.
type LocationBody struct {
	Status          string    `json:"status,omitempty"`
	VehicleLocation *Location `json:"vehicleLocation,omitempty"`
}

// ChargeWindow is one time window inside a charge schedule.
type ChargeWindow struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ChargeSchedule groups charge windows for a set of days.
type ChargeSchedule struct {
	Days               string         `json:"days"`
	DesiredChargeLevel float64        `json:"desiredChargeLevel"`
	ChargeWindows      []ChargeWindow `json:"chargeWindows"`
}

// ChargeScheduleBody is the body of a charge schedule read. A nil
// ChargeSchedules slice means the field was absent, an empty one means no
// schedule is configured.
type ChargeScheduleBody struct {
	Status          string           `json:"status,omitempty"`
	ChargeSchedules []ChargeSchedule `json:"chargeSchedules"`
}

// VehicleSummary is one entry of the vehicle list.
type VehicleSummary struct {
	VehicleID                     string `json:"vehicleId"`
	Make                          string `json:"make,omitempty"`
	ModelName                     string `json:"modelName,omitempty"`
	NickName                      string `json:"nickName,omitempty"`
	VehicleAuthorizationIndicator int    `json:"vehicleAuthorizationIndicator"`
}

// VehicleListBody is the body of the vehicle list call.
type VehicleListBody struct {
	Status   string           `json:"status,omitempty"`
	Vehicles []VehicleSummary `json:"vehicles"`
}

// CommandResponse is the normalized result of a do or check call. Non-2xx
// responses are returned as-is, never as an error; the status code must be
// branched on by the caller.
type CommandResponse struct {
	StatusCode int
	Body       *CommandOutcome
}

// DetailsResponse is the normalized result of a details read.
type DetailsResponse struct {
	StatusCode int
	Body       *DetailsBody
}

// LocationResponse is the normalized result of a location read.
type LocationResponse struct {
	StatusCode int
	Body       *LocationBody
}

// ScheduleResponse is the normalized result of a charge schedule read.
type ScheduleResponse struct {
	StatusCode int
	Body       *ChargeScheduleBody
}

// VehicleListResponse is the normalized result of the vehicle list call.
type VehicleListResponse struct {
	StatusCode int
	Body       *VehicleListBody
}
