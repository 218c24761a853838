// Package fordconnect implements the telematics client against the
// FordConnect-style HTTP API, or against a local simulator host when one is
// configured.
package fordconnect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mpetrov/askmycar/config"
	"github.com/mpetrov/askmycar/core/logger"
	"github.com/mpetrov/askmycar/core/telematics"
)

const basePath = "/api/fordconnect/vehicles/v1"

// AuthProvider sets the bearer token on outgoing requests.
type AuthProvider interface {
	SetAuthHeader(r *http.Request) error
}

// Client is the HTTP implementation of telematics.Client. Non-2xx responses
// are returned with their status code, never as an error; only transport
// failures produce errors. The per-call timeout is kept tight because the
// whole intent has to answer within the voice channel's budget.
type Client struct {
	http  *http.Client
	auth  AuthProvider
	host  string
	appID string
	log   logger.Logger
}

// New creates a Client from the telematics configuration.
func New(cfg config.TelematicsConfig, auth AuthProvider, log logger.Logger) *Client {
	return &Client{
		http:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		auth:  auth,
		host:  cfg.EffectiveHost(),
		appID: cfg.ApplicationID,
		log:   log,
	}
}

// do performs one authenticated call and returns the raw status and body.
func (c *Client) do(ctx context.Context, method, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.host+basePath+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.appID != "" {
		req.Header.Set("Application-Id", c.appID)
	}
	if err := c.auth.SetAuthHeader(req); err != nil {
		return 0, nil, fmt.Errorf("set auth header: %w", err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debugw("provider call", map[string]any{"method": method, "path": path, "status_code": res.StatusCode})
	return res.StatusCode, body, nil
}

// command performs a do or check call and decodes its outcome body. A body
// that does not decode is treated as absent.
func (c *Client) command(ctx context.Context, method, path string) (telematics.CommandResponse, error) {
	status, raw, err := c.do(ctx, method, path)
	if err != nil {
		return telematics.CommandResponse{}, err
	}
	res := telematics.CommandResponse{StatusCode: status}
	var body telematics.CommandOutcome
	if json.Unmarshal(raw, &body) == nil {
		res.Body = &body
	}
	return res, nil
}

func (c *Client) DoStartEngine(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/startEngine")
}

func (c *Client) CheckStartEngine(ctx context.Context, vehicleID, commandID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodGet, "/"+vehicleID+"/startEngine/"+commandID)
}

func (c *Client) DoLock(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/lock")
}

func (c *Client) CheckLock(ctx context.Context, vehicleID, commandID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodGet, "/"+vehicleID+"/lock/"+commandID)
}

func (c *Client) DoUnlock(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/unlock")
}

func (c *Client) CheckUnlock(ctx context.Context, vehicleID, commandID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodGet, "/"+vehicleID+"/unlock/"+commandID)
}

func (c *Client) DoStartCharge(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/startCharge")
}

func (c *Client) DoStatus(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/status")
}

func (c *Client) GetStatus(ctx context.Context, vehicleID, commandID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodGet, "/"+vehicleID+"/statusrefresh/"+commandID)
}

func (c *Client) DoLocation(ctx context.Context, vehicleID string) (telematics.CommandResponse, error) {
	return c.command(ctx, http.MethodPost, "/"+vehicleID+"/location")
}

func (c *Client) GetLocation(ctx context.Context, vehicleID string) (telematics.LocationResponse, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/"+vehicleID+"/location")
	if err != nil {
		return telematics.LocationResponse{}, err
	}
	res := telematics.LocationResponse{StatusCode: status}
	var body telematics.LocationBody
	if json.Unmarshal(raw, &body) == nil {
		res.Body = &body
	}
	return res, nil
}

func (c *Client) GetDetails(ctx context.Context, vehicleID string) (telematics.DetailsResponse, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/"+vehicleID)
	if err != nil {
		return telematics.DetailsResponse{}, err
	}
	res := telematics.DetailsResponse{StatusCode: status}
	var body telematics.DetailsBody
	if json.Unmarshal(raw, &body) == nil {
		res.Body = &body
	}
	return res, nil
}

func (c *Client) GetChargeSchedule(ctx context.Context, vehicleID string) (telematics.ScheduleResponse, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/"+vehicleID+"/chargeSchedules")
	if err != nil {
		return telematics.ScheduleResponse{}, err
	}
	res := telematics.ScheduleResponse{StatusCode: status}
	var body telematics.ChargeScheduleBody
	if json.Unmarshal(raw, &body) == nil {
		res.Body = &body
	}
	return res, nil
}

func (c *Client) GetVehicles(ctx context.Context) (telematics.VehicleListResponse, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "")
	if err != nil {
		return telematics.VehicleListResponse{}, err
	}
	res := telematics.VehicleListResponse{StatusCode: status}
	var body telematics.VehicleListBody
	if json.Unmarshal(raw, &body) == nil {
		res.Body = &body
	}
	return res, nil
}
