package fordconnect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mpetrov/askmycar/config"
	"github.com/mpetrov/askmycar/infra/logger"
)

type staticAuth struct{}

func (staticAuth) SetAuthHeader(r *http.Request) error {
	r.Header.Set("Authorization", "Bearer test-token")
	return nil
}

type call struct {
	method string
	path   string
}

func newTestServer(t *testing.T, status int, body string) (*Client, *call) {
	t.Helper()
	seen := &call{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.method = r.Method
		seen.path = r.URL.Path
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Application-Id"); got != "app-123" {
			t.Errorf("Application-Id = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c := New(config.TelematicsConfig{
		Host:           srv.URL,
		ApplicationID:  "app-123",
		TimeoutSeconds: 5,
	}, staticAuth{}, logger.NopLogger{})
	return c, seen
}

func TestDoStartEngine(t *testing.T) {
	c, seen := newTestServer(t, http.StatusAccepted,
		`{"status":"SUCCESS","commandStatus":"COMPLETED","commandId":"cmd-1"}`)

	res, err := c.DoStartEngine(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("DoStartEngine: %v", err)
	}
	if seen.method != http.MethodPost || seen.path != basePath+"/veh-1/startEngine" {
		t.Fatalf("called %s %s", seen.method, seen.path)
	}
	if res.StatusCode != http.StatusAccepted || res.Body == nil || res.Body.CommandID != "cmd-1" {
		t.Fatalf("res = %+v body = %+v", res, res.Body)
	}
}

func TestGetStatus_PathAndSnapshot(t *testing.T) {
	c, seen := newTestServer(t, http.StatusAccepted,
		`{"commandStatus":"COMPLETED","vehiclestatus":{"lockStatus":{"value":"LOCKED"},"alarm":{"value":"SET"}}}`)

	res, err := c.GetStatus(context.Background(), "veh-1", "cmd-9")
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if seen.path != basePath+"/veh-1/statusrefresh/cmd-9" {
		t.Fatalf("path = %s", seen.path)
	}
	snap := res.Body.VehicleStatus
	if snap == nil || snap.LockStatus.Value != "LOCKED" || snap.Alarm.Value != "SET" {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestNonSuccessStatusIsNotAnError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusUnauthorized, `{"error":{"details":"expired"}}`)

	res, err := c.DoLock(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("DoLock: %v", err)
	}
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if res.Body == nil || res.Body.Error == nil || res.Body.Error.Details != "expired" {
		t.Fatalf("body = %+v", res.Body)
	}
}

func TestUndecodableBodyIsAbsent(t *testing.T) {
	c, _ := newTestServer(t, http.StatusBadGateway, `<html>upstream error</html>`)

	res, err := c.DoUnlock(context.Background(), "veh-1")
	if err != nil {
		t.Fatalf("DoUnlock: %v", err)
	}
	if res.Body != nil {
		t.Fatalf("body = %+v, want nil", res.Body)
	}
}

func TestGetVehicles_ListPath(t *testing.T) {
	c, seen := newTestServer(t, http.StatusOK,
		`{"vehicles":[{"vehicleId":"veh-1","vehicleAuthorizationIndicator":1}]}`)

	res, err := c.GetVehicles(context.Background())
	if err != nil {
		t.Fatalf("GetVehicles: %v", err)
	}
	if seen.path != basePath {
		t.Fatalf("path = %s", seen.path)
	}
	if len(res.Body.Vehicles) != 1 || res.Body.Vehicles[0].VehicleID != "veh-1" {
		t.Fatalf("body = %+v", res.Body)
	}
}

func TestSimulatorHostOverride(t *testing.T) {
	cfg := config.TelematicsConfig{Host: "https://api.example.com", SimulatorHost: "http://localhost:3000"}
	if got := cfg.EffectiveHost(); got != "http://localhost:3000" {
		t.Fatalf("EffectiveHost = %q", got)
	}
	cfg.SimulatorHost = ""
	if got := cfg.EffectiveHost(); got != "https://api.example.com" {
		t.Fatalf("EffectiveHost = %q", got)
	}
}
