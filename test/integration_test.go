//go:build integration
// +build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"modem-rotatord/internal/adapter/rotation"
	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/server"
	"modem-rotatord/internal/types"
)

// fakeModem simulates the modem's connection state. The selector flips it,
// the reader observes it, which closes the disconnect/reconnect/verify loop
// without touching real hardware.
type fakeModem struct {
	mu        sync.Mutex
	connected bool
}

func (m *fakeModem) Disconnect(ctx context.Context) (bool, []types.ActuationOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return true, []types.ActuationOutcome{{Method: "modemmanager", Outcome: types.OutcomeSuccess}}
}

func (m *fakeModem) Connect(ctx context.Context) (bool, []types.ActuationOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	return true, []types.ActuationOutcome{{Method: "modemmanager", Outcome: types.OutcomeSuccess}}
}

func (m *fakeModem) Snapshot(ctx context.Context) types.LinkStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return types.LinkStatus{
		Interface:         "wwan0",
		ControlDevice:     "cdc-wdm0",
		InterfaceUp:       m.connected,
		IPAddress:         "10.64.12.3",
		InternetConnected: m.connected,
	}
}

func newTestService(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Rotation.DisconnectDelaySeconds = 0
	cfg.Rotation.ReconnectTimeoutSeconds = 0

	modem := &fakeModem{connected: true}
	controller := rotation.NewController(cfg, modem, modem)
	service := httptest.NewServer(server.New(cfg, controller).Handler())
	t.Cleanup(service.Close)
	return service
}

func getJSON(t *testing.T, url string, out interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s returned %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding %s response: %v", url, err)
	}
}

func postJSON(t *testing.T, url string, out interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s returned %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decoding %s response: %v", url, err)
	}
}

// TestRotationService exercises the assembled service over real HTTP:
// status before rotation, two rotations, and the rotation history they
// leave behind.
func TestRotationService(t *testing.T) {
	service := newTestService(t)

	t.Run("Health", func(t *testing.T) {
		var health map[string]string
		getJSON(t, service.URL+"/health", &health)
		if health["status"] != "healthy" {
			t.Errorf("expected healthy, got %q", health["status"])
		}
	})

	t.Run("Status_Before_Rotation", func(t *testing.T) {
		var status types.ConnectivityStatus
		getJSON(t, service.URL+"/status", &status)
		if !status.InternetConnected {
			t.Error("expected internet_connected before rotation")
		}
		if status.RotationCount != 0 {
			t.Errorf("expected rotation_count 0, got %d", status.RotationCount)
		}
		if status.LastRotation != nil {
			t.Errorf("expected no last_rotation, got %v", *status.LastRotation)
		}
	})

	t.Run("Rotate_Twice", func(t *testing.T) {
		for want := uint64(1); want <= 2; want++ {
			var result types.RotationResult
			postJSON(t, service.URL+"/rotate", &result)
			if !result.Success {
				t.Fatalf("rotation %d failed: %s", want, result.Error)
			}
			if result.TotalRotations != want {
				t.Errorf("expected total_rotations %d, got %d", want, result.TotalRotations)
			}
			if result.FinalStatus == nil || !result.FinalStatus.InternetConnected {
				t.Error("expected final status with internet_connected")
			}
		}
	})

	t.Run("Status_After_Rotation", func(t *testing.T) {
		var status types.ConnectivityStatus
		getJSON(t, service.URL+"/status", &status)
		if status.RotationCount != 2 {
			t.Errorf("expected rotation_count 2, got %d", status.RotationCount)
		}
		if status.LastRotation == nil {
			t.Fatal("expected last_rotation to be set")
		}
		if _, err := time.Parse(time.RFC3339, *status.LastRotation); err != nil {
			t.Errorf("last_rotation is not RFC3339: %v", err)
		}
	})

	t.Run("Unknown_Endpoint", func(t *testing.T) {
		resp, err := http.Get(service.URL + "/unknown")
		if err != nil {
			t.Fatalf("GET /unknown failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}
