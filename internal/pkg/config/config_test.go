//go:build unit

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tempDir := t.TempDir()

	t.Run("EmptyPathReturnsDefaults", func(t *testing.T) {
		config, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "cdc-wdm0", config.Modem.ControlDevice)
		assert.Equal(t, "wwan0", config.Modem.Interface)
		assert.Equal(t, "1e0e", config.Modem.USB.VendorID)
		assert.Equal(t, "9001", config.Modem.USB.ProductID)
		assert.Equal(t, 1, config.Rotation.DisconnectDelaySeconds)
		assert.Equal(t, 8, config.Rotation.ReconnectTimeoutSeconds)
		assert.Equal(t, 10, config.Rotation.ResetDelaySeconds)
		assert.False(t, config.Rotation.Aggressive)
		assert.Equal(t, "8.8.8.8", config.Probe.Target)
		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("ValidConfig", func(t *testing.T) {
		configContent := `logging:
  level: debug
  format: simple
  file: /var/log/rotator.log

server:
  port: 9090

modem:
  control_device: cdc-wdm1
  interface: wwan1
  index: 2
  usb:
    vendor_id: 2c7c
    product_id: "0125"

rotation:
  disconnect_delay: 3
  reconnect_timeout: 20
  aggressive: true
  reset_delay: 15
`
		configFile := filepath.Join(tempDir, "valid.yml")
		err := os.WriteFile(configFile, []byte(configContent), 0644)
		require.NoError(t, err)

		config, err := Load(configFile)
		require.NoError(t, err)
		assert.Equal(t, "debug", config.Logging.Level)
		assert.Equal(t, "simple", config.Logging.Format)
		assert.Equal(t, "/var/log/rotator.log", config.Logging.File)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "cdc-wdm1", config.Modem.ControlDevice)
		assert.Equal(t, "wwan1", config.Modem.Interface)
		assert.Equal(t, 2, config.Modem.Index)
		assert.Equal(t, "2c7c", config.Modem.USB.VendorID)
		assert.Equal(t, "0125", config.Modem.USB.ProductID)
		assert.Equal(t, 3, config.Rotation.DisconnectDelaySeconds)
		assert.Equal(t, 20, config.Rotation.ReconnectTimeoutSeconds)
		assert.True(t, config.Rotation.Aggressive)
		assert.Equal(t, 15, config.Rotation.ResetDelaySeconds)

		// Unset fields keep their defaults
		assert.Equal(t, 1, config.Rotation.PollIntervalSeconds)
		assert.Equal(t, "8.8.8.8", config.Probe.Target)
	})

	t.Run("NonExistentFile", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		configContent := `invalid: yaml: content: [
`
		configFile := filepath.Join(tempDir, "invalid.yml")
		err := os.WriteFile(configFile, []byte(configContent), 0644)
		require.NoError(t, err)

		_, err = Load(configFile)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestRotationConfig_Durations(t *testing.T) {
	rotation := RotationConfig{
		DisconnectDelaySeconds:  2,
		ReconnectTimeoutSeconds: 8,
		PollIntervalSeconds:     1,
		ResetDelaySeconds:       10,
	}

	assert.Equal(t, 2*time.Second, rotation.DisconnectDelay())
	assert.Equal(t, 8*time.Second, rotation.ReconnectTimeout())
	assert.Equal(t, 1*time.Second, rotation.PollInterval())
	assert.Equal(t, 10*time.Second, rotation.ResetDelay())

	t.Run("SettleDelayNormal", func(t *testing.T) {
		assert.Equal(t, 2*time.Second, rotation.SettleDelay())
	})

	t.Run("SettleDelayAggressive", func(t *testing.T) {
		aggressive := rotation
		aggressive.Aggressive = true
		assert.Equal(t, 10*time.Second, aggressive.SettleDelay())
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("DefaultsAreValid", func(t *testing.T) {
		assert.NoError(t, Default().Validate())
	})

	t.Run("PortOutOfRange", func(t *testing.T) {
		config := Default()
		config.Server.Port = 0
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "port")
	})

	t.Run("MissingInterface", func(t *testing.T) {
		config := Default()
		config.Modem.Interface = ""
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "interface is required")
	})

	t.Run("MissingControlDevice", func(t *testing.T) {
		config := Default()
		config.Modem.ControlDevice = ""
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "control device is required")
	})

	t.Run("NegativeModemIndex", func(t *testing.T) {
		config := Default()
		config.Modem.Index = -1
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "index")
	})

	t.Run("NegativeDisconnectDelay", func(t *testing.T) {
		config := Default()
		config.Rotation.DisconnectDelaySeconds = -1
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disconnect_delay")
	})

	t.Run("ZeroPollInterval", func(t *testing.T) {
		config := Default()
		config.Rotation.PollIntervalSeconds = 0
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "poll_interval")
	})

	t.Run("MissingProbeTarget", func(t *testing.T) {
		config := Default()
		config.Probe.Target = ""
		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "probe target")
	})
}
