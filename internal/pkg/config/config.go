package config

import (
	"fmt"
	"os"
	"time"

	"modem-rotatord/internal/pkg/logging"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// USBConfig identifies the modem on the USB bus. When both fields are
// empty the modem is detected by scanning connected devices for known
// cellular vendor strings.
type USBConfig struct {
	VendorID  string `yaml:"vendor_id"`
	ProductID string `yaml:"product_id"`
}

// ModemConfig describes the modem being rotated.
type ModemConfig struct {
	// ControlDevice is the management-daemon device node (e.g. cdc-wdm0).
	ControlDevice string `yaml:"control_device"`
	// Interface is the data interface observed for IP and link status.
	Interface string `yaml:"interface"`
	// Index is the ModemManager modem index.
	Index int `yaml:"index"`
	// DHCP requests a lease after bringing the interface up. Intended for
	// ethernet-backed modems; cellular interfaces auto-configure.
	DHCP bool      `yaml:"dhcp"`
	USB  USBConfig `yaml:"usb"`
}

// RotationConfig controls the timing of one rotation cycle.
// All values are whole seconds.
type RotationConfig struct {
	DisconnectDelaySeconds  int  `yaml:"disconnect_delay"`
	ReconnectTimeoutSeconds int  `yaml:"reconnect_timeout"`
	PollIntervalSeconds     int  `yaml:"poll_interval"`
	Aggressive              bool `yaml:"aggressive"`
	ResetDelaySeconds       int  `yaml:"reset_delay"`
}

// DisconnectDelay returns the settle delay between disconnect and connect.
func (r RotationConfig) DisconnectDelay() time.Duration {
	return time.Duration(r.DisconnectDelaySeconds) * time.Second
}

// ReconnectTimeout returns the connectivity verification deadline.
func (r RotationConfig) ReconnectTimeout() time.Duration {
	return time.Duration(r.ReconnectTimeoutSeconds) * time.Second
}

// PollInterval returns the interval between verification polls.
func (r RotationConfig) PollInterval() time.Duration {
	return time.Duration(r.PollIntervalSeconds) * time.Second
}

// ResetDelay returns the settle delay used for aggressive rotation.
func (r RotationConfig) ResetDelay() time.Duration {
	return time.Duration(r.ResetDelaySeconds) * time.Second
}

// SettleDelay returns the delay between disconnect and connect for the
// configured rotation mode.
func (r RotationConfig) SettleDelay() time.Duration {
	if r.Aggressive {
		return r.ResetDelay()
	}
	return r.DisconnectDelay()
}

// ProbeConfig controls the internet reachability probe.
type ProbeConfig struct {
	Target         string `yaml:"target"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Timeout returns the per-probe deadline.
func (p ProbeConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Config represents the main configuration structure. It is an immutable
// snapshot for the lifetime of the process.
type Config struct {
	Server   ServerConfig      `yaml:"server"`
	Modem    ModemConfig       `yaml:"modem"`
	Rotation RotationConfig    `yaml:"rotation"`
	Probe    ProbeConfig       `yaml:"probe"`
	Logging  logging.LogConfig `yaml:"logging"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Modem: ModemConfig{
			ControlDevice: "cdc-wdm0",
			Interface:     "wwan0",
			Index:         0,
			USB: USBConfig{
				VendorID:  "1e0e",
				ProductID: "9001",
			},
		},
		Rotation: RotationConfig{
			DisconnectDelaySeconds:  1,
			ReconnectTimeoutSeconds: 8,
			PollIntervalSeconds:     1,
			ResetDelaySeconds:       10,
		},
		Probe: ProbeConfig{
			Target:         "8.8.8.8",
			TimeoutSeconds: 3,
		},
		Logging: logging.LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file, layered over the defaults.
// An empty path returns the defaults unchanged.
func Load(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	return config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Modem.Interface == "" {
		return fmt.Errorf("modem interface is required")
	}
	if c.Modem.ControlDevice == "" {
		return fmt.Errorf("modem control device is required")
	}
	if c.Modem.Index < 0 {
		return fmt.Errorf("modem index must not be negative")
	}
	if c.Rotation.DisconnectDelaySeconds < 0 {
		return fmt.Errorf("rotation disconnect_delay must not be negative")
	}
	if c.Rotation.ReconnectTimeoutSeconds < 0 {
		return fmt.Errorf("rotation reconnect_timeout must not be negative")
	}
	if c.Rotation.PollIntervalSeconds < 1 {
		return fmt.Errorf("rotation poll_interval must be at least 1 second")
	}
	if c.Rotation.ResetDelaySeconds < 0 {
		return fmt.Errorf("rotation reset_delay must not be negative")
	}
	if c.Probe.Target == "" {
		return fmt.Errorf("probe target is required")
	}
	if c.Probe.TimeoutSeconds < 1 {
		return fmt.Errorf("probe timeout must be at least 1 second")
	}
	return nil
}
