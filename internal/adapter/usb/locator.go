// Package usb locates the modem in the kernel's USB device registry.
package usb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/port"
)

// ErrDeviceNotFound is returned when no matching USB device is present.
var ErrDeviceNotFound = errors.New("usb device not found")

// DefaultSysfsRoot is the kernel's USB device registry.
const DefaultSysfsRoot = "/sys/bus/usb/devices"

// modemVendorKeywords are strings that identify cellular modems in lsusb
// output when no vendor/product pair is configured.
var modemVendorKeywords = []string{"SIMCOM", "SIM7600", "QUALCOMM", "SIMTECH", "OPTION"}

const lsusbTimeout = 10 * time.Second

// Locator is an adapter that implements the USBLocator port by enumerating
// sysfs device nodes. Every node exposing vendor/product attributes is
// considered; a match is returned only if the node also exposes the
// authorization control file used to power-cycle it.
type Locator struct {
	files     port.FileManager
	runner    port.CommandRunner
	sysfsRoot string
}

// Ensure Locator implements the USBLocator port
var _ port.USBLocator = (*Locator)(nil)

// NewLocator creates a new USB device locator over the default sysfs root.
func NewLocator(files port.FileManager, runner port.CommandRunner) *Locator {
	return &Locator{
		files:     files,
		runner:    runner,
		sysfsRoot: DefaultSysfsRoot,
	}
}

// NewLocatorWithRoot creates a locator over an alternate registry root.
func NewLocatorWithRoot(files port.FileManager, runner port.CommandRunner, root string) *Locator {
	return &Locator{
		files:     files,
		runner:    runner,
		sysfsRoot: root,
	}
}

// Locate returns the sysfs path of the device matching the vendor/product
// pair. An unpopulated or partially populated registry degrades to
// ErrDeviceNotFound rather than an error per entry.
func (l *Locator) Locate(vendorID, productID string) (string, error) {
	logger := logging.WithComponent("usb")

	vendorFiles, err := l.files.Glob(filepath.Join(l.sysfsRoot, "*", "idVendor"))
	if err != nil {
		return "", fmt.Errorf("failed to enumerate usb devices: %w", err)
	}

	for _, vendorFile := range vendorFiles {
		vendor, err := l.files.ReadFile(vendorFile)
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(vendor)) != vendorID {
			continue
		}

		devicePath := filepath.Dir(vendorFile)
		product, err := l.files.ReadFile(filepath.Join(devicePath, "idProduct"))
		if err != nil {
			continue
		}
		if strings.TrimSpace(string(product)) != productID {
			continue
		}

		// The device is only usable if the kernel exposes its
		// authorization control.
		if !l.files.FileExists(filepath.Join(devicePath, "authorized")) {
			logger.WithField("device", devicePath).Warn("Matching device has no authorized file, skipping")
			continue
		}

		logger.WithField("device", devicePath).Debug("Located modem device")
		return devicePath, nil
	}

	return "", fmt.Errorf("no device %s:%s with authorization control: %w", vendorID, productID, ErrDeviceNotFound)
}

// Detect scans lsusb output for a known cellular modem and returns its
// vendor/product identifier pair.
func (l *Locator) Detect(ctx context.Context) (string, string, error) {
	output, err := l.runner.Run(ctx, lsusbTimeout, "lsusb")
	if err != nil {
		return "", "", fmt.Errorf("failed to list usb devices: %w", err)
	}

	for _, line := range strings.Split(string(output), "\n") {
		upper := strings.ToUpper(line)
		matched := false
		for _, keyword := range modemVendorKeywords {
			if strings.Contains(upper, keyword) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		// Line format: Bus 001 Device 004: ID 1e0e:9001 Qualcomm / Option SimTech
		_, after, found := strings.Cut(line, " ID ")
		if !found {
			continue
		}
		idPair := strings.Fields(after)
		if len(idPair) == 0 {
			continue
		}
		vendorID, productID, found := strings.Cut(idPair[0], ":")
		if !found || vendorID == "" || productID == "" {
			continue
		}

		logging.WithComponent("usb").WithFields(map[string]interface{}{
			"vendor_id":  vendorID,
			"product_id": productID,
		}).Info("Detected cellular modem")
		return vendorID, productID, nil
	}

	return "", "", fmt.Errorf("no cellular modem in lsusb output: %w", ErrDeviceNotFound)
}
