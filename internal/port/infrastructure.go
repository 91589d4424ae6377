// Package port defines the primary ports (interfaces) for the application.
// This follows the Ports and Adapters (Hexagonal Architecture) pattern.
package port

import (
	"context"
	"time"

	"github.com/insomniacslk/dhcp/dhcpv4"
	"github.com/vishvananda/netlink"
)

//go:generate mockgen -source=infrastructure.go -destination=../mock/infrastructure.go -package=mock

// CommandRunner is a port for invoking external tools with a bounded
// timeout. A missing binary is reported as an error wrapping
// exec.ErrNotFound so callers can distinguish "unavailable" from "failed".
type CommandRunner interface {
	// Run executes the named binary and returns its combined output.
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

// NetworkManager is a port for network interface operations.
// This interface abstracts netlink operations.
type NetworkManager interface {
	// GetLinkByName returns a network link by interface name
	GetLinkByName(interfaceName string) (netlink.Link, error)

	// ListAddresses returns IPv4 addresses configured on the link
	ListAddresses(link netlink.Link) ([]netlink.Addr, error)

	// AddAddress adds an IP address to the interface
	AddAddress(link netlink.Link, addr *netlink.Addr) error

	// ListRoutes returns IPv4 routes
	ListRoutes() ([]netlink.Route, error)

	// AddRoute adds a route
	AddRoute(route *netlink.Route) error

	// SetLinkUp brings the interface up
	SetLinkUp(link netlink.Link) error

	// SetLinkDown brings the interface down
	SetLinkDown(link netlink.Link) error
}

// FileManager is a port for file system operations.
// This interface abstracts file read/write operations and sysfs lookups.
type FileManager interface {
	// ReadFile reads the contents of a file
	ReadFile(filename string) ([]byte, error)

	// WriteFile writes data to a file with specified permissions
	WriteFile(filename string, data []byte, perm int) error

	// FileExists checks if a file exists
	FileExists(filename string) bool

	// Glob returns the names of all files matching the pattern
	Glob(pattern string) ([]string, error)
}

// Prober is a port for internet reachability checks.
type Prober interface {
	// Probe sends a single echo request to the target and returns an
	// error if no reply arrives within the timeout.
	Probe(ctx context.Context, target string, timeout time.Duration) error
}

// DHCPClient is a port for DHCP client operations.
// This interface abstracts DHCP lease acquisition.
type DHCPClient interface {
	// RequestLease performs DHCP DISCOVER/OFFER/REQUEST/ACK sequence
	RequestLease(ctx context.Context, interfaceName string, timeout time.Duration) (*dhcpv4.DHCPv4, error)
}

// USBLocator is a port for finding the modem in the USB device registry.
type USBLocator interface {
	// Locate returns the sysfs path of the device matching the given
	// vendor/product identifier pair, provided it exposes an
	// authorization control file.
	Locate(vendorID, productID string) (string, error)

	// Detect scans connected USB devices for a known cellular modem and
	// returns its vendor/product identifier pair.
	Detect(ctx context.Context) (vendorID, productID string, err error)
}
