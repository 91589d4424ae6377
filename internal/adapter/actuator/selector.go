// Package actuator disconnects and connects the modem through an ordered
// list of OS-level mechanisms, falling back when one is unavailable or
// fails.
package actuator

import (
	"context"
	"errors"
	"net"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/port"
	"modem-rotatord/internal/types"

	"github.com/vishvananda/netlink"
)

// Timing bounds every external call and fixes the settle delay applied
// after a successful connect, per mechanism. USB re-enumeration and
// kill-switch unblock need several seconds; an interface flip does not.
type Timing struct {
	ManagerTimeout time.Duration // mmcli and nmcli invocations
	RfkillTimeout  time.Duration
	KillTimeout    time.Duration // dial-up helper termination
	DHCPTimeout    time.Duration
	ManagerSettle  time.Duration
	LinkSettle     time.Duration
	USBSettle      time.Duration
	RfkillSettle   time.Duration
}

// DefaultTiming returns the production timing profile.
func DefaultTiming() Timing {
	return Timing{
		ManagerTimeout: 15 * time.Second,
		RfkillTimeout:  10 * time.Second,
		KillTimeout:    5 * time.Second,
		DHCPTimeout:    15 * time.Second,
		ManagerSettle:  2 * time.Second,
		LinkSettle:     2 * time.Second,
		USBSettle:      10 * time.Second,
		RfkillSettle:   8 * time.Second,
	}
}

// strategy is one actuation mechanism. Strategies are tried in order and
// the first success short-circuits the chain.
type strategy struct {
	name   string
	run    func(ctx context.Context) (types.Outcome, string)
	settle time.Duration
}

// dialupHelpers are processes that hold a dial-up session open past a
// disconnect.
var dialupHelpers = []string{"pppd", "wvdial"}

// Selector is an adapter that implements the ActuationSelector port.
// Failures never propagate as errors; every attempt is translated into a
// tri-state outcome and the next mechanism is tried.
type Selector struct {
	cfg     *config.Config
	runner  port.CommandRunner
	netMgr  port.NetworkManager
	files   port.FileManager
	dhcp    port.DHCPClient
	locator port.USBLocator
	timing  Timing
}

// Ensure Selector implements the ActuationSelector port
var _ port.ActuationSelector = (*Selector)(nil)

// NewSelector creates a new actuation strategy selector.
func NewSelector(cfg *config.Config, runner port.CommandRunner, netMgr port.NetworkManager, files port.FileManager, dhcp port.DHCPClient, locator port.USBLocator) *Selector {
	return &Selector{
		cfg:     cfg,
		runner:  runner,
		netMgr:  netMgr,
		files:   files,
		dhcp:    dhcp,
		locator: locator,
		timing:  DefaultTiming(),
	}
}

// Disconnect drops the modem connection using the first mechanism that
// succeeds. With aggressive rotation, known dial-up helpers are terminated
// afterwards to force a full session teardown.
func (s *Selector) Disconnect(ctx context.Context) (bool, []types.ActuationOutcome) {
	ok, attempts := s.attempt(ctx, s.disconnectStrategies())
	if ok && s.cfg.Rotation.Aggressive {
		s.killDialupHelpers(ctx)
	}
	return ok, attempts
}

// Connect re-establishes the modem connection, mirroring the disconnect
// mechanisms. A mechanism-appropriate settle delay follows the first
// success.
func (s *Selector) Connect(ctx context.Context) (bool, []types.ActuationOutcome) {
	return s.attempt(ctx, s.connectStrategies())
}

func (s *Selector) disconnectStrategies() []strategy {
	return []strategy{
		{name: "modemmanager", run: s.mmDisconnect},
		{name: "networkmanager", run: s.nmDisconnect},
		{name: "link-down", run: s.linkDown},
		{name: "usb-deauthorize", run: func(ctx context.Context) (types.Outcome, string) {
			return s.usbAuthorize(ctx, "0")
		}},
		{name: "rfkill-block", run: func(ctx context.Context) (types.Outcome, string) {
			return s.rfkill(ctx, "block")
		}},
	}
}

func (s *Selector) connectStrategies() []strategy {
	return []strategy{
		{name: "modemmanager", run: s.mmConnect, settle: s.timing.ManagerSettle},
		{name: "networkmanager", run: s.nmConnect, settle: s.timing.ManagerSettle},
		{name: "link-up", run: s.linkUp, settle: s.timing.LinkSettle},
		{name: "usb-reauthorize", run: func(ctx context.Context) (types.Outcome, string) {
			return s.usbAuthorize(ctx, "1")
		}, settle: s.timing.USBSettle},
		{name: "rfkill-unblock", run: func(ctx context.Context) (types.Outcome, string) {
			return s.rfkill(ctx, "unblock")
		}, settle: s.timing.RfkillSettle},
	}
}

// attempt iterates the strategy list and short-circuits on the first
// success.
func (s *Selector) attempt(ctx context.Context, strategies []strategy) (bool, []types.ActuationOutcome) {
	logger := logging.WithComponentAndInterface("actuator", s.cfg.Modem.Interface)
	attempts := make([]types.ActuationOutcome, 0, len(strategies))

	for _, st := range strategies {
		outcome, detail := st.run(ctx)
		attempts = append(attempts, types.ActuationOutcome{
			Method:  st.name,
			Outcome: outcome,
			Detail:  detail,
		})

		entry := logger.WithField("method", st.name)
		switch outcome {
		case types.OutcomeSuccess:
			entry.Info("Actuation succeeded")
			sleepCtx(ctx, st.settle)
			return true, attempts
		case types.OutcomeUnavailable:
			entry.WithField("detail", detail).Debug("Mechanism unavailable, trying next")
		default:
			entry.WithField("detail", detail).Warn("Mechanism failed, trying next")
		}
	}

	logger.Error("All actuation mechanisms exhausted")
	return false, attempts
}

// mmDisconnect tears the bearer down through ModemManager. A bearer that
// was never connected makes simple-disconnect fail; disabling the modem
// still tears the session down.
func (s *Selector) mmDisconnect(ctx context.Context) (types.Outcome, string) {
	index := strconv.Itoa(s.cfg.Modem.Index)
	_, err := s.runner.Run(ctx, s.timing.ManagerTimeout, "mmcli", "-m", index, "--simple-disconnect")
	if err == nil {
		return types.OutcomeSuccess, ""
	}
	if errors.Is(err, exec.ErrNotFound) {
		return types.OutcomeUnavailable, err.Error()
	}
	_, err = s.runner.Run(ctx, s.timing.ManagerTimeout, "mmcli", "-m", index, "--disable")
	return classify(err)
}

func (s *Selector) mmConnect(ctx context.Context) (types.Outcome, string) {
	index := strconv.Itoa(s.cfg.Modem.Index)
	_, err := s.runner.Run(ctx, s.timing.ManagerTimeout, "mmcli", "-m", index, "--enable")
	return classify(err)
}

func (s *Selector) nmDisconnect(ctx context.Context) (types.Outcome, string) {
	_, err := s.runner.Run(ctx, s.timing.ManagerTimeout, "nmcli", "device", "disconnect", s.cfg.Modem.ControlDevice)
	return classify(err)
}

func (s *Selector) nmConnect(ctx context.Context) (types.Outcome, string) {
	_, err := s.runner.Run(ctx, s.timing.ManagerTimeout, "nmcli", "device", "connect", s.cfg.Modem.ControlDevice)
	return classify(err)
}

// linkDown brings the data interface administratively down via netlink.
func (s *Selector) linkDown(ctx context.Context) (types.Outcome, string) {
	link, err := s.netMgr.GetLinkByName(s.cfg.Modem.Interface)
	if err != nil {
		return types.OutcomeFailure, err.Error()
	}
	if err := s.netMgr.SetLinkDown(link); err != nil {
		return types.OutcomeFailure, err.Error()
	}
	return types.OutcomeSuccess, ""
}

// linkUp brings the data interface up and, for DHCP-backed interfaces,
// acquires and applies a lease.
func (s *Selector) linkUp(ctx context.Context) (types.Outcome, string) {
	link, err := s.netMgr.GetLinkByName(s.cfg.Modem.Interface)
	if err != nil {
		return types.OutcomeFailure, err.Error()
	}
	if err := s.netMgr.SetLinkUp(link); err != nil {
		return types.OutcomeFailure, err.Error()
	}
	if s.cfg.Modem.DHCP {
		if err := s.acquireLease(ctx, link); err != nil {
			return types.OutcomeFailure, err.Error()
		}
	}
	return types.OutcomeSuccess, ""
}

// acquireLease requests a DHCP lease on the data interface and applies the
// address and default route.
func (s *Selector) acquireLease(ctx context.Context, link netlink.Link) error {
	ack, err := s.dhcp.RequestLease(ctx, s.cfg.Modem.Interface, s.timing.DHCPTimeout)
	if err != nil {
		return err
	}

	subnetMask := ack.SubnetMask()
	if subnetMask == nil {
		subnetMask = net.IPv4Mask(255, 255, 255, 0)
	}
	ipNet := &net.IPNet{IP: ack.YourIPAddr, Mask: subnetMask}

	existing, err := s.netMgr.ListAddresses(link)
	if err != nil {
		return err
	}
	configured := false
	for _, addr := range existing {
		if addr.IPNet != nil && addr.IPNet.IP.Equal(ipNet.IP) {
			configured = true
			break
		}
	}
	if !configured {
		leaseTime := ack.IPAddressLeaseTime(60 * time.Second)
		addr := &netlink.Addr{
			IPNet:       ipNet,
			ValidLft:    int(leaseTime.Seconds()),
			PreferedLft: int(leaseTime.Seconds()),
		}
		if err := s.netMgr.AddAddress(link, addr); err != nil {
			return err
		}
	}

	routers := ack.Router()
	if len(routers) > 0 {
		if err := s.ensureDefaultRoute(link, routers[0]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Selector) ensureDefaultRoute(link netlink.Link, gateway net.IP) error {
	routes, err := s.netMgr.ListRoutes()
	if err != nil {
		return err
	}
	for _, route := range routes {
		if (route.Dst == nil || route.Dst.String() == "0.0.0.0/0") &&
			route.Gw != nil && route.Gw.Equal(gateway) &&
			route.LinkIndex == link.Attrs().Index {
			return nil
		}
	}
	return s.netMgr.AddRoute(&netlink.Route{
		LinkIndex: link.Attrs().Index,
		Gw:        gateway,
	})
}

// usbAuthorize writes value to the modem's sysfs authorization control,
// the power-cycle equivalent. value "0" de-authorizes, "1" re-authorizes.
func (s *Selector) usbAuthorize(ctx context.Context, value string) (types.Outcome, string) {
	vendorID := s.cfg.Modem.USB.VendorID
	productID := s.cfg.Modem.USB.ProductID
	if vendorID == "" || productID == "" {
		var err error
		vendorID, productID, err = s.locator.Detect(ctx)
		if err != nil {
			return types.OutcomeUnavailable, err.Error()
		}
	}

	devicePath, err := s.locator.Locate(vendorID, productID)
	if err != nil {
		return types.OutcomeUnavailable, err.Error()
	}

	authFile := filepath.Join(devicePath, "authorized")
	if err := s.files.WriteFile(authFile, []byte(value), 0644); err != nil {
		return types.OutcomeFailure, err.Error()
	}
	return types.OutcomeSuccess, "wrote " + value + " to " + authFile
}

// rfkill blocks or unblocks the cellular radio kill-switch.
func (s *Selector) rfkill(ctx context.Context, action string) (types.Outcome, string) {
	_, err := s.runner.Run(ctx, s.timing.RfkillTimeout, "rfkill", action, "wwan")
	return classify(err)
}

// killDialupHelpers terminates known dial-up helper processes.
// Best-effort: pkill exits non-zero when nothing matched.
func (s *Selector) killDialupHelpers(ctx context.Context) {
	logger := logging.WithComponent("actuator")
	for _, name := range dialupHelpers {
		if _, err := s.runner.Run(ctx, s.timing.KillTimeout, "pkill", "-x", name); err != nil {
			logger.WithField("helper", name).Debug("No dial-up helper terminated")
		} else {
			logger.WithField("helper", name).Info("Terminated dial-up helper")
		}
	}
}

// classify maps a command error onto the tri-state outcome: a missing
// binary is unavailable, everything else that errored is a failure.
func classify(err error) (types.Outcome, string) {
	switch {
	case err == nil:
		return types.OutcomeSuccess, ""
	case errors.Is(err, exec.ErrNotFound):
		return types.OutcomeUnavailable, err.Error()
	default:
		return types.OutcomeFailure, err.Error()
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
