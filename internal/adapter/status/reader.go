// Package status observes the modem's current link and reachability state.
package status

import (
	"context"
	"net"

	"modem-rotatord/internal/pkg/config"
	"modem-rotatord/internal/pkg/logging"
	"modem-rotatord/internal/port"
	"modem-rotatord/internal/types"
)

// Reader is an adapter that implements the StatusReader port using netlink
// for link state and an ICMP probe for internet reachability. Snapshots are
// recomputed on every call and never cached.
type Reader struct {
	cfg    *config.Config
	netMgr port.NetworkManager
	prober port.Prober
}

// Ensure Reader implements the StatusReader port
var _ port.StatusReader = (*Reader)(nil)

// NewReader creates a new status reader.
func NewReader(cfg *config.Config, netMgr port.NetworkManager, prober port.Prober) *Reader {
	return &Reader{
		cfg:    cfg,
		netMgr: netMgr,
		prober: prober,
	}
}

// Snapshot recomputes the link state. A missing interface or failed probe
// degrades to false/empty fields rather than an error.
func (r *Reader) Snapshot(ctx context.Context) types.LinkStatus {
	logger := logging.WithComponentAndInterface("status", r.cfg.Modem.Interface)

	snapshot := types.LinkStatus{
		Interface:     r.cfg.Modem.Interface,
		ControlDevice: r.cfg.Modem.ControlDevice,
	}

	link, err := r.netMgr.GetLinkByName(r.cfg.Modem.Interface)
	if err != nil {
		logger.WithError(err).Debug("Interface not present")
	} else {
		snapshot.InterfaceUp = link.Attrs().Flags&net.FlagUp != 0
		if snapshot.InterfaceUp {
			addrs, err := r.netMgr.ListAddresses(link)
			if err != nil {
				logger.WithError(err).Debug("Could not list addresses")
			} else {
				for _, addr := range addrs {
					if addr.IPNet == nil || addr.IPNet.IP == nil {
						continue
					}
					ip := addr.IPNet.IP
					if ip.To4() == nil || ip.IsLoopback() {
						continue
					}
					snapshot.IPAddress = ip.String()
					break
				}
			}
		}
	}

	if err := r.prober.Probe(ctx, r.cfg.Probe.Target, r.cfg.Probe.Timeout()); err != nil {
		logger.WithError(err).Debug("Reachability probe failed")
	} else {
		snapshot.InternetConnected = true
	}

	return snapshot
}
