package host

import (
	"context"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/egoavara/rau/internal/debug"
	"github.com/egoavara/rau/internal/rau"
)

const defaultProbeTimeout = 2 * time.Second

// Connectivity probes the network by dialing the update server.
type Connectivity struct {
	Address string
	Timeout time.Duration

	dial       func(ctx context.Context, network, address string) (net.Conn, error)
	interfaces func() ([]net.Interface, error)
}

// NewConnectivity creates a probe for the host of serverURL.
func NewConnectivity(serverURL string) *Connectivity {
	d := &net.Dialer{}
	return &Connectivity{
		Address:    probeAddress(serverURL),
		Timeout:    defaultProbeTimeout,
		dial:       d.DialContext,
		interfaces: net.Interfaces,
	}
}

func probeAddress(serverURL string) string {
	u, err := url.Parse(serverURL)
	if err != nil || u.Host == "" {
		return serverURL
	}
	if u.Port() != "" {
		return u.Host
	}
	port := "443"
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port)
}

// ConnectionType dials the server and classifies the interface the
// connection left through.
func (c *Connectivity) ConnectionType() rau.ConnectionType {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	conn, err := c.dial(ctx, "tcp", c.Address)
	if err != nil {
		debug.Logf("connectivity probe %s failed: %v", c.Address, err)
		return rau.ConnectionNone
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.TCPAddr)
	if !ok || c.interfaces == nil {
		return rau.ConnectionUnknown
	}
	ifaces, err := c.interfaces()
	if err != nil {
		return rau.ConnectionUnknown
	}
	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, a := range addrs {
			if ipnet, ok := a.(*net.IPNet); ok && ipnet.IP.Equal(addr.IP) {
				return classifyInterface(iface.Name)
			}
		}
	}
	return rau.ConnectionUnknown
}

func classifyInterface(name string) rau.ConnectionType {
	switch {
	case strings.HasPrefix(name, "wl"), strings.HasPrefix(name, "wifi"):
		return rau.ConnectionWifi
	case strings.HasPrefix(name, "wwan"), strings.HasPrefix(name, "rmnet"), strings.HasPrefix(name, "ppp"):
		return rau.ConnectionMobile
	case strings.HasPrefix(name, "eth"), strings.HasPrefix(name, "en"):
		return rau.ConnectionEthernet
	default:
		return rau.ConnectionUnknown
	}
}
