// ABOUTME: mDNS service discovery for ambience streaming servers
// ABOUTME: Handles advertisement (server side) and browsing (player side)
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/hashicorp/mdns"
)

const (
	serviceType       = "_ambience._tcp"
	serverServiceType = "_ambience-server._tcp"

	queryTimeout = 3 * time.Second
)

// Config holds discovery configuration.
type Config struct {
	ServiceName string
	Port        int
	ServerMode  bool // advertise as a streaming server rather than a player
}

// Manager handles mDNS operations.
type Manager struct {
	config  Config
	ctx     context.Context
	cancel  context.CancelFunc
	servers chan *ServerInfo
}

// ServerInfo describes a discovered streaming server.
type ServerInfo struct {
	Name string
	Host string
	Port int
}

// Addr returns the server's host:port dial address.
func (s *ServerInfo) Addr() string {
	return net.JoinHostPort(s.Host, fmt.Sprintf("%d", s.Port))
}

// NewManager creates a discovery manager.
func NewManager(config Config) *Manager {
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		servers: make(chan *ServerInfo, 10),
	}
}

// Advertise announces this service via mDNS.
func (m *Manager) Advertise() error {
	ips, err := getLocalIPs()
	if err != nil {
		return fmt.Errorf("failed to get local IPs: %w", err)
	}

	st := serviceType
	if m.config.ServerMode {
		st = serverServiceType
	}

	service, err := mdns.NewMDNSService(
		m.config.ServiceName,
		st,
		"",
		"",
		m.config.Port,
		ips,
		[]string{"path=/ambience"},
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return fmt.Errorf("failed to create mdns server: %w", err)
	}

	log.Printf("Advertising mDNS service: %s on port %d (type: %s)", m.config.ServiceName, m.config.Port, st)

	go func() {
		<-m.ctx.Done()
		server.Shutdown()
	}()

	return nil
}

// Browse starts searching for ambience streaming servers in the
// background. Results arrive on Servers.
func (m *Manager) Browse() error {
	go m.browseLoop()
	return nil
}

func (m *Manager) browseLoop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		entries := make(chan *mdns.ServiceEntry, 10)

		go func() {
			for entry := range entries {
				server, ok := serverInfoFromEntry(entry)
				if !ok {
					continue
				}

				log.Printf("Discovered server: %s at %s:%d", server.Name, server.Host, server.Port)
				m.publish(server)
			}
		}()

		params := &mdns.QueryParam{
			Service: serverServiceType,
			Domain:  "local",
			Timeout: queryTimeout,
			Entries: entries,
		}

		mdns.Query(params)
		close(entries)
	}
}

// serverInfoFromEntry converts an mDNS answer, preferring the IPv4
// address and skipping entries that resolved to no address at all.
func serverInfoFromEntry(entry *mdns.ServiceEntry) (*ServerInfo, bool) {
	var host string
	switch {
	case entry.AddrV4 != nil:
		host = entry.AddrV4.String()
	case entry.AddrV6 != nil:
		host = entry.AddrV6.String()
	default:
		return nil, false
	}

	return &ServerInfo{
		Name: entry.Name,
		Host: host,
		Port: entry.Port,
	}, true
}

func (m *Manager) publish(server *ServerInfo) {
	select {
	case m.servers <- server:
	case <-m.ctx.Done():
	}
}

// Servers returns the channel of discovered servers.
func (m *Manager) Servers() <-chan *ServerInfo {
	return m.servers
}

// Discover browses for streaming servers for the given window and
// returns the unique set found. Repeated query rounds re-announce the
// same server; duplicates are dropped by dial address.
func (m *Manager) Discover(wait time.Duration) []*ServerInfo {
	if err := m.Browse(); err != nil {
		return nil
	}

	deadline := time.After(wait)
	var found []*ServerInfo
	for {
		select {
		case server := <-m.servers:
			found = appendUnique(found, server)
		case <-deadline:
			return found
		case <-m.ctx.Done():
			return found
		}
	}
}

func appendUnique(list []*ServerInfo, server *ServerInfo) []*ServerInfo {
	for _, have := range list {
		if have.Addr() == server.Addr() {
			return list
		}
	}
	return append(list, server)
}

// Stop stops the discovery manager.
func (m *Manager) Stop() {
	m.cancel()
}

// getLocalIPs returns non-loopback IPv4 addresses.
func getLocalIPs() ([]net.IP, error) {
	var ips []net.IP

	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
				if ipnet.IP.To4() != nil {
					ips = append(ips, ipnet.IP)
				}
			}
		}
	}

	return ips, nil
}
