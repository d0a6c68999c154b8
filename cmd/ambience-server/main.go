// ABOUTME: Entry point for the ambience streaming server
// ABOUTME: Parses CLI flags and runs the WebSocket streamer
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quietpath/ambience-go/internal/server"
	"github.com/quietpath/ambience-go/pkg/texture"
)

var (
	port       = flag.Int("port", 8930, "WebSocket listen port")
	name       = flag.String("name", "", "Server name (default: hostname-ambience)")
	kind       = flag.String("kind", "pink-noise", "Initial streamed ambiance kind")
	enableMDNS = flag.Bool("mdns", true, "Advertise via mDNS")
	debug      = flag.Bool("debug", false, "Verbose logging")
)

func main() {
	flag.Parse()

	serverName := *name
	if serverName == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		serverName = hostname + "-ambience"
	}

	initialKind, known := texture.ParseKind(*kind)
	if !known {
		log.Printf("Unknown ambiance %q, streaming fallback texture", *kind)
	}

	srv := server.New(server.Config{
		Port:       *port,
		Name:       serverName,
		EnableMDNS: *enableMDNS,
		Debug:      *debug,
		Kind:       initialKind,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Printf("Interrupt received")
		srv.Stop()
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
