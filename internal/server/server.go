// ABOUTME: Ambience streaming server
// ABOUTME: Manages WebSocket connections, client codecs and control messages
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/quietpath/ambience-go/internal/discovery"
	"github.com/quietpath/ambience-go/internal/protocol"
	"github.com/quietpath/ambience-go/pkg/texture"
)

// Config holds server configuration.
type Config struct {
	Port       int
	Name       string
	EnableMDNS bool
	Debug      bool
	Kind       texture.Kind // initial streamed ambiance
}

// Server streams procedurally generated ambience to WebSocket clients.
type Server struct {
	config   Config
	serverID string

	upgrader websocket.Upgrader

	httpServer *http.Server
	mux        *http.ServeMux

	clients   map[string]*Client
	clientsMu sync.RWMutex

	// Monotonic stream clock (microseconds)
	clockStart time.Time

	engine *StreamEngine

	mdnsManager *discovery.Manager

	stopChan   chan struct{}
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	wg         sync.WaitGroup
}

// Client represents a connected listener.
type Client struct {
	ID   string
	Name string
	Conn *websocket.Conn

	// Negotiated codec: "pcm" or "opus"
	Codec       string
	opusEncoder *OpusEncoder

	sendChan chan interface{}
}

// encodePayload converts one PCM chunk to the client's wire codec.
func (c *Client) encodePayload(pcm []int16) ([]byte, error) {
	if c.Codec == "opus" && c.opusEncoder != nil {
		return c.opusEncoder.Encode(pcm)
	}
	return encodePCM(pcm), nil
}

// New creates a server instance.
func New(config Config) *Server {
	if config.Name == "" {
		config.Name = "Ambience Server"
	}
	if config.Kind == "" {
		config.Kind = texture.KindPinkNoise
	}

	return &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Local-network streaming service; browser origins are not
			// a trust boundary here.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients:    make(map[string]*Client),
		clockStart: time.Now(),
		stopChan:   make(chan struct{}),
	}
}

// Start runs the server until Stop or a fatal listener error.
func (s *Server) Start() error {
	log.Printf("Server starting: %s (ID: %s)", s.config.Name, s.serverID)

	s.engine = NewStreamEngine(s, s.config.Kind)

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			ServiceName: s.config.Name,
			Port:        s.config.Port,
			ServerMode:  true,
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		}
	}

	s.mux.HandleFunc("/ambience", s.handleWebSocket)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.engine.Start()
	}()

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("WebSocket server listening on %s", addr)

	s.httpServer = &http.Server{Addr: addr, Handler: s.mux}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-s.stopChan:
		log.Printf("Server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		serverErr = err
	}

	s.shutdownMu.Lock()
	s.isShutdown = true
	s.shutdownMu.Unlock()

	s.engine.Stop()

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	s.wg.Wait()
	log.Printf("Server stopped cleanly")

	if serverErr != nil {
		return fmt.Errorf("HTTP server failed: %w", serverErr)
	}
	return nil
}

// Stop stops the server.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// handleWebSocket upgrades and serves a client connection.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("New WebSocket connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

// handleConnection manages one client for its whole lifetime.
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.shutdownMu.RLock()
	if s.isShutdown {
		s.shutdownMu.RUnlock()
		log.Printf("Rejecting connection during shutdown")
		return
	}
	s.shutdownMu.RUnlock()

	if s.config.Debug {
		log.Printf("[DEBUG] New connection, waiting for handshake")
	}

	// Wait for client/hello
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("Error reading hello: %v", err)
		return
	}

	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}
	if msg.Type != "client/hello" {
		log.Printf("Expected client/hello, got %s", msg.Type)
		return
	}

	hello, err := decodePayload[protocol.ClientHello](msg.Payload)
	if err != nil {
		log.Printf("Error unmarshaling client hello: %v", err)
		return
	}
	if hello.ClientID == "" || hello.Name == "" {
		log.Printf("Client hello missing ClientID or Name")
		return
	}

	log.Printf("Client hello: %s (ID: %s, codecs: %v)", hello.Name, hello.ClientID, hello.SupportedCodecs)

	client := &Client{
		ID:       hello.ClientID,
		Name:     hello.Name,
		Conn:     conn,
		Codec:    negotiateCodec(hello.SupportedCodecs),
		sendChan: make(chan interface{}, 100),
	}

	if client.Codec == "opus" {
		enc, err := NewOpusEncoder(DefaultSampleRate, DefaultChannels, ChunkSamples)
		if err != nil {
			log.Printf("Opus unavailable for %s, falling back to pcm: %v", client.Name, err)
			client.Codec = "pcm"
		} else {
			client.opusEncoder = enc
		}
	}

	s.clientsMu.Lock()
	if existing, exists := s.clients[client.ID]; exists {
		s.clientsMu.Unlock()
		log.Printf("Client ID %s already connected (name: %s), rejecting duplicate", client.ID, existing.Name)

		errorMsg := protocol.Message{
			Type: "server/error",
			Payload: protocol.ServerError{
				Error:   "duplicate_client_id",
				Message: "Client ID already connected",
			},
		}
		if data, err := json.Marshal(errorMsg); err == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
		return
	}
	s.clients[client.ID] = client
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, client.ID)
		s.clientsMu.Unlock()
		close(client.sendChan)
		log.Printf("Client disconnected: %s", client.Name)
	}()

	serverHello := protocol.ServerHello{
		ServerID: s.serverID,
		Name:     s.config.Name,
		Version:  protocol.Version,
	}
	if err := s.sendMessage(client, "server/hello", serverHello); err != nil {
		log.Printf("Error sending server hello: %v", err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clientWriter(client)
	}()

	s.engine.AddClient(client)
	defer s.engine.RemoveClient(client)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		s.handleClientMessage(client, data)
	}
}

// clientWriter drains the client's send channel onto the socket.
func (s *Server) clientWriter(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	const writeDeadline = 10 * time.Second

	for {
		select {
		case msg, ok := <-client.sendChan:
			if !ok {
				return
			}

			switch v := msg.(type) {
			case []byte:
				client.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := client.Conn.WriteMessage(websocket.BinaryMessage, v); err != nil {
					log.Printf("Error writing binary message: %v", err)
					return
				}
			default:
				data, err := json.Marshal(v)
				if err != nil {
					log.Printf("Error marshaling message: %v", err)
					continue
				}
				client.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
					log.Printf("Error writing text message: %v", err)
					return
				}
			}

		case <-ticker.C:
			if err := client.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}

// handleClientMessage dispatches a control message.
func (s *Server) handleClientMessage(client *Client, data []byte) {
	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	switch msg.Type {
	case "ambience/select":
		s.handleAmbienceSelect(client, msg.Payload)
	case "volume/set":
		s.handleVolumeSet(client, msg.Payload)
	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

func (s *Server) handleAmbienceSelect(client *Client, payload interface{}) {
	sel, err := decodePayload[protocol.AmbienceSelect](payload)
	if err != nil {
		log.Printf("Error unmarshaling ambience select: %v", err)
		return
	}

	kind, known := texture.ParseKind(sel.Kind)
	if !known {
		log.Printf("Client %s requested unknown kind %q, synthesizing fallback", client.Name, sel.Kind)
	}
	s.engine.SetKind(kind)
}

func (s *Server) handleVolumeSet(client *Client, payload interface{}) {
	vol, err := decodePayload[protocol.VolumeSet](payload)
	if err != nil {
		log.Printf("Error unmarshaling volume set: %v", err)
		return
	}

	duration := time.Duration(vol.DurationMs) * time.Millisecond
	s.engine.RampVolume(vol.Volume, duration)

	log.Printf("Client %s set volume %d over %v", client.Name, vol.Volume, duration)
}

// sendMessage queues a JSON message to a client.
func (s *Server) sendMessage(client *Client, msgType string, payload interface{}) error {
	msg := protocol.Message{Type: msgType, Payload: payload}

	select {
	case client.sendChan <- msg:
		return nil
	default:
		return fmt.Errorf("client send buffer full")
	}
}

// sendBinary queues binary data to a client.
func (s *Server) sendBinary(client *Client, data []byte) error {
	select {
	case client.sendChan <- data:
		return nil
	default:
		return fmt.Errorf("client send buffer full")
	}
}

// getClockMicros returns the stream clock in microseconds.
func (s *Server) getClockMicros() int64 {
	return time.Since(s.clockStart).Microseconds()
}

// negotiateCodec picks the best codec both sides support. Opus wins
// when offered; pcm is the universal fallback.
func negotiateCodec(offered []string) string {
	for _, c := range offered {
		if c == "opus" {
			return "opus"
		}
	}
	return "pcm"
}

// decodePayload re-marshals an interface{} payload into a typed struct.
func decodePayload[T any](payload interface{}) (T, error) {
	var out T
	data, err := json.Marshal(payload)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
