package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerdraw/internal/deck"
)

// Server serves hand analyses over HTTP and WebSocket
type Server struct {
	addr        string
	version     string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	register    chan *Connection
	unregister  chan *Connection
	logger      *log.Logger
	mu          sync.RWMutex
	ctx         context.Context
	cancel      context.CancelFunc
	service     *AnalysisService
	httpServer  *http.Server
}

// NewServer creates a new analysis server
func NewServer(addr, version string, service *AnalysisService, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr:    addr,
		version: version,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins
				// In production, implement proper origin checking
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		logger:      logger.WithPrefix("server"),
		ctx:         ctx,
		cancel:      cancel,
		service:     service,
	}

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}

	return s
}

// Start starts the analysis server and blocks until it stops
func (s *Server) Start() error {
	go s.run()

	s.logger.Info("Starting analysis server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down, closing open connections
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	// Close all connections
	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
	s.mu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// router wires up the HTTP surface
func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Methods(http.MethodGet).Path("/health").Handler(s.getHealth())
	r.Methods(http.MethodPost).Path("/api/analyze").Handler(s.postAnalyze())
	r.Methods(http.MethodGet).Path("/ws").HandlerFunc(s.handleWebSocket)
	return r
}

// run handles connection lifecycle
func (s *Server) run() {
	for {
		select {
		case conn := <-s.register:
			s.mu.Lock()
			s.connections[conn] = true
			s.mu.Unlock()
			s.logger.Info("Client connected", "total", len(s.connections))

		case conn := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.connections[conn]; ok {
				delete(s.connections, conn)
				_ = conn.Close() // Ignore close errors during unregistration
			}
			s.mu.Unlock()
			s.logger.Info("Client disconnected", "total", len(s.connections))

		case <-s.ctx.Done():
			return
		}
	}
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	client := NewConnection(conn, s.logger, s.service)
	s.register <- client
	client.Start()

	// Connection cleanup is handled by the connection itself
	go func() {
		<-client.ctx.Done()
		s.unregister <- client
	}()
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// getHealth handles health check requests
func (s *Server) getHealth() http.HandlerFunc {
	payload := healthResponse{
		Status:  "OK",
		Version: s.version,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, payload)
	}
}

// postAnalyze runs a single estimation and responds with the result
func (s *Server) postAnalyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnalyzeData
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.service.Analyze(r.Context(), req)
		if err != nil {
			if errors.Is(err, deck.ErrInvalidHand) || errors.Is(err, ErrTooManyTrials) {
				s.writeJSONError(w, http.StatusBadRequest, err)
				return
			}
			s.writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		s.writeJSON(w, http.StatusOK, ResultDataFromEstimate(result))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("could not write JSON response", "error", err)
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func (s *Server) writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	var msg string
	if statusCode < 500 && err != nil {
		msg = err.Error()
	} else {
		msg = http.StatusText(statusCode)
	}

	if statusCode >= 500 {
		s.logger.Error("request failed", "statusCode", statusCode, "error", err)
	}

	s.writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
