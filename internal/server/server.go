package server

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
	"github.com/SmitUplenchwar2687/Tempo/internal/storage"
)

// Options configures optional server components.
type Options struct {
	Hub      *Hub               // WebSocket broadcast hub; nil disables /ws
	Recorder *recorder.Recorder // records tick readings; nil disables recording
	Storage  storage.Storage    // persists tick readings; nil disables /api/latest and /api/history
	Source   string             // label for readings taken by this server; defaults to "system"
	Tick     time.Duration      // sampling interval for the tick loop; 0 disables it
}

// Server is the Tempo HTTP server that serves clock readings.
type Server struct {
	httpServer *http.Server
	clock      clock.Clock
	mux        *http.ServeMux
	opts       Options

	tickStop chan struct{}
	tickOnce sync.Once
}

// New creates a new Tempo server reading from the given clock.
func New(addr string, clk clock.Clock, opts Options) *Server {
	if opts.Source == "" {
		opts.Source = "system"
	}

	s := &Server{
		clock:    clk,
		mux:      http.NewServeMux(),
		opts:     opts,
		tickStop: make(chan struct{}),
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/now", s.handleNow)
	s.mux.HandleFunc("/api/now/seconds", s.handleNowSeconds)
	s.mux.HandleFunc("/dashboard/", s.handleDashboard)

	if s.opts.Storage != nil {
		s.mux.HandleFunc("/api/latest/", s.handleLatest)
		s.mux.HandleFunc("/api/history/", s.handleHistory)
	}
	if s.opts.Hub != nil {
		s.mux.HandleFunc("/ws", s.opts.Hub.HandleWebSocket)
	}
}

// handleRoot serves a welcome message with the current reading.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	now := s.clock.Now()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"service": "tempo",
		"status":  "running",
		"millis":  now,
		"time":    now.Time().Format(time.RFC3339),
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleNow returns the current clock reading.
func (s *Server) handleNow(w http.ResponseWriter, r *http.Request) {
	rd := recorder.Take(s.opts.Source, s.clock)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"source":  rd.Source,
		"millis":  rd.Millis,
		"seconds": rd.Seconds,
		"rfc3339": rd.Millis.Time().Format(time.RFC3339Nano),
	})
}

// handleNowSeconds returns only the whole-second reading.
func (s *Server) handleNowSeconds(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{
		"seconds": clock.EpochSeconds(s.clock),
	})
}

// handleLatest returns the most recent stored reading for a source.
// Path: /api/latest/{source}
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimPrefix(r.URL.Path, "/api/latest/")
	if source == "" {
		http.Error(w, `{"error":"source is required"}`, http.StatusBadRequest)
		return
	}

	rd, err := s.opts.Storage.Latest(r.Context(), source)
	if err != nil {
		http.Error(w, `{"error":"storage failure"}`, http.StatusInternalServerError)
		log.Printf("latest %q: %v", source, err)
		return
	}
	if rd == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rd)
}

// handleHistory returns stored readings for a source.
// Path: /api/history/{source}?since=<millis>&limit=<n>
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimPrefix(r.URL.Path, "/api/history/")
	if source == "" {
		http.Error(w, `{"error":"source is required"}`, http.StatusBadRequest)
		return
	}

	var since clock.Millis
	if v := r.URL.Query().Get("since"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, `{"error":"since must be an integer"}`, http.StatusBadRequest)
			return
		}
		since = clock.Millis(n)
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, `{"error":"limit must be an integer"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}

	history, err := s.opts.Storage.History(r.Context(), source, since, limit)
	if err != nil {
		http.Error(w, `{"error":"storage failure"}`, http.StatusInternalServerError)
		log.Printf("history %q: %v", source, err)
		return
	}
	if history == nil {
		history = []recorder.Reading{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(history)
}

// handleDashboard serves the embedded live-clock page.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(DashboardHTML))
}

// tickLoop samples the clock at the configured interval, recording,
// storing, and broadcasting each reading.
func (s *Server) tickLoop() {
	ticker := time.NewTicker(s.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.tickStop:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Server) tick() {
	rd := recorder.Take(s.opts.Source, s.clock)

	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.Record(rd); err != nil {
			log.Printf("record error: %v", err)
		}
	}
	if s.opts.Storage != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := s.opts.Storage.Put(ctx, rd); err != nil {
			log.Printf("store error: %v", err)
		}
		cancel()
	}
	if s.opts.Hub != nil {
		s.opts.Hub.Broadcast(rd)
	}
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.StartOnListener(ln)
}

// StartOnListener begins serving on the provided listener.
// Useful for tests that need to pick an ephemeral port.
func (s *Server) StartOnListener(ln net.Listener) error {
	log.Printf("tempo server listening on %s", ln.Addr().String())
	if s.opts.Tick > 0 {
		go s.tickLoop()
	}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server and stops the tick loop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.tickOnce.Do(func() { close(s.tickStop) })
	return s.httpServer.Shutdown(ctx)
}
