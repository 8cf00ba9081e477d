// Package server exposes the log analyzer over HTTP: a multipart upload
// endpoint returning per-player statistics, plus a websocket channel that
// streams per-hand preflop role traces for manual verification.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/luksz/PokerNow-Absolute-Cinema/internal/analyzer"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/config"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/gamelog"
	"github.com/luksz/PokerNow-Absolute-Cinema/internal/parser"
)

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	NumFiles    int                    `json:"num_files"`
	NumLogLines int                    `json:"num_log_lines"`
	NumHands    int                    `json:"num_hands"`
	BigBlind    float64                `json:"big_blind"`
	Stats       []analyzer.PlayerStats `json:"stats"`
}

// errorResponse is the body for 4xx/5xx replies.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Server handles log uploads and serves analysis results.
type Server struct {
	addr      string
	maxUpload int64
	bigBlind  float64 // explicit override; 0 means auto-detect per upload
	logger    *log.Logger
	upgrader  websocket.Upgrader

	mu       sync.RWMutex
	watchers map[*websocket.Conn]bool

	httpSrv *http.Server
}

// New creates a server from settings. bigBlind > 0 overrides auto-detection
// for every upload.
func New(settings *config.ServerSettings, bigBlind float64, logger *log.Logger) *Server {
	return &Server{
		addr:      settings.Address,
		maxUpload: int64(settings.MaxUploadMB) << 20,
		bigBlind:  bigBlind,
		logger:    logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			// The debug channel is observational and unauthenticated.
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		watchers: make(map[*websocket.Conn]bool),
	}
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.Handler()}
	s.logger.Info("Starting analyzer server", "addr", s.addr)
	return s.httpSrv.ListenAndServe()
}

// Shutdown stops the HTTP listener and closes all watcher connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.watchers {
		_ = conn.Close()
	}
	s.watchers = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Handler builds the route mux. It is exposed for httptest use.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart upload: %v", err))
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		s.writeError(w, http.StatusBadRequest, "No files uploaded.")
		return
	}

	var entries []gamelog.Entry
	for _, fh := range files {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("File '%s' is not a CSV.", fh.Filename))
			return
		}
		fileEntries, err := readUpload(fh)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		entries = append(entries, fileEntries...)
	}

	hands, err := parser.SkipPreamble(parser.SplitHands(gamelog.Texts(entries)))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "No valid hands found in uploaded file(s).")
		return
	}

	bigBlind := s.bigBlind
	if bigBlind <= 0 {
		bigBlind = gamelog.DetectBigBlind(entries)
	}

	result := analyzer.Analyze(hands, analyzer.Options{
		BigBlind:      bigBlind,
		CollectTraces: true,
		Logger:        s.logger.WithPrefix("analyzer"),
	})

	s.logger.Info("Analyzed upload",
		"files", len(files),
		"lines", len(entries),
		"hands", result.Hands,
		"players", len(result.Stats),
		"big_blind", bigBlind)

	s.broadcastTraces(result.Traces)

	s.writeJSON(w, http.StatusOK, AnalyzeResponse{
		NumFiles:    len(files),
		NumLogLines: len(entries),
		NumHands:    result.Hands,
		BigBlind:    bigBlind,
		Stats:       result.Stats,
	})
}

func readUpload(fh *multipart.FileHeader) ([]gamelog.Entry, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("Failed to read CSV '%s': %v", fh.Filename, err)
	}
	defer f.Close()
	entries, err := gamelog.ReadLog(f, fh.Filename)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// handleWebSocket registers a watcher for preflop trace broadcasts.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	s.mu.Lock()
	s.watchers[conn] = true
	total := len(s.watchers)
	s.mu.Unlock()
	s.logger.Info("Debug watcher connected", "total", total)

	// Drain reads until close so control frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.removeWatcher(conn)
				return
			}
		}
	}()
}

func (s *Server) removeWatcher(conn *websocket.Conn) {
	s.mu.Lock()
	if _, ok := s.watchers[conn]; ok {
		delete(s.watchers, conn)
		_ = conn.Close()
	}
	total := len(s.watchers)
	s.mu.Unlock()
	s.logger.Info("Debug watcher disconnected", "total", total)
}

// broadcastTraces sends the per-hand preflop role traces to every watcher.
// Slow or dead watchers are dropped rather than blocking the response.
func (s *Server) broadcastTraces(traces []analyzer.PreflopTrace) {
	if len(traces) == 0 {
		return
	}
	s.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.watchers))
	for conn := range s.watchers {
		conns = append(conns, conn)
	}
	s.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(traces); err != nil {
			s.removeWatcher(conn)
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}
