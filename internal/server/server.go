// Package server hosts dashboards over HTTP and pushes dataset reloads to
// websocket subscribers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/KaramelBytes/bikedash/internal/dashboard"
	"github.com/KaramelBytes/bikedash/internal/dataset"
)

// Options configures a Server.
type Options struct {
	Dashboard   dashboard.Options
	Load        dataset.Options
	ReadTimeout time.Duration
	// Logger receives request and reload logs; discarded when nil.
	Logger *log.Logger
}

// Server serves dashboards built from an immutable dataset snapshot.
// Reload swaps the snapshot; in-flight renders keep the one they started with.
type Server struct {
	path    string
	opts    Options
	current atomic.Pointer[dataset.Dataset]
	hub     *hub
	mux     *http.ServeMux
	log     *log.Logger
}

// New creates a server around an already loaded dataset.
func New(ds *dataset.Dataset, opts Options) *Server {
	s := &Server{
		path: ds.Path,
		opts: opts,
		hub:  newHub(),
		mux:  http.NewServeMux(),
		log:  opts.Logger,
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	s.current.Store(ds)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("GET /api/range", s.handleRange)
	s.mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /ws", s.handleWS)
	return s
}

// Dataset returns the current snapshot.
func (s *Server) Dataset() *dataset.Dataset { return s.current.Load() }

// Handler returns the HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.mux.ServeHTTP(w, r)
		s.log.Printf("%s %s (%s)", r.Method, r.URL.RequestURI(), time.Since(start).Round(time.Microsecond))
	})
}

// Reload re-reads the dataset file and swaps the snapshot on success.
// On failure the previous snapshot stays active.
func (s *Server) Reload() error {
	ds, err := dataset.Load(s.path, s.opts.Load)
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.path, err)
	}
	s.current.Store(ds)
	s.log.Printf("reloaded %s: %d records (%d rejected)", s.path, len(ds.Records), ds.Rejected)
	s.hub.broadcast(newEvent(eventReloaded, ds))
	return nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	timeout := s.opts.ReadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: timeout,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.hub.close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

type rangeResponse struct {
	Min      string `json:"min"`
	Max      string `json:"max"`
	Records  int    `json:"records"`
	Rejected int    `json:"rejected_rows"`
}

func (s *Server) handleRange(w http.ResponseWriter, r *http.Request) {
	ds := s.Dataset()
	resp := rangeResponse{Records: len(ds.Records), Rejected: ds.Rejected}
	if !ds.Empty() {
		resp.Min = ds.MinDate.Format("2006-01-02")
		resp.Max = ds.MaxDate.Format("2006-01-02")
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var start, end time.Time
	var err error
	if v := q.Get("start"); v != "" {
		if start, err = dataset.ParseDate(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("start: %w", err))
			return
		}
	}
	if v := q.Get("end"); v != "" {
		if end, err = dataset.ParseDate(v); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("end: %w", err))
			return
		}
	}
	d, err := dashboard.Build(s.Dataset(), start, end, s.opts.Dashboard)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, dashboard.ErrInvalidRange) || errors.Is(err, dashboard.ErrOutOfBounds) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
