// Package http hosts the collector's optional local endpoint: JSON query
// routes plus the websocket live feed.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vitals/internal/config"
	"vitals/internal/logger"
)

type Server struct {
	cfg *config.Config
	log logger.Logger
	srv *http.Server

	samples http.Handler
}

type Routes struct {
	Latest http.HandlerFunc
	Range  http.HandlerFunc
	Window http.HandlerFunc
	WsLive http.HandlerFunc
}

func NewServer(cfg *config.Config, log logger.Logger, routes *Routes) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/samples/latest", routes.Latest)
	mux.HandleFunc("GET /api/samples/range", routes.Range)
	mux.HandleFunc("GET /api/samples/window/{window}", routes.Window)
	mux.HandleFunc("GET /ws/live", routes.WsLive)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		mux.ServeHTTP(w, r)
	})

	return &Server{
		cfg:     cfg,
		log:     log,
		samples: handler,
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.samples,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http: starting server", "address", s.cfg.HTTPAddr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
