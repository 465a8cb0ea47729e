package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter"
	_ "github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter/legacy" // register adapter
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/adapter/uplink"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/config"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/metrics"
	"github.com/hardwario/twr-lora-soil-moisture-sensor/internal/options"
)

// maxBodyBytes bounds webhook bodies; an uplink envelope is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Server exposes the payload codecs as an HTTP webhook.
type Server struct {
	cfg      *config.Config
	log      *logrus.Entry
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	server   *http.Server
}

// New builds a server. Collectors are registered on reg, which is also
// served on the metrics endpoint.
func New(cfg *config.Config, log *logrus.Entry, reg *prometheus.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		metrics:  metrics.New(reg),
		gatherer: reg,
	}
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.withMetrics("/health", s.handleHealth))
	mux.HandleFunc("POST /decode", s.withMetrics("/decode", s.handleDecode))
	mux.HandleFunc("POST /decode/{convention}", s.withMetrics("/decode/{convention}", s.handleDecode))
	if s.cfg.Metrics.Enabled {
		mux.Handle("GET "+s.cfg.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("address", s.server.Addr).Info("starting webhook server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("shutting down webhook server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"conventions": adapter.Names(),
	})
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	convention := r.PathValue("convention")
	if convention == "" {
		convention = s.cfg.Decoder.Convention
	}
	adp, err := adapter.Lookup(convention)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	var up adapter.Uplink
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&up); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid uplink: %w", err))
		return
	}

	ctx := options.WithVariables(r.Context(), up.Variables)
	log := s.log.WithFields(logrus.Fields{
		"convention": convention,
		"f_port":     up.FPort,
		"bytes":      len(up.Bytes),
	})
	for k, v := range options.Variables(ctx) {
		log = log.WithField("var_"+k, v)
	}

	out, err := adp.Process(ctx, &up)
	if err == nil {
		if env, ok := out.(uplink.Output); ok && len(env.Errors) > 0 {
			err = errors.New(env.Errors[0])
		}
	}
	s.metrics.RecordDecode(convention, len(up.Bytes), err)
	if err != nil {
		log.WithError(err).Warn("failed to decode uplink")
		if out == nil {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	} else {
		log.Debug("decoded uplink")
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) withMetrics(path string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(ww, r)
		s.metrics.HTTPRequests.WithLabelValues(path, strconv.Itoa(ww.statusCode)).Inc()
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
