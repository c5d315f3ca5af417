/*
Package server provides an HTTP service for parsing addresses.

Endpoints:

    GET /parse/{address}     parse a (URL-escaped) address
    GET /_internal/health    liveness probe
    GET /metrics             Prometheus metrics

A successful parse responds with status 200 and a JSON object

    {"street":"Winterallee","housenumber":"3"}

Unrecognized addresses result in status 400 and a JSON object describing
the problem.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/npillmayer/addrparse/address"
	"github.com/npillmayer/schuko/tracing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// tracer traces with key 'addrparse.server'.
func tracer() tracing.Trace {
	return tracing.Select("addrparse.server")
}

// Results of parse requests, used as metric labels.
const (
	resultOK           = "ok"
	resultUnrecognized = "unrecognized"
	resultFailed       = "error"
)

// HealthMessage is the response body of the health probe.
const HealthMessage = "Hello world!"

// Server handles HTTP requests for address parsing. Every server has its own
// metrics registry.
type Server struct {
	router   chi.Router
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

// New creates a server with all routes set up.
func New() *Server {
	s := &Server{
		router:   chi.NewRouter(),
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "addrparse_parse_requests_total",
			Help: "Number of parse requests, by result.",
		}, []string{"result"}),
	}
	s.registry.MustRegister(s.requests)
	s.router.Get("/parse/{address}", s.parseHandler)
	s.router.Get("/_internal/health", healthHandler)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	}))
	return s
}

// ServeHTTP makes a Server an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves requests on addr until ctx is canceled. It then shuts
// down the HTTP server gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		tracer().Infof("Ready to serve on http://%s", addr)
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	tracer().Infof("Shutting down server on %s", addr)
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------

type errorResponse struct {
	Error    string   `json:"error"`
	Position int      `json:"position"`
	Snippet  string   `json:"snippet"`
	Expected []string `json:"expected,omitempty"`
}

func (s *Server) parseHandler(w http.ResponseWriter, r *http.Request) {
	input := chi.URLParam(r, "address")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(input)
		if err != nil {
			s.requests.WithLabelValues(resultUnrecognized).Inc()
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		input = unescaped
	}
	tracer().Debugf("parse request for %q", input)
	addr, err := address.Parse(input)
	var uaf *address.UnrecognizedAddressFormat
	switch {
	case err == nil:
		s.requests.WithLabelValues(resultOK).Inc()
		writeJSON(w, http.StatusOK, addr)
	case errors.As(err, &uaf):
		s.requests.WithLabelValues(resultUnrecognized).Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:    uaf.Error(),
			Position: uaf.Position,
			Snippet:  uaf.Snippet,
			Expected: uaf.Expected,
		})
	default:
		tracer().Errorf("parsing %q: %v", input, err)
		s.requests.WithLabelValues(resultFailed).Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(HealthMessage))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		tracer().Errorf("writing response: %v", err)
	}
}
