// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var (
	_ Server = (*server)(nil)

	ErrDuplicateRoute = errors.New("duplicate route")
)

const wildcard = "*"

type PathAdder interface {
	// AddRoute registers a route to a handler.
	AddRoute(handler http.Handler, base, endpoint string) error
}

// Server maintains the HTTP router
type Server interface {
	PathAdder
	// Dispatch starts the API server
	Dispatch() error
	// Shutdown this server
	Shutdown() error
	// Addr is the address the server listens on.
	Addr() net.Addr
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"       yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"      yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"       yaml:"idleTimeout"`
}

func NewDefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

type server struct {
	baseURL string

	// log this server writes to
	log logging.Logger

	shutdownTimeout time.Duration

	// Maps endpoints to handlers
	router *mux.Router
	routes set.Set[string]
	l      sync.Mutex

	srv *http.Server

	// Listener used to serve traffic
	listener net.Listener
}

// New returns an instance of a Server.
func New(
	baseURL string,
	log logging.Logger,
	listener net.Listener,
	httpConfig HTTPConfig,
	allowedOrigins []string,
	allowedHosts []string,
	shutdownTimeout time.Duration,
) Server {
	router := mux.NewRouter()
	allowedHostsHandler := filterInvalidHosts(router, allowedHosts)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(allowedHostsHandler)
	gzipHandler := gziphandler.GzipHandler(corsHandler)

	log.Info("API created",
		zap.Strings("allowedOrigins", allowedOrigins),
		zap.Stringer("addr", listener.Addr()),
	)

	return &server{
		baseURL:         baseURL,
		log:             log,
		shutdownTimeout: shutdownTimeout,
		router:          router,
		routes:          set.Set[string]{},
		srv: &http.Server{
			Handler:           gzipHandler,
			ReadTimeout:       httpConfig.ReadTimeout,
			ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
			WriteTimeout:      httpConfig.WriteTimeout,
			IdleTimeout:       httpConfig.IdleTimeout,
		},
		listener: listener,
	}
}

// Dispatch blocks until the server is shut down.
func (s *server) Dispatch() error {
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	s.l.Lock()
	defer s.l.Unlock()

	url := path.Join("/", s.baseURL, base, endpoint)
	if s.routes.Contains(url) {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, url)
	}
	s.log.Info("adding route",
		zap.String("url", url),
	)
	s.routes.Add(url)
	s.router.Handle(url, handler)
	return nil
}

func (s *server) Addr() net.Addr {
	return s.listener.Addr()
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	return err
}

// filterInvalidHosts rejects requests whose Host header is not allowed.
// A wildcard allows every host. Requests to an IP address are always
// allowed.
func filterInvalidHosts(handler http.Handler, allowed []string) http.Handler {
	hosts := set.Set[string]{}
	for _, host := range allowed {
		hosts.Add(strings.ToLower(host))
	}
	if len(allowed) == 0 || hosts.Contains(wildcard) {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}
		if net.ParseIP(host) != nil || hosts.Contains(strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}
		http.Error(w, "invalid host specified", http.StatusForbidden)
	})
}
