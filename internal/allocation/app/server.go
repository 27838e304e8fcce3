// Package app wires the allocation runtime and HTTP lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kaijietay/btoflow/internal/allocation/api/httpapi"
	"github.com/kaijietay/btoflow/internal/allocation/domain"
	allocsqlite "github.com/kaijietay/btoflow/internal/allocation/storage/sqlite"
	"github.com/kaijietay/btoflow/internal/platform/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type serverEnv struct {
	DBPath string `env:"BTOFLOW_DB_PATH"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "btoflow.db")
	}
	return cfg, nil
}

// Server hosts the allocation HTTP API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *allocsqlite.Store
}

// New creates a configured allocation server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured allocation server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	env, err := loadServerEnv()
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	store, err := openAllocationStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	svc := domain.NewService(store, nil, nil, nil)
	mux := httpapi.NewMux(svc)
	httpServer := &http.Server{
		Handler:           otelhttp.NewHandler(mux, "btoflow.http"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		listener:   listener,
		httpServer: httpServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves an allocation server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("allocation server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close releases the listener and storage resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close allocation store: %v", err)
		}
	}
}

func openAllocationStore(path string) (*allocsqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := allocsqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open allocation store: %w", err)
	}
	return store, nil
}
