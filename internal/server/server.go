package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/wesleyorama2/cicd-template/internal/config"
)

// Server binds the listener and dispatches connections to a handler
type Server struct {
	cfg        config.ServeConfig
	httpServer *http.Server
	logger     *log.Logger
}

// New creates a Server. No write timeout is set: /latency may hold a
// response open for as long as the caller asks.
func New(cfg config.ServeConfig, handler http.Handler, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Server{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			MaxHeaderBytes:    1 << 20,
			ErrorLog:          logger,
		},
	}
}

// Run listens on the configured port and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = strconv.Itoa(addr.Port)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(ln)
	}()

	s.logger.Printf("Servidor rodando na porta %s", port)
	s.logger.Printf("Status endpoint: http://localhost:%s/status", port)
	s.logger.Printf("Home endpoint: http://localhost:%s/", port)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	if errors.Is(err, context.DeadlineExceeded) {
		// Closing the connections cancels request contexts, which ends
		// any /latency timers still pending.
		s.logger.Printf("Shutdown timeout exceeded, closing open connections")
		if cerr := s.httpServer.Close(); cerr != nil {
			s.logger.Printf("Close: %v", cerr)
		}
		err = nil
	}
	<-errCh

	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Printf("Servidor encerrado")
	return nil
}
