// Package server wraps the gateway's HTTP listener. Timeouts are sized for
// Slack's delivery model: callbacks are small POSTs that must be acknowledged
// within 3 seconds or Slack retries, so slow readers get cut off early
// instead of holding connections open.
package server

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"
)

const (
	// Slack retries an unacknowledged callback after 3s; anything still
	// reading or writing at 10s is not a Slack delivery worth keeping
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 120 * time.Second

	// Slack payloads top out well under 1 MiB of headers
	maxHeaderBytes = 1 << 20
)

// Server is the gateway's HTTP server with optional TLS
type Server struct {
	srv     *http.Server
	tlsCert string
	tlsKey  string
}

// New creates a server for the given handler and port. TLS is enabled when
// both cert and key paths are set.
func New(handler http.Handler, port, tlsCert, tlsKey string) *Server {
	return &Server{
		srv: &http.Server{
			Addr:           ":" + port,
			Handler:        handler,
			ReadTimeout:    readTimeout,
			WriteTimeout:   writeTimeout,
			IdleTimeout:    idleTimeout,
			MaxHeaderBytes: maxHeaderBytes,
		},
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
	}
}

// Start begins serving in a background goroutine and returns immediately
func (s *Server) Start() error {
	if s.tlsCert != "" && s.tlsKey != "" {
		s.srv.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}

		go func() {
			if err := s.srv.ListenAndServeTLS(s.tlsCert, s.tlsKey); err != nil && err != http.ErrServerClosed {
				panic(err)
			}
		}()
		return nil
	}

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// callbacks up to the context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
