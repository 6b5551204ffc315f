package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Server serves a Hub on /ws and a client count on /healthz.
type Server struct {
	hub *Hub
	srv *http.Server
	ln  net.Listener
}

// Listen binds addr and starts serving in the background.
func Listen(addr string, hub *Hub) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("telemetry listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(strconv.Itoa(hub.Clients())))
	})

	s := &Server{hub: hub, srv: &http.Server{Handler: mux}, ln: ln}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			hub.log.Error("telemetry server stopped", zap.Error(err))
		}
	}()
	hub.log.Info("telemetry listening", zap.String("addr", ln.Addr().String()))
	return s, nil
}

// Addr returns the bound address, useful when listening on port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close disconnects the clients and shuts the HTTP server down.
func (s *Server) Close(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}
