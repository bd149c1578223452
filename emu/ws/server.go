package ws

import (
	"context"
	"errors"
	"net"
	"net/http"

	"vpad/emu"
)

// Path is the URL path of the websocket endpoint.
const Path = "/ws"

type Server struct {
	hub  *Hub
	srv  *http.Server
	Addr net.Addr
}

// NewServer starts listening for websocket clients on addr (host:port).
func NewServer(addr string) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	hub := NewHub()
	mux := http.NewServeMux()
	mux.Handle(Path, hub)
	srv := &http.Server{Handler: mux}

	modWS.InfoZ("websocket server listening").String("addr", l.Addr().String()).End()
	go func() {
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			modWS.WarnZ("websocket server stopped").Error("err", err).End()
		}
	}()
	return &Server{hub: hub, srv: srv, Addr: l.Addr()}, nil
}

// Run broadcasts the states received from states until ctx is done or states
// is closed.
func (s *Server) Run(ctx context.Context, states <-chan emu.InputState) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-states:
			if !ok {
				return nil
			}
			s.hub.Broadcast(st)
		}
	}
}

// Close stops the server and disconnects all clients.
func (s *Server) Close() error {
	err := s.srv.Close()
	s.hub.Close()
	return err
}
