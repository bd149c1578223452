package ws

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"vpad/emu"
)

func dial(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+srv.Addr.String()+Path, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) emu.InputState {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var s emu.InputState
	if err := s.Decode(jx.DecodeBytes(msg)); err != nil {
		t.Fatalf("message %q: %v", msg, err)
	}
	return s
}

func TestServerBroadcast(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	states := make(chan emu.InputState)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- srv.Run(ctx, states) }()

	first := emu.InputState{Pad: 1, StickX: -20}
	states <- first

	// A new client first receives the last broadcast state.
	conn := dial(t, srv)
	if diff := cmp.Diff(first, readState(t, conn)); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}

	next := emu.InputState{Pad: 3, TouchX: 100, TouchY: 200, Touched: true}
	states <- next
	if diff := cmp.Diff(next, readState(t, conn)); diff != "" {
		t.Errorf("broadcast state mismatch (-want +got):\n%s", diff)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatal(err)
	}
}

func TestServerCloseDisconnects(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	srv.hub.Broadcast(emu.InputState{Pad: 1})
	conn := dial(t, srv)
	readState(t, conn)

	if n := srv.hub.numClients(); n != 1 {
		t.Fatalf("%d clients, want 1", n)
	}

	srv.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("read succeeded after server close")
	}
	if n := srv.hub.numClients(); n != 0 {
		t.Errorf("%d clients after close, want 0", n)
	}
}

func TestRunStopsOnClosedChannel(t *testing.T) {
	srv, err := NewServer("127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer srv.Close()

	states := make(chan emu.InputState)
	close(states)
	if err := srv.Run(context.Background(), states); err != nil {
		t.Fatal(err)
	}
}
