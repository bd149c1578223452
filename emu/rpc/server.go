package rpc

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"strconv"

	"vpad/emu"
)

// Input is the part of the input router exposed to other processes.
type Input interface {
	emu.InputReader
	SetTouch(x, y uint16, pressed bool)
}

// TouchArgs are the arguments of input.SetTouch.
type TouchArgs struct {
	X, Y    uint16
	Pressed bool
}

type inputProxy struct {
	in Input
}

func (ip *inputProxy) ControllerState(_ *struct{}, reply *uint32) error {
	*reply = ip.in.ControllerState()
	return nil
}

func (ip *inputProxy) State(_ *struct{}, reply *emu.InputState) error {
	x, y := ip.in.Stick()
	tx, ty, touched := ip.in.Touch()
	*reply = emu.InputState{
		Pad:     ip.in.ControllerState(),
		StickX:  x,
		StickY:  y,
		TouchX:  tx,
		TouchY:  ty,
		Touched: touched,
	}
	return nil
}

func (ip *inputProxy) SetTouch(args TouchArgs, _ *struct{}) error {
	ip.in.SetTouch(args.X, args.Y, args.Pressed)
	return nil
}

func (ip *inputProxy) IsReady(_ *struct{}, reply *bool) error {
	*reply = true
	return nil
}

type Server struct {
	io.Closer
	Addr net.Addr
}

// NewServer starts serving in over HTTP on the given port, on all
// interfaces if host is empty.
func NewServer(host string, port int, in Input) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("input", &inputProxy{in: in}); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)

	l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").String("addr", l.Addr().String()).End()
	go func() {
		if err := http.Serve(l, mux); err != nil && !errors.Is(err, net.ErrClosed) {
			modRPC.WarnZ("rpc server stopped").Error("err", err).End()
		}
	}()
	return &Server{Closer: l, Addr: l.Addr()}, nil
}
