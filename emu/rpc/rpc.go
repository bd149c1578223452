package rpc

import (
	"fmt"
	"net"

	"vpad/emu/log"
)

var modRPC = log.NewModule("rpc")

// UnusedPort returns a TCP port which is free at the time of the call.
func UnusedPort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, fmt.Errorf("pick unused port: %w", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	if err := l.Close(); err != nil {
		return 0, fmt.Errorf("pick unused port: %w", err)
	}
	return port, nil
}
