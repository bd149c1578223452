package rpc

import (
	"fmt"
	"net"
	"net/rpc"
	"strconv"
	"time"

	"vpad/emu"
)

// Client reads the virtual controller of another vpad process.
type Client struct {
	client *rpc.Client
}

const (
	dialRetries    = 5
	dialRetryDelay = 250 * time.Millisecond
)

// NewClient connects to the server at host:port. The server may still be
// starting, so dialing is retried a few times.
func NewClient(host string, port int) (*Client, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	var err error
	for attempt := range dialRetries {
		var c *rpc.Client
		if c, err = rpc.DialHTTP("tcp", addr); err == nil {
			return &Client{client: c}, nil
		}
		modRPC.DebugZ("rpc dial failed").
			String("addr", addr).
			Int("attempt", attempt).
			Error("err", err).
			End()
		time.Sleep(dialRetryDelay)
	}
	return nil, fmt.Errorf("rpc dial %s: %w", addr, err)
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) IsReady() (bool, error) { return request[bool](c.client, "input.IsReady", nil) }

func (c *Client) ControllerState() (uint32, error) {
	return request[uint32](c.client, "input.ControllerState", nil)
}

func (c *Client) State() (emu.InputState, error) {
	return request[emu.InputState](c.client, "input.State", nil)
}

func (c *Client) SetTouch(x, y uint16, pressed bool) error {
	return call(c.client, "input.SetTouch", TouchArgs{X: x, Y: y, Pressed: pressed})
}

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(funcname, args, &reply); err != nil {
		modRPC.WarnZ("RPC call failed").String("func", funcname).Error("err", err).End()
		return reply, fmt.Errorf("rpc %s: %w", funcname, err)
	}
	return reply, nil
}
