// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultPort is the server's default listen port.
const DefaultPort = 7379

// Option configures a Client at construction time.
type Option func(*Client)

// WithID sets a custom client id used in the connection handshake.
// The default is a random UUID.
func WithID(id string) Option {
	return func(c *Client) { c.id = id }
}

// WithConnectTimeout bounds connection establishment.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) { c.connectTimeout = d }
}

// WithReadTimeout bounds the wait for each response frame. Zero disables the
// deadline.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.readTimeout = d }
}

// Client is a session with one DiceKV server over a single persistent
// connection. The server replies strictly in request order, so the Client
// allows at most one outstanding request: concurrent Fire calls are
// serialized by an internal mutex. For parallelism use one Client per
// goroutine.
//
// Construction connects eagerly and performs the protocol handshake, so an
// unreachable server fails fast. Always Close the client when done:
//
//	client, err := dicekv.New("localhost", 7379)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
type Client struct {
	host           string
	port           int
	id             string
	connectTimeout time.Duration
	readTimeout    time.Duration

	mu     sync.Mutex
	conn   *conn
	closed bool

	watchConn *conn
	watchCh   chan Value
}

// New connects to host:port and performs the handshake that registers this
// client's id for command mode.
func New(host string, port int, opts ...Option) (*Client, error) {
	c := &Client{
		host:           host,
		port:           port,
		id:             uuid.New().String(),
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	cn, err := dialServer(c.addr(), c.connectTimeout, c.readTimeout)
	if err != nil {
		trackError("connection_error", "New")
		return nil, err
	}
	if err := c.handshake(cn, "command"); err != nil {
		cn.close()
		trackError("handshake_error", "New")
		return nil, err
	}
	c.conn = cn
	trackClientConnected()
	return c, nil
}

// ID returns the client id used in the handshake.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) addr() string {
	return net.JoinHostPort(c.host, strconv.Itoa(c.port))
}

// handshake registers the client id and connection mode ("command" or
// "watch") on a freshly dialed connection.
func (c *Client) handshake(cn *conn, mode string) error {
	reply, err := exchange(cn, NewCommand("HANDSHAKE", c.id, mode))
	if err != nil {
		return err
	}
	if reply.IsError() {
		msg, _ := reply.ErrorMessage()
		return &ConnectionError{Address: c.addr(), Err: &ServerError{Message: msg}}
	}
	return nil
}

// exchange runs one encode-send-receive-decode cycle on cn. Callers hold
// whatever lock guards cn.
func exchange(cn *conn, cmd *Command) (Value, error) {
	if err := cn.send(EncodeCommand(cmd)); err != nil {
		return Value{}, err
	}
	frame, err := cn.receiveFrame()
	if err != nil {
		return Value{}, err
	}
	return DecodeFrame(frame)
}

// Fire sends one command and returns the decoded reply. The full round trip
// is atomic with respect to other callers. An error *reply* from the server
// is returned as a Value of the error variant, not as a Go error; transport
// and protocol failures come back as typed errors and close the session,
// since a timed-out or desynced stream cannot be trusted for the next
// exchange.
func (c *Client) Fire(cmd *Command) (Value, error) {
	if len(cmd.tokens) == 0 {
		return Value{}, ErrEmptyCommand
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return Value{}, ErrClosed
	}

	reply, err := exchange(c.conn, cmd)
	if err != nil {
		var te *TimeoutError
		if errors.As(err, &te) {
			trackError("timeout_error", "Fire")
		} else {
			trackError("connection_error", "Fire")
		}
		c.closeLocked()
		return Value{}, err
	}
	return reply, nil
}

// FireString tokenizes a raw command line on whitespace and fires it.
func (c *Client) FireString(raw string) (Value, error) {
	cmd, err := ParseCommand(raw)
	if err != nil {
		return Value{}, err
	}
	return c.Fire(cmd)
}

// FireStr fires a command expecting a string reply.
func (c *Client) FireStr(cmd *Command) (string, error) {
	reply, err := c.fireChecked(cmd)
	if err != nil {
		return "", err
	}
	return reply.Str()
}

// FireInt fires a command expecting an integer reply.
func (c *Client) FireInt(cmd *Command) (int64, error) {
	reply, err := c.fireChecked(cmd)
	if err != nil {
		return 0, err
	}
	return reply.Int()
}

// FireFloat fires a command expecting a floating-point reply.
func (c *Client) FireFloat(cmd *Command) (float64, error) {
	reply, err := c.fireChecked(cmd)
	if err != nil {
		return 0, err
	}
	return reply.Float()
}

// FireBool fires a command expecting a boolean reply.
func (c *Client) FireBool(cmd *Command) (bool, error) {
	reply, err := c.fireChecked(cmd)
	if err != nil {
		return false, err
	}
	return reply.Bool()
}

// fireChecked fires a command and surfaces an error reply as a ServerError.
// Every typed helper goes through here, so a server-side failure is never
// reported as a mere type mismatch.
func (c *Client) fireChecked(cmd *Command) (Value, error) {
	reply, err := c.Fire(cmd)
	if err != nil {
		return Value{}, err
	}
	if reply.IsError() {
		msg, _ := reply.ErrorMessage()
		return Value{}, &ServerError{Message: msg}
	}
	return reply, nil
}

// Close tears down the command connection and, if open, the watch
// connection. It is idempotent; Fire fails with ErrClosed afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if c.closed {
		return nil
	}
	c.closed = true

	var err error
	if c.conn != nil {
		err = c.conn.close()
	}
	if c.watchConn != nil {
		// Unblocks the watch reader goroutine, which then closes watchCh.
		c.watchConn.close()
	}
	closeAnalytics()
	return err
}
