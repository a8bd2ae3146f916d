// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"sync/atomic"
	"time"
)

const (
	// ioBufferSize is the transport read buffer size.
	ioBufferSize = 16 * 1024

	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultReadTimeout bounds the wait for each response frame.
	DefaultReadTimeout = 5 * time.Second
)

// conn owns one duplex byte stream to the server and delivers whole frames
// over it. send and receiveFrame are not safe for concurrent use; the owning
// Client serializes them. close may race with a blocked receiveFrame, which
// is how the watch reader gets unblocked.
type conn struct {
	nc          net.Conn
	br          *bufio.Reader
	addr        string
	readTimeout time.Duration
	closed      atomic.Bool
}

// dialServer establishes a TCP connection within connectTimeout.
// A readTimeout of zero means frame reads block indefinitely.
func dialServer(addr string, connectTimeout, readTimeout time.Duration) (*conn, error) {
	nc, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, &ConnectionError{Address: addr, Err: err}
	}
	return &conn{
		nc:          nc,
		br:          bufio.NewReaderSize(nc, ioBufferSize),
		addr:        addr,
		readTimeout: readTimeout,
	}, nil
}

// send writes the whole buffer, continuing across partial writes.
func (c *conn) send(frame []byte) error {
	if c.closed.Load() {
		return ErrClosed
	}
	for len(frame) > 0 {
		n, err := c.nc.Write(frame)
		if err != nil {
			return c.classify("write", err)
		}
		frame = frame[n:]
	}
	return nil
}

// receiveFrame reads until exactly one complete frame is assembled, buffering
// across partial reads as needed. The returned bytes are a fresh copy owned
// by the caller.
func (c *conn) receiveFrame() ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	if c.readTimeout > 0 {
		if err := c.nc.SetReadDeadline(time.Now().Add(c.readTimeout)); err != nil {
			return nil, c.classify("read", err)
		}
	} else {
		if err := c.nc.SetReadDeadline(time.Time{}); err != nil {
			return nil, c.classify("read", err)
		}
	}

	var buf bytes.Buffer
	if err := readFrame(c.br, &buf); err != nil {
		var pe *ProtocolError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, c.classify("read", err)
	}
	return buf.Bytes(), nil
}

// close releases the socket. It is idempotent; send and receiveFrame fail
// with ErrClosed afterwards.
func (c *conn) close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.nc.Close()
}

// classify maps raw socket errors onto the library's error taxonomy.
func (c *conn) classify(op string, err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{Op: op, Err: err}
	}
	if errors.Is(err, net.ErrClosed) {
		return ErrClosed
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &ConnectionError{Address: c.addr, Err: errors.New("connection closed by server")}
	}
	return &ConnectionError{Address: c.addr, Err: err}
}
