// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import "errors"

// watchBufferSize is the capacity of the watch delivery channel. If the
// consumer falls this far behind, the reader goroutine blocks and the server
// sees backpressure on the watch connection.
const watchBufferSize = 64

// WatchCh returns a channel of values the server pushes to this client,
// such as change notifications for watched keys.
//
// Pushed messages arrive on a dedicated second connection with its own
// "watch" handshake, so the command connection keeps its strict
// request/response alternation. The channel is closed when the client is
// closed or the watch connection fails; a failure is delivered as a final
// error-variant Value before the close. Repeated calls return the same
// channel.
func (c *Client) WatchCh() (<-chan Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.watchCh != nil {
		return c.watchCh, nil
	}

	cn, err := dialServer(c.addr(), c.connectTimeout, c.readTimeout)
	if err != nil {
		trackError("connection_error", "WatchCh")
		return nil, err
	}
	if err := c.handshake(cn, "watch"); err != nil {
		cn.close()
		trackError("handshake_error", "WatchCh")
		return nil, err
	}
	// Only the handshake is deadline-bound; pushes arrive whenever the
	// server has something, so the reader must block without a timeout.
	cn.readTimeout = 0

	c.watchConn = cn
	c.watchCh = make(chan Value, watchBufferSize)
	go watchLoop(cn, c.watchCh)
	return c.watchCh, nil
}

// watchLoop delivers pushed values until the connection is closed or fails.
func watchLoop(cn *conn, ch chan<- Value) {
	defer close(ch)
	for {
		frame, err := cn.receiveFrame()
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			ch <- ErrValue("watch connection failed: " + err.Error())
			cn.close()
			return
		}
		value, err := DecodeFrame(frame)
		if err != nil {
			ch <- ErrValue("watch stream corrupted: " + err.Error())
			cn.close()
			return
		}
		ch <- value
	}
}
