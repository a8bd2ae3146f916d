// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"strconv"
	"time"
)

// Convenience wrappers for the common key-value commands. Each is a thin
// projection over Fire; anything not covered here can be sent directly:
//
//	reply, err := client.Fire(dicekv.NewCommand("TYPE", "mykey"))

// Ping checks the connection round trip.
func (c *Client) Ping() error {
	_, err := c.FireStr(NewCommand("PING"))
	return err
}

// Echo asks the server to echo msg back.
func (c *Client) Echo(msg string) (string, error) {
	return c.FireStr(NewCommand("ECHO", msg))
}

// Set stores a key-value pair.
func (c *Client) Set(key, value string) error {
	_, err := c.FireStr(NewCommand("SET", key, value))
	return err
}

// SetWithTTL stores a key-value pair that expires after ttl.
// The ttl is rounded down to whole seconds.
func (c *Client) SetWithTTL(key, value string, ttl time.Duration) error {
	secs := strconv.FormatInt(int64(ttl/time.Second), 10)
	_, err := c.FireStr(NewCommand("SET", key, value, "EX", secs))
	return err
}

// Get retrieves the value stored at key. A null reply maps to ErrNotFound.
func (c *Client) Get(key string) (string, error) {
	reply, err := c.fireChecked(NewCommand("GET", key))
	if err != nil {
		return "", err
	}
	if reply.IsNull() {
		return "", ErrNotFound
	}
	return reply.Str()
}

// Del removes the given keys and returns how many existed.
func (c *Client) Del(keys ...string) (int64, error) {
	return c.FireInt(NewCommand("DEL", keys...))
}

// Exists returns how many of the given keys exist.
func (c *Client) Exists(keys ...string) (int64, error) {
	return c.FireInt(NewCommand("EXISTS", keys...))
}

// Incr increments the integer stored at key and returns the new value.
func (c *Client) Incr(key string) (int64, error) {
	return c.FireInt(NewCommand("INCR", key))
}

// Decr decrements the integer stored at key and returns the new value.
func (c *Client) Decr(key string) (int64, error) {
	return c.FireInt(NewCommand("DECR", key))
}
