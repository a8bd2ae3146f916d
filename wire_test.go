// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTokens(t *testing.T) {
	cmd := NewCommand("SET", "k", "v")
	assert.Equal(t, "SET", cmd.Name())
	assert.Equal(t, []string{"k", "v"}, cmd.Args())
	assert.Equal(t, []string{"SET", "k", "v"}, cmd.Tokens())
	assert.Equal(t, "SET k v", cmd.String())

	// Returned slices are copies; mutating them must not touch the command.
	cmd.Tokens()[0] = "MUTATED"
	assert.Equal(t, "SET", cmd.Name())
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("  SET  k   v ")
	require.NoError(t, err)
	assert.Equal(t, []string{"SET", "k", "v"}, cmd.Tokens())

	_, err = ParseCommand("   ")
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

// For every variant, the matching accessor returns the original value and
// every other accessor fails with a TypeMismatchError.
func TestValueAccessors(t *testing.T) {
	values := map[Kind]Value{
		KindNull:  NullValue(),
		KindStr:   StrValue("hello"),
		KindInt:   IntValue(42),
		KindFloat: FloatValue(2.5),
		KindBool:  BoolValue(true),
		KindErr:   ErrValue("ERR boom"),
		KindArray: ArrayValue(IntValue(1), StrValue("x")),
		KindMap:   MapValue(map[string]Value{"k": IntValue(1)}),
	}

	type accessor struct {
		kind Kind
		call func(Value) error
	}
	accessors := []accessor{
		{KindStr, func(v Value) error { _, err := v.Str(); return err }},
		{KindStr, func(v Value) error { _, err := v.Bytes(); return err }},
		{KindInt, func(v Value) error { _, err := v.Int(); return err }},
		{KindFloat, func(v Value) error { _, err := v.Float(); return err }},
		{KindBool, func(v Value) error { _, err := v.Bool(); return err }},
		{KindErr, func(v Value) error { _, err := v.ErrorMessage(); return err }},
		{KindArray, func(v Value) error { _, err := v.Array(); return err }},
		{KindMap, func(v Value) error { _, err := v.Map(); return err }},
	}

	for kind, value := range values {
		assert.Equal(t, kind, value.Kind())
		for _, acc := range accessors {
			err := acc.call(value)
			if acc.kind == kind {
				assert.NoError(t, err, "%s accessor on %s value", acc.kind, kind)
				continue
			}
			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch, "%s accessor on %s value", acc.kind, kind)
			assert.Equal(t, acc.kind, mismatch.Expected)
			assert.Equal(t, kind, mismatch.Actual)
		}
	}
}

func TestValueAccessorPayloads(t *testing.T) {
	s, err := StrValue("hello").Str()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	b, err := StrValue("raw\x00bytes").Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("raw\x00bytes"), b)

	n, err := IntValue(-3).Int()
	require.NoError(t, err)
	assert.Equal(t, int64(-3), n)

	f, err := FloatValue(1.25).Float()
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)

	flag, err := BoolValue(false).Bool()
	require.NoError(t, err)
	assert.False(t, flag)

	msg, err := ErrValue("ERR nope").ErrorMessage()
	require.NoError(t, err)
	assert.Equal(t, "ERR nope", msg)

	elems, err := ArrayValue(IntValue(1), IntValue(2)).Array()
	require.NoError(t, err)
	require.Len(t, elems, 2)

	assert.True(t, NullValue().IsNull())
	assert.False(t, StrValue("x").IsNull())
	assert.True(t, ErrValue("e").IsError())
}

// No implicit stringification: an integer reply read as a string fails.
func TestNoCoercion(t *testing.T) {
	_, err := IntValue(42).Str()
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "type mismatch: expected string, got integer", err.Error())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "(nil)", NullValue().String())
	assert.Equal(t, "PONG", StrValue("PONG").String())
	assert.Equal(t, "42", IntValue(42).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "(error) ERR boom", ErrValue("ERR boom").String())
	assert.Equal(t, "[1, a]", ArrayValue(IntValue(1), StrValue("a")).String())
}
