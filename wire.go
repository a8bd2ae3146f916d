// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"fmt"
	"strconv"
	"strings"
)

// Command is an ordered sequence of tokens: the command name followed by its
// arguments. Tokens may contain arbitrary bytes; the codec length-prefixes
// them on the wire. A Command is immutable once built.
type Command struct {
	tokens []string
}

// NewCommand builds a Command from a name and its arguments.
func NewCommand(name string, args ...string) *Command {
	tokens := make([]string, 0, 1+len(args))
	tokens = append(tokens, name)
	tokens = append(tokens, args...)
	return &Command{tokens: tokens}
}

// ParseCommand tokenizes a raw command line on whitespace.
// Returns ErrEmptyCommand if the line contains no tokens.
func ParseCommand(raw string) (*Command, error) {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return nil, ErrEmptyCommand
	}
	return &Command{tokens: tokens}, nil
}

// Name returns the command name (the first token).
func (c *Command) Name() string {
	return c.tokens[0]
}

// Args returns a copy of the argument tokens.
func (c *Command) Args() []string {
	args := make([]string, len(c.tokens)-1)
	copy(args, c.tokens[1:])
	return args
}

// Tokens returns a copy of all tokens, name first.
func (c *Command) Tokens() []string {
	tokens := make([]string, len(c.tokens))
	copy(tokens, c.tokens)
	return tokens
}

func (c *Command) String() string {
	return strings.Join(c.tokens, " ")
}

// Kind identifies which variant of a Value is active.
type Kind int

const (
	KindNull Kind = iota
	KindStr
	KindInt
	KindFloat
	KindBool
	KindErr
	KindArray
	KindMap
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindStr:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindErr:
		return "error"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a decoded server reply: a tagged union with exactly one active
// variant. Accessors return a TypeMismatchError when invoked on a Value of a
// different variant; values are never coerced across variants.
type Value struct {
	kind Kind
	str  string // string payload or error message
	num  int64
	fnum float64
	flag bool
	arr  []Value
	m    map[string]Value
}

// NullValue returns the null variant.
func NullValue() Value { return Value{kind: KindNull} }

// StrValue returns a string variant. The payload may hold arbitrary bytes.
func StrValue(s string) Value { return Value{kind: KindStr, str: s} }

// IntValue returns an integer variant.
func IntValue(n int64) Value { return Value{kind: KindInt, num: n} }

// FloatValue returns a floating-point variant.
func FloatValue(f float64) Value { return Value{kind: KindFloat, fnum: f} }

// BoolValue returns a boolean variant.
func BoolValue(b bool) Value { return Value{kind: KindBool, flag: b} }

// ErrValue returns an error variant carrying the server's message.
func ErrValue(msg string) Value { return Value{kind: KindErr, str: msg} }

// ArrayValue returns an array variant.
func ArrayValue(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// MapValue returns a map variant.
func MapValue(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// Kind reports which variant is active.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsError reports whether the value is the error variant.
func (v Value) IsError() bool { return v.kind == KindErr }

// Str returns the string payload.
func (v Value) Str() (string, error) {
	if v.kind != KindStr {
		return "", &TypeMismatchError{Expected: KindStr, Actual: v.kind}
	}
	return v.str, nil
}

// Bytes returns the string payload as raw bytes.
func (v Value) Bytes() ([]byte, error) {
	if v.kind != KindStr {
		return nil, &TypeMismatchError{Expected: KindStr, Actual: v.kind}
	}
	return []byte(v.str), nil
}

// Int returns the integer payload.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, &TypeMismatchError{Expected: KindInt, Actual: v.kind}
	}
	return v.num, nil
}

// Float returns the floating-point payload.
func (v Value) Float() (float64, error) {
	if v.kind != KindFloat {
		return 0, &TypeMismatchError{Expected: KindFloat, Actual: v.kind}
	}
	return v.fnum, nil
}

// Bool returns the boolean payload.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeMismatchError{Expected: KindBool, Actual: v.kind}
	}
	return v.flag, nil
}

// ErrorMessage returns the server's error message.
func (v Value) ErrorMessage() (string, error) {
	if v.kind != KindErr {
		return "", &TypeMismatchError{Expected: KindErr, Actual: v.kind}
	}
	return v.str, nil
}

// Array returns the element slice in server order.
func (v Value) Array() ([]Value, error) {
	if v.kind != KindArray {
		return nil, &TypeMismatchError{Expected: KindArray, Actual: v.kind}
	}
	return v.arr, nil
}

// Map returns the key-value entries. Keys are unique; iteration order is
// unspecified.
func (v Value) Map() (map[string]Value, error) {
	if v.kind != KindMap {
		return nil, &TypeMismatchError{Expected: KindMap, Actual: v.kind}
	}
	return v.m, nil
}

// String renders the value for display. It is not an accessor and never
// fails; use the typed accessors for programmatic access.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "(nil)"
	case KindStr:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.fnum, 'g', -1, 64)
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	case KindErr:
		return "(error) " + v.str
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, 0, len(v.m))
		for k, e := range v.m {
			parts = append(parts, k+": "+e.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("(unknown kind %d)", int(v.kind))
	}
}
