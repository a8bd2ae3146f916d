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
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"
)

// Wire type tags. A frame is one tag byte, a CRLF-terminated header line,
// and for bulk strings and aggregates a length-governed body.
const (
	tagSimple byte = '+' // +OK\r\n
	tagErr    byte = '-' // -ERR message\r\n
	tagInt    byte = ':' // :42\r\n
	tagBulk   byte = '$' // $5\r\nhello\r\n ($-1\r\n is a legacy null)
	tagArray  byte = '*' // *2\r\n<frame><frame>
	tagFloat  byte = ',' // ,3.14\r\n (also inf, -inf, nan)
	tagBool   byte = '#' // #t\r\n or #f\r\n
	tagNull   byte = '_' // _\r\n
	tagMap    byte = '%' // %1\r\n<key frame><value frame>
)

const crlf = "\r\n"

// maxFrameSize bounds any single bulk payload or aggregate element count.
const maxFrameSize = 32 * 1024 * 1024 // 32 MB

// EncodeCommand serializes a command as an array of length-prefixed bulk
// strings. Tokens may contain any bytes, including CR and LF.
func EncodeCommand(cmd *Command) []byte {
	var buf bytes.Buffer
	buf.WriteByte(tagArray)
	buf.WriteString(strconv.Itoa(len(cmd.tokens)))
	buf.WriteString(crlf)
	for _, tok := range cmd.tokens {
		buf.WriteByte(tagBulk)
		buf.WriteString(strconv.Itoa(len(tok)))
		buf.WriteString(crlf)
		buf.WriteString(tok)
		buf.WriteString(crlf)
	}
	return buf.Bytes()
}

// DecodeFrame parses exactly one response frame. The input must contain one
// complete frame and nothing else; anything short, long, or ungrammatical is
// a ProtocolError. DecodeFrame performs no I/O and never returns transport
// errors; an error reply decodes into the error variant, not a Go error.
func DecodeFrame(frame []byte) (Value, error) {
	br := bufio.NewReader(bytes.NewReader(frame))
	v, err := decodeValue(br)
	if err != nil {
		return Value{}, err
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return Value{}, &ProtocolError{Message: "trailing bytes after frame"}
	}
	return v, nil
}

func decodeValue(br *bufio.Reader) (Value, error) {
	tag, err := br.ReadByte()
	if err != nil {
		return Value{}, &ProtocolError{Message: "truncated frame"}
	}
	line, err := decodeLine(br)
	if err != nil {
		return Value{}, err
	}

	switch tag {
	case tagSimple:
		if !utf8.ValidString(line) {
			return Value{}, &ProtocolError{Message: "simple string is not valid UTF-8"}
		}
		return StrValue(line), nil

	case tagErr:
		if !utf8.ValidString(line) {
			return Value{}, &ProtocolError{Message: "error message is not valid UTF-8"}
		}
		return ErrValue(line), nil

	case tagInt:
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return Value{}, &ProtocolError{Message: fmt.Sprintf("bad integer %q", line)}
		}
		return IntValue(n), nil

	case tagFloat:
		f, err := parseWireFloat(line)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil

	case tagBool:
		switch line {
		case "t":
			return BoolValue(true), nil
		case "f":
			return BoolValue(false), nil
		default:
			return Value{}, &ProtocolError{Message: fmt.Sprintf("bad boolean %q", line)}
		}

	case tagNull:
		if line != "" {
			return Value{}, &ProtocolError{Message: "null frame carries payload"}
		}
		return NullValue(), nil

	case tagBulk:
		n, err := decodeLength(line)
		if err != nil {
			return Value{}, err
		}
		if n == -1 {
			return NullValue(), nil
		}
		body := make([]byte, n+2)
		if _, err := io.ReadFull(br, body); err != nil {
			return Value{}, &ProtocolError{Message: "truncated bulk string"}
		}
		if string(body[n:]) != crlf {
			return Value{}, &ProtocolError{Message: "bulk string missing CRLF terminator"}
		}
		return StrValue(string(body[:n])), nil

	case tagArray:
		n, err := decodeLength(line)
		if err != nil {
			return Value{}, err
		}
		if n == -1 {
			return NullValue(), nil
		}
		elems := make([]Value, n)
		for i := range elems {
			elem, err := decodeValue(br)
			if err != nil {
				return Value{}, err
			}
			elems[i] = elem
		}
		return ArrayValue(elems...), nil

	case tagMap:
		n, err := decodeLength(line)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			return Value{}, &ProtocolError{Message: "negative map length"}
		}
		m := make(map[string]Value, n)
		for i := int64(0); i < n; i++ {
			keyVal, err := decodeValue(br)
			if err != nil {
				return Value{}, err
			}
			key, err := keyVal.Str()
			if err != nil {
				return Value{}, &ProtocolError{Message: fmt.Sprintf("map key is %s, want string", keyVal.Kind())}
			}
			if _, dup := m[key]; dup {
				return Value{}, &ProtocolError{Message: fmt.Sprintf("duplicate map key %q", key)}
			}
			val, err := decodeValue(br)
			if err != nil {
				return Value{}, err
			}
			m[key] = val
		}
		return MapValue(m), nil

	default:
		return Value{}, &ProtocolError{Message: fmt.Sprintf("unknown type tag %q", tag)}
	}
}

// decodeLine reads a CRLF-terminated header line, excluding the terminator.
func decodeLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", &ProtocolError{Message: "truncated frame"}
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return "", &ProtocolError{Message: "header line not CRLF-terminated"}
	}
	return line[:len(line)-2], nil
}

// decodeLength parses a bulk/aggregate length header. -1 is the legacy null
// marker; anything else must be a length within the frame bound.
func decodeLength(line string) (int64, error) {
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, &ProtocolError{Message: fmt.Sprintf("bad length prefix %q", line)}
	}
	if n < -1 || n > maxFrameSize {
		return 0, &ProtocolError{Message: fmt.Sprintf("length %d out of range", n)}
	}
	return n, nil
}

func parseWireFloat(line string) (float64, error) {
	switch line {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, &ProtocolError{Message: fmt.Sprintf("bad float %q", line)}
	}
	return f, nil
}

// readFrame copies exactly one frame's raw bytes from br into w, walking the
// grammar without materializing values. This is the framing rule the
// transport uses to know where a message ends. I/O errors from br (timeouts,
// EOF) pass through untranslated for the transport to classify; grammar
// violations come back as ProtocolError.
func readFrame(br *bufio.Reader, w *bytes.Buffer) error {
	tag, err := br.ReadByte()
	if err != nil {
		return err
	}
	w.WriteByte(tag)
	line, err := readRawLine(br, w)
	if err != nil {
		return err
	}

	switch tag {
	case tagSimple, tagErr, tagInt, tagFloat, tagBool, tagNull:
		return nil

	case tagBulk:
		n, err := decodeLength(line)
		if err != nil {
			return err
		}
		if n == -1 {
			return nil
		}
		if _, err := io.CopyN(w, br, n+2); err != nil {
			return err
		}
		return nil

	case tagArray, tagMap:
		n, err := decodeLength(line)
		if err != nil {
			return err
		}
		if n == -1 {
			return nil
		}
		elems := n
		if tag == tagMap {
			elems = 2 * n
		}
		for i := int64(0); i < elems; i++ {
			if err := readFrame(br, w); err != nil {
				return err
			}
		}
		return nil

	default:
		return &ProtocolError{Message: fmt.Sprintf("unknown type tag %q", tag)}
	}
}

// readRawLine reads through the next LF, copying bytes into w, and returns
// the line without its CRLF terminator.
func readRawLine(br *bufio.Reader, w *bytes.Buffer) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	w.WriteString(line)
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return "", &ProtocolError{Message: "header line not CRLF-terminated"}
	}
	return line[:len(line)-2], nil
}
