package resp

import (
	"strconv"
)

// Frame is one self-describing value of the wire protocol. The variant
// set targets RESP2: simple string, simple error, integer, bulk string
// (with a distinct null state), and array (with a distinct null state).
type Frame interface {
	// Encode renders the frame to its exact wire bytes. Encoding is
	// total and never fails.
	Encode() []byte
}

// SimpleString is a single-line status reply, e.g. +OK\r\n
type SimpleString string

// SimpleError is a single-line error reply, e.g. -ERR unknown\r\n
type SimpleError string

// Integer is a signed 64-bit integer reply, e.g. :42\r\n
type Integer int64

// BulkString is a length-prefixed binary string. A nil BulkString is
// still the empty string; absence is expressed by NullBulkString.
type BulkString []byte

// NullBulkString marks an absent bulk string ($-1\r\n).
type NullBulkString struct{}

// Array is an ordered sequence of frames.
type Array []Frame

// NullArray marks an absent array (*-1\r\n).
type NullArray struct{}

func (s SimpleString) Encode() []byte {
	buf := make([]byte, 0, len(s)+3)
	buf = append(buf, '+')
	buf = append(buf, s...)
	return append(buf, crlf...)
}

func (e SimpleError) Encode() []byte {
	buf := make([]byte, 0, len(e)+3)
	buf = append(buf, '-')
	buf = append(buf, e...)
	return append(buf, crlf...)
}

func (i Integer) Encode() []byte {
	buf := make([]byte, 0, 16)
	buf = append(buf, ':')
	buf = strconv.AppendInt(buf, int64(i), 10)
	return append(buf, crlf...)
}

func (b BulkString) Encode() []byte {
	buf := make([]byte, 0, len(b)+16)
	buf = append(buf, '$')
	buf = strconv.AppendInt(buf, int64(len(b)), 10)
	buf = append(buf, crlf...)
	buf = append(buf, b...)
	return append(buf, crlf...)
}

func (NullBulkString) Encode() []byte {
	return []byte(nullBulkLiteral)
}

func (a Array) Encode() []byte {
	buf := make([]byte, 0, 16)
	buf = append(buf, '*')
	buf = strconv.AppendInt(buf, int64(len(a)), 10)
	buf = append(buf, crlf...)
	for _, elem := range a {
		buf = append(buf, elem.Encode()...)
	}
	return buf
}

func (NullArray) Encode() []byte {
	return []byte(nullArrayLiteral)
}

// MakeBulk builds a bulk string frame holding a copy of b.
func MakeBulk(b []byte) BulkString {
	dup := make([]byte, len(b))
	copy(dup, b)
	return dup
}

// MakeMultiBulk builds an array of bulk strings, one per argument.
// This is the shape of every client request.
func MakeMultiBulk(args [][]byte) Array {
	frames := make(Array, len(args))
	for i, arg := range args {
		frames[i] = MakeBulk(arg)
	}
	return frames
}

// MakeStatus builds a simple string status reply.
func MakeStatus(s string) SimpleString {
	return SimpleString(s)
}

// MakeError builds a protocol-level error reply.
func MakeError(msg string) SimpleError {
	return SimpleError(msg)
}
