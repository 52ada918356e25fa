package resp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkStringEncode(t *testing.T) {
	assert.Equal(t, []byte("$5\r\nhello\r\n"), MakeBulk([]byte("hello")).Encode())
	assert.Equal(t, []byte("$0\r\n\r\n"), MakeBulk(nil).Encode())
	assert.Equal(t, []byte("$-1\r\n"), NullBulk.Encode())
}

func TestFrameEncode(t *testing.T) {
	assert.Equal(t, []byte("+OK\r\n"), OkFrame.Encode())
	assert.Equal(t, []byte("-ERR unknown\r\n"), MakeError("ERR unknown").Encode())
	assert.Equal(t, []byte(":42\r\n"), Integer(42).Encode())
	assert.Equal(t, []byte(":-7\r\n"), Integer(-7).Encode())
	assert.Equal(t, []byte("*-1\r\n"), NullArr.Encode())
	assert.Equal(t, []byte("*0\r\n"), EmptyArray.Encode())

	arr := Array{MakeBulk([]byte("set")), MakeBulk([]byte("k")), MakeBulk([]byte("v"))}
	assert.Equal(t, []byte("*3\r\n$3\r\nset\r\n$1\r\nk\r\n$1\r\nv\r\n"), arr.Encode())
}

func TestBulkStringDecode(t *testing.T) {
	frame, n, err := Decode([]byte("$5\r\nhello\r\n"))
	require.Nil(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, MakeBulk([]byte("hello")), frame)

	// Missing trailing terminator: incomplete, nothing consumed
	_, n, err = Decode([]byte("$5\r\nhello"))
	assert.Equal(t, ErrIncomplete, err)
	assert.Equal(t, 0, n)

	// After the terminator arrives the whole buffer is consumed
	frame, n, err = Decode([]byte("$5\r\nhello\r\n"))
	require.Nil(t, err)
	assert.Equal(t, 11, n)
	assert.Equal(t, MakeBulk([]byte("hello")), frame)
}

func TestNullBulkStringDecode(t *testing.T) {
	frame, n, err := Decode([]byte("$-1\r\n"))
	require.Nil(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, NullBulk, frame)

	// Null and empty bulk strings are distinct values
	frame, n, err = Decode([]byte("$0\r\n\r\n"))
	require.Nil(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, MakeBulk(nil), frame)
}

func roundTripFrames() []Frame {
	return []Frame{
		SimpleString("OK"),
		SimpleError("ERR wrong type"),
		Integer(0),
		Integer(-123456),
		Integer(1 << 40),
		MakeBulk([]byte("hello")),
		MakeBulk(nil),
		MakeBulk([]byte("with\r\nterminator bytes")),
		NullBulk,
		NullArr,
		Array{},
		Array{Integer(1), Integer(1), Integer(0)},
		Array{MakeBulk([]byte("sadd")), MakeBulk([]byte("myset")), MakeBulk([]byte("a"))},
		Array{Array{Integer(1)}, NullBulk, SimpleString("nested")},
	}
}

func TestRoundTrip(t *testing.T) {
	for _, frame := range roundTripFrames() {
		encoded := frame.Encode()

		decoded, n, err := Decode(encoded)
		require.Nil(t, err, "frame %#v", frame)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, frame, decoded)

		expected, err := ExpectLength(encoded)
		require.Nil(t, err)
		assert.Equal(t, len(encoded), expected)
	}
}

func TestIncrementalDecode(t *testing.T) {
	for _, frame := range roundTripFrames() {
		encoded := frame.Encode()

		// Every strict prefix is incomplete and consumes nothing
		for i := 0; i < len(encoded); i++ {
			_, n, err := Decode(encoded[:i])
			assert.Equal(t, ErrIncomplete, err, "frame %#v prefix %d", frame, i)
			assert.Equal(t, 0, n)
		}

		decoded, n, err := Decode(encoded)
		require.Nil(t, err)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, frame, decoded)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	// Decode reads exactly one frame and reports its size
	buf := append(Integer(7).Encode(), "$5\r\nhel"...)
	frame, n, err := Decode(buf)
	require.Nil(t, err)
	assert.Equal(t, Integer(7), frame)
	assert.Equal(t, 4, n)

	_, _, err = Decode(buf[n:])
	assert.Equal(t, ErrIncomplete, err)
}

func TestDecodeProtocolError(t *testing.T) {
	_, _, err := Decode([]byte("?foo\r\n"))
	assert.ErrorIs(t, err, ErrProtocol)

	_, _, err = Decode([]byte("$abc\r\n"))
	assert.ErrorIs(t, err, ErrProtocol)

	_, _, err = Decode([]byte(":12x\r\n"))
	assert.ErrorIs(t, err, ErrProtocol)

	_, _, err = Decode([]byte("$-2\r\n"))
	assert.ErrorIs(t, err, ErrProtocol)

	// Declared length does not match the payload terminator
	_, _, err = Decode([]byte("$1\r\nxZZ"))
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestDecodeLimits(t *testing.T) {
	_, _, err := Decode([]byte("$9999999\r\n"))
	assert.ErrorIs(t, err, ErrLimitExceeded)

	_, _, err = Decode([]byte("*99999\r\n"))
	assert.ErrorIs(t, err, ErrLimitExceeded)
}

func TestExpectLength(t *testing.T) {
	// The total size is known from headers before the payload arrives
	n, err := ExpectLength([]byte("$5\r\nhe"))
	require.Nil(t, err)
	assert.Equal(t, 11, n)

	_, err = ExpectLength([]byte("$5"))
	assert.Equal(t, ErrIncomplete, err)

	// An array length needs every element header
	_, err = ExpectLength([]byte("*2\r\n$3\r\nfoo\r\n"))
	assert.Equal(t, ErrIncomplete, err)

	n, err = ExpectLength([]byte("*2\r\n$3\r\nfoo\r\n$3\r\n"))
	require.Nil(t, err)
	assert.Equal(t, 4+9+9, n)
}
