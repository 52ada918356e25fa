package resp

import (
	"bytes"
	"strconv"

	"github.com/pkg/errors"
)

// Protocol limits shield the server from absurd length headers. Real
// commands stay far below both.
const (
	// MaxArrayLen caps the element count of a request array.
	MaxArrayLen = 1024

	// MaxBulkLen caps a single bulk string payload (512KB).
	MaxBulkLen = 512 * 1024
)

var (
	// ErrIncomplete reports that the buffer holds a valid but
	// incomplete prefix of a frame. Not a failure: the caller must
	// read more bytes and retry.
	ErrIncomplete = errors.New("resp: incomplete frame")

	// ErrProtocol reports a malformed frame at the current stream
	// position. Waiting for more bytes cannot fix it.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded reports a length header beyond the configured
	// protocol limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// Decode reads one frame from the front of buf and reports how many
// bytes it occupies. It never consumes: on success the caller advances
// its buffer by n; on ErrIncomplete n is 0 and the buffer must keep
// growing before the next attempt.
func Decode(buf []byte) (Frame, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrIncomplete
	}
	switch buf[0] {
	case '+':
		line, n, err := decodeLine(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleString(line), n, nil
	case '-':
		line, n, err := decodeLine(buf)
		if err != nil {
			return nil, 0, err
		}
		return SimpleError(line), n, nil
	case ':':
		line, n, err := decodeLine(buf)
		if err != nil {
			return nil, 0, err
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, 0, errors.Wrapf(ErrProtocol, "bad integer %q", line)
		}
		return Integer(v), n, nil
	case '$':
		return decodeBulk(buf)
	case '*':
		return decodeArray(buf)
	default:
		return nil, 0, errors.Wrapf(ErrProtocol, "unknown frame prefix %q", buf[0])
	}
}

// ExpectLength computes the total encoded size of the frame at the
// front of buf without materializing it, so a connection loop can check
// whether a full frame has arrived before committing to a decode.
func ExpectLength(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, ErrIncomplete
	}
	switch buf[0] {
	case '+', '-', ':':
		_, n, err := decodeLine(buf)
		return n, err
	case '$':
		length, header, err := parseLength(buf, MaxBulkLen)
		if err != nil {
			return 0, err
		}
		if length == -1 {
			return header, nil
		}
		return header + length + crlfLen, nil
	case '*':
		count, header, err := parseLength(buf, MaxArrayLen)
		if err != nil {
			return 0, err
		}
		if count == -1 {
			return header, nil
		}
		total := header
		for i := 0; i < count; i++ {
			n, err := ExpectLength(buf[total:])
			if err != nil {
				return 0, err
			}
			total += n
		}
		return total, nil
	default:
		return 0, errors.Wrapf(ErrProtocol, "unknown frame prefix %q", buf[0])
	}
}

// decodeLine extracts a single CRLF-terminated line and strips the
// prefix marker and the terminator.
func decodeLine(buf []byte) (string, int, error) {
	end := bytes.Index(buf, []byte(crlf))
	if end < 0 {
		return "", 0, ErrIncomplete
	}
	return string(buf[1:end]), end + crlfLen, nil
}

// parseLength reads the decimal length header of a bulk string or
// array. It returns the declared length (-1 for the null variant) and
// the header size including the terminator.
func parseLength(buf []byte, limit int) (int, int, error) {
	line, header, err := decodeLine(buf)
	if err != nil {
		return 0, 0, err
	}
	length, err := strconv.Atoi(line)
	if err != nil {
		return 0, 0, errors.Wrapf(ErrProtocol, "bad length %q", line)
	}
	if length < -1 {
		return 0, 0, errors.Wrapf(ErrProtocol, "negative length %d", length)
	}
	if length > limit {
		return 0, 0, errors.Wrapf(ErrLimitExceeded, "length %d exceeds limit %d", length, limit)
	}
	return length, header, nil
}

func decodeBulk(buf []byte) (Frame, int, error) {
	length, header, err := parseLength(buf, MaxBulkLen)
	if err != nil {
		return nil, 0, err
	}
	if length == -1 {
		return NullBulk, header, nil
	}
	total := header + length + crlfLen
	if len(buf) < total {
		return nil, 0, ErrIncomplete
	}
	if string(buf[header+length:total]) != crlf {
		return nil, 0, errors.Wrap(ErrProtocol, "bulk string missing terminator")
	}
	return MakeBulk(buf[header : header+length]), total, nil
}

func decodeArray(buf []byte) (Frame, int, error) {
	count, header, err := parseLength(buf, MaxArrayLen)
	if err != nil {
		return nil, 0, err
	}
	if count == -1 {
		return NullArr, header, nil
	}
	elems := make(Array, 0, count)
	consumed := header
	for i := 0; i < count; i++ {
		elem, n, err := Decode(buf[consumed:])
		if err != nil {
			return nil, 0, err
		}
		elems = append(elems, elem)
		consumed += n
	}
	return elems, consumed, nil
}
