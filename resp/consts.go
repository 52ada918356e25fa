package resp

// Shared reply singletons, in the spirit of redis' static replies.
var (
	OkFrame    = SimpleString("OK")
	PongFrame  = SimpleString("PONG")
	NullBulk   = NullBulkString{}
	NullArr    = NullArray{}
	EmptyArray = Array{}
)

const (
	crlf    = "\r\n"
	crlfLen = len(crlf)

	nullBulkLiteral  = "$-1" + crlf
	nullArrayLiteral = "*-1" + crlf
)
