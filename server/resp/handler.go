package resp

import (
	"io"
	"log"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/ternkv/tern/resp"
	"github.com/ternkv/tern/server"
	"github.com/ternkv/tern/server/database"
)

const readChunkSize = 4096

var unknownErrReplyBytes = []byte("-ERR unknown\r\n")

var respHandler *RespHandler

// RespHandler serves the wire protocol over the tcp router. It owns
// the shared database and tracks active connections for shutdown.
type RespHandler struct {
	activeConn sync.Map // net.Conn -> placeholder
	db         *database.Database
	inShutdown int32 // refusing new client and new request
}

// SetupEngine creates the process-wide RespHandler instance.
func SetupEngine() {
	respHandler = &RespHandler{db: database.NewDatabase()}
}

// Engine returns the process-wide RespHandler.
func Engine() *RespHandler {
	return respHandler
}

func (h *RespHandler) closeConn(conn net.Conn) {
	_ = conn.Close()
	h.activeConn.Delete(conn)
}

// Close stops the handler and every active connection.
func (h *RespHandler) Close() error {
	log.Println("handler shutting down...")
	atomic.AddInt32(&h.inShutdown, 1)

	h.activeConn.Range(func(key interface{}, val interface{}) bool {
		conn := key.(net.Conn)
		_ = conn.Close()
		return true
	})
	return nil
}

func (h *RespHandler) shuttingDown() bool {
	return atomic.LoadInt32(&h.inShutdown) != 0
}

// RespMiddleware decodes frames from the connection and executes each
// request against the shared database. A frame may arrive split across
// any number of reads: bytes accumulate in a growing buffer and the
// decoder is retried until it stops reporting an incomplete frame.
func RespMiddleware() server.TcpHandlerFunc {
	return func(ctx *server.TcpSliceRouterContext) {
		conn := ctx.GetConn()
		if respHandler.shuttingDown() {
			_ = conn.Close()
			ctx.Abort()
			return
		}
		respHandler.activeConn.Store(conn, struct{}{})

		buf := make([]byte, 0, readChunkSize)
		chunk := make([]byte, readChunkSize)
		for {
			n, err := conn.Read(chunk)
			if n > 0 {
				buf = append(buf, chunk[:n]...)
			}

			for {
				// Peek whether a whole frame has arrived before
				// committing to a decode.
				if _, lerr := resp.ExpectLength(buf); errors.Is(lerr, resp.ErrIncomplete) {
					break
				}
				frame, consumed, derr := resp.Decode(buf)
				if errors.Is(derr, resp.ErrIncomplete) {
					break
				}
				if derr != nil {
					// protocol err, the stream position is unrecoverable
					errReply := resp.MakeError(derr.Error())
					_ = ctx.Write(errReply.Encode())
					log.Println("protocol error from " + ctx.GetString(server.RemoteAddrContextKey) + ": " + derr.Error())
					respHandler.closeConn(conn)
					ctx.Abort()
					return
				}
				buf = buf[consumed:]

				request, ok := frame.(resp.Array)
				if !ok {
					_ = ctx.Write(resp.MakeError("ERR expected array frame").Encode())
					continue
				}
				result := respHandler.db.Exec(request)
				if result != nil {
					_ = ctx.Write(result.Encode())
				} else {
					_ = ctx.Write(unknownErrReplyBytes)
				}
			}

			if err != nil {
				if err == io.EOF ||
					err == io.ErrUnexpectedEOF ||
					strings.Contains(err.Error(), "use of closed network connection") {
					respHandler.closeConn(conn)
					ctx.Abort()
					return
				}
				log.Println("connection error from " + ctx.GetString(server.RemoteAddrContextKey) + ": " + err.Error())
				respHandler.closeConn(conn)
				ctx.Abort()
				return
			}
		}
	}
}
