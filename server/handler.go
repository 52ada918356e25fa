package server

import (
	"context"
	"net"
)

// TCPHandler represents application handler over tcp
type TCPHandler interface {
	ServeTCP(ctx context.Context, conn net.Conn)
}
