package database

import (
	"github.com/pkg/errors"

	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/public"
	"github.com/ternkv/tern/resp"
)

// Ping probes server liveness. With a message argument the message is
// echoed back as a status reply.
type Ping struct {
	Message string
	HasMsg  bool
}

func parsePing(args []string) (Command, error) {
	if len(args) > 1 {
		return nil, errors.Wrap(public.ErrInvalidCommand, "wrong number of arguments for 'ping' command")
	}
	cmd := &Ping{}
	if len(args) == 1 {
		cmd.Message = args[0]
		cmd.HasMsg = true
	}
	return cmd, nil
}

func (c *Ping) Execute(_ *backend.Backend) resp.Frame {
	if c.HasMsg {
		return resp.MakeStatus(c.Message)
	}
	return resp.PongFrame
}

func init() {
	RegisterCommand("Ping", parsePing, -1)
}
