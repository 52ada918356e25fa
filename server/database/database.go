package database

import (
	"fmt"
	"log"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"

	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/public"
	"github.com/ternkv/tern/resp"
)

// Database dispatches decoded request frames to typed commands and
// executes them against a shared Backend.
type Database struct {
	backend *backend.Backend
}

// NewDatabase creates a database over a fresh Backend.
func NewDatabase() *Database {
	return &Database{backend: backend.New()}
}

// Backend exposes the underlying store, mainly for tests.
func (d *Database) Backend() *backend.Backend {
	return d.backend
}

// Exec runs one client request. The request must be an array frame
// whose first element names the command. Parse failures are reported
// as error frames and leave the Backend untouched.
func (d *Database) Exec(request resp.Array) (result resp.Frame) {
	defer func() {
		if err := recover(); err != nil {
			log.Println(fmt.Sprintf("error occurs: %v\n%s", err, string(debug.Stack())))
			result = resp.MakeError("ERR internal error")
		}
	}()

	cmd, err := Parse(request)
	if err != nil {
		return errorFrame(err)
	}
	return cmd.Execute(d.backend)
}

// Parse turns a decoded array frame into a typed command without
// executing it.
func Parse(request resp.Array) (Command, error) {
	if len(request) == 0 {
		return nil, errors.Wrap(public.ErrInvalidCommand, "empty command line")
	}
	nameBulk, ok := request[0].(resp.BulkString)
	if !ok {
		return nil, errors.Wrap(public.ErrInvalidCommand, "command name is not a bulk string")
	}
	name := strings.ToLower(string(nameBulk))
	cmd, ok := cmdTable[name]
	if !ok {
		return nil, errors.Wrapf(public.ErrInvalidCommand, "unknown command '%s'", name)
	}
	if !validateArity(cmd.arity, len(request)) {
		return nil, errors.Wrapf(public.ErrInvalidCommand, "wrong number of arguments for '%s' command", name)
	}
	args, err := extractArgs(request[1:])
	if err != nil {
		return nil, err
	}
	return cmd.parse(args)
}

func errorFrame(err error) resp.Frame {
	return resp.MakeError("ERR " + err.Error())
}
