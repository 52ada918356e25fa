package database

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/public"
	"github.com/ternkv/tern/resp"
)

// Command is one validated client request, executable against the
// Backend. Parsing and execution are separate phases: a command that
// fails to parse never touches the Backend.
type Command interface {
	Execute(b *backend.Backend) resp.Frame
}

// ParseFunc builds a typed command from the textual arguments that
// follow the command name.
type ParseFunc func(args []string) (Command, error)

var cmdTable = make(map[string]*command)

type command struct {
	parse ParseFunc
	arity int // allowed number of tokens including the name, arity < 0 means len >= -arity
}

// RegisterCommand registers a command under a case-insensitive name.
// arity counts every token of the command line including the name
// itself; a negative arity means "at least -arity tokens".
// for example: the arity of `get` is 2, `sadd` is -3
func RegisterCommand(name string, parse ParseFunc, arity int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		parse: parse,
		arity: arity,
	}
}

func validateArity(arity int, n int) bool {
	if arity >= 0 {
		return n == arity
	}
	return n >= -arity
}

// extractArgs converts the elements after the command name into text.
// Every argument must be a bulk string holding valid UTF-8.
func extractArgs(frames []resp.Frame) ([]string, error) {
	args := make([]string, 0, len(frames))
	for _, f := range frames {
		bulk, ok := f.(resp.BulkString)
		if !ok {
			return nil, errors.Wrap(public.ErrInvalidArgument, "argument is not a bulk string")
		}
		if !utf8.Valid(bulk) {
			return nil, errors.Wrap(public.ErrInvalidArgument, "argument is not valid utf-8")
		}
		args = append(args, string(bulk))
	}
	return args, nil
}
