package database

import (
	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/resp"
)

// Get returns the string value bound to a key.
type Get struct {
	Key string
}

func parseGet(args []string) (Command, error) {
	return &Get{Key: args[0]}, nil
}

func (c *Get) Execute(b *backend.Backend) resp.Frame {
	value, ok := b.Get(c.Key)
	if !ok {
		return resp.NullBulk
	}
	return value
}

// Set binds a string value to a key, overwriting any previous value.
type Set struct {
	Key   string
	Value resp.Frame
}

func parseSet(args []string) (Command, error) {
	return &Set{Key: args[0], Value: resp.MakeBulk([]byte(args[1]))}, nil
}

func (c *Set) Execute(b *backend.Backend) resp.Frame {
	b.Set(c.Key, c.Value)
	return resp.OkFrame
}

func init() {
	RegisterCommand("Get", parseGet, 2)
	RegisterCommand("Set", parseSet, 3)
}
