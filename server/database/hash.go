package database

import (
	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/resp"
)

// HGet returns the value of one field of a hash.
type HGet struct {
	Key   string
	Field string
}

func parseHGet(args []string) (Command, error) {
	return &HGet{Key: args[0], Field: args[1]}, nil
}

func (c *HGet) Execute(b *backend.Backend) resp.Frame {
	value, ok := b.HGet(c.Key, c.Field)
	if !ok {
		return resp.NullBulk
	}
	return value
}

// HSet binds one field of a hash, creating the hash if absent.
type HSet struct {
	Key   string
	Field string
	Value resp.Frame
}

func parseHSet(args []string) (Command, error) {
	return &HSet{Key: args[0], Field: args[1], Value: resp.MakeBulk([]byte(args[2]))}, nil
}

func (c *HSet) Execute(b *backend.Backend) resp.Frame {
	b.HSet(c.Key, c.Field, c.Value)
	return resp.OkFrame
}

// HGetAll returns every field and value of a hash as a flat array of
// alternating field, value pairs.
type HGetAll struct {
	Key string
}

func parseHGetAll(args []string) (Command, error) {
	return &HGetAll{Key: args[0]}, nil
}

func (c *HGetAll) Execute(b *backend.Backend) resp.Frame {
	snapshot, ok := b.HGetAll(c.Key)
	if !ok {
		return resp.NullArr
	}
	result := make(resp.Array, 0, len(snapshot)*2)
	for field, value := range snapshot {
		result = append(result, resp.MakeBulk([]byte(field)), value)
	}
	return result
}

func init() {
	RegisterCommand("HGet", parseHGet, 3)
	RegisterCommand("HSet", parseHSet, 4)
	RegisterCommand("HGetAll", parseHGetAll, 2)
}
