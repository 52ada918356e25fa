package database

import (
	"github.com/ternkv/tern/backend"
	"github.com/ternkv/tern/resp"
)

// SAdd adds members to a set, creating the set if absent. The result
// is an array with one 0/1 integer per member, in input order.
type SAdd struct {
	Key     string
	Members []string
}

func parseSAdd(args []string) (Command, error) {
	return &SAdd{Key: args[0], Members: args[1:]}, nil
}

func (c *SAdd) Execute(b *backend.Backend) resp.Frame {
	result := make(resp.Array, 0, len(c.Members))
	for _, member := range c.Members {
		inserted := int64(0)
		if b.SAdd(c.Key, member) {
			inserted = 1
		}
		result = append(result, resp.Integer(inserted))
	}
	return result
}

// SIsMember reports set membership as a single 0/1 integer.
type SIsMember struct {
	Key    string
	Member string
}

func parseSIsMember(args []string) (Command, error) {
	return &SIsMember{Key: args[0], Member: args[1]}, nil
}

func (c *SIsMember) Execute(b *backend.Backend) resp.Frame {
	if b.SIsMember(c.Key, c.Member) {
		return resp.Integer(1)
	}
	return resp.Integer(0)
}

func init() {
	RegisterCommand("SAdd", parseSAdd, -3)
	RegisterCommand("SIsMember", parseSIsMember, 3)
}
