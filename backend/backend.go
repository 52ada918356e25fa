package backend

import (
	"github.com/ternkv/tern/datastruct/dict"
	"github.com/ternkv/tern/resp"
)

const defaultShardCount = 16

// Backend is the process-wide in-memory store. It holds three
// independent concurrent maps, one per data type, so a scalar GET and
// a set SADD never contend with each other. A single Backend is
// constructed at startup and shared by every connection for the
// process lifetime.
type Backend struct {
	scalars *dict.ConcurrentDict // key -> resp.Frame
	hashes  *dict.ConcurrentDict // key -> *dict.ConcurrentDict of field -> resp.Frame
	sets    *dict.ConcurrentDict // key -> *dict.ConcurrentDict of member -> struct{}
}

// New makes an empty Backend.
func New() *Backend {
	return &Backend{
		scalars: dict.MakeConcurrentDict(defaultShardCount),
		hashes:  dict.MakeConcurrentDict(defaultShardCount),
		sets:    dict.MakeConcurrentDict(defaultShardCount),
	}
}

// Get returns the scalar value bound to key.
func (b *Backend) Get(key string) (resp.Frame, bool) {
	val, ok := b.scalars.Get(key)
	if !ok {
		return nil, false
	}
	return val.(resp.Frame), true
}

// Set binds a scalar value to key, overwriting any previous value.
func (b *Backend) Set(key string, value resp.Frame) {
	b.scalars.Put(key, value)
}

// HGet returns the value of one field of the hash bound to key.
func (b *Backend) HGet(key, field string) (resp.Frame, bool) {
	inner, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	val, ok := inner.(*dict.ConcurrentDict).Get(field)
	if !ok {
		return nil, false
	}
	return val.(resp.Frame), true
}

// HSet binds a field of the hash at key, creating the hash if absent.
func (b *Backend) HSet(key, field string, value resp.Frame) {
	inner := b.hashes.GetOrInsert(key, func() interface{} {
		return dict.MakeConcurrentDict(defaultShardCount)
	})
	inner.(*dict.ConcurrentDict).Put(field, value)
}

// HGetAll returns a point-in-time copy of the hash bound to key.
// Mutations after the call do not affect the returned map.
func (b *Backend) HGetAll(key string) (map[string]resp.Frame, bool) {
	inner, ok := b.hashes.Get(key)
	if !ok {
		return nil, false
	}
	snapshot := make(map[string]resp.Frame)
	inner.(*dict.ConcurrentDict).ForEach(func(field string, val interface{}) bool {
		snapshot[field] = val.(resp.Frame)
		return true
	})
	return snapshot, true
}

// SAdd adds a member to the set at key, creating the set if absent.
// It reports whether the member was newly inserted.
func (b *Backend) SAdd(key, member string) bool {
	inner := b.sets.GetOrInsert(key, func() interface{} {
		return dict.MakeConcurrentDict(defaultShardCount)
	})
	return inner.(*dict.ConcurrentDict).PutIfAbsent(member, struct{}{}) == 1
}

// SIsMember reports whether member is in the set at key. A missing key
// is an empty set.
func (b *Backend) SIsMember(key, member string) bool {
	inner, ok := b.sets.Get(key)
	if !ok {
		return false
	}
	return inner.(*dict.ConcurrentDict).Exist(member)
}

// SMembers returns a point-in-time copy of the members of the set at
// key.
func (b *Backend) SMembers(key string) ([]string, bool) {
	inner, ok := b.sets.Get(key)
	if !ok {
		return nil, false
	}
	return inner.(*dict.ConcurrentDict).Keys(), true
}
