package backend

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternkv/tern/public/utils/bytex"
	"github.com/ternkv/tern/resp"
)

func TestBackend_GetSet(t *testing.T) {
	b := New()

	// Missing key
	_, ok := b.Get("k")
	assert.False(t, ok)

	// Last write wins
	b.Set("k", resp.MakeBulk([]byte("v1")))
	b.Set("k", resp.MakeBulk([]byte("v2")))
	val, ok := b.Get("k")
	assert.True(t, ok)
	assert.Equal(t, resp.MakeBulk([]byte("v2")), val)

	// Random payloads survive storage untouched
	payload := bytex.RandomBytes(64)
	key := string(bytex.GetTestKey(1))
	b.Set(key, resp.MakeBulk(payload))
	val, _ = b.Get(key)
	assert.Equal(t, resp.MakeBulk(payload), val)
}

func TestBackend_Hash(t *testing.T) {
	b := New()

	_, ok := b.HGet("h", "f")
	assert.False(t, ok)
	_, ok = b.HGetAll("h")
	assert.False(t, ok)

	b.HSet("h", "f1", resp.MakeBulk([]byte("v1")))
	b.HSet("h", "f2", resp.MakeBulk([]byte("v2")))

	val, ok := b.HGet("h", "f1")
	assert.True(t, ok)
	assert.Equal(t, resp.MakeBulk([]byte("v1")), val)

	_, ok = b.HGet("h", "missing")
	assert.False(t, ok)

	all, ok := b.HGetAll("h")
	require.True(t, ok)
	assert.Len(t, all, 2)
	assert.Equal(t, resp.MakeBulk([]byte("v2")), all["f2"])
}

func TestBackend_HGetAllSnapshot(t *testing.T) {
	b := New()
	b.HSet("h", "f", resp.MakeBulk([]byte("before")))

	snapshot, ok := b.HGetAll("h")
	require.True(t, ok)

	// Mutation after the call does not affect the returned view
	b.HSet("h", "f", resp.MakeBulk([]byte("after")))
	b.HSet("h", "g", resp.MakeBulk([]byte("new")))
	assert.Equal(t, resp.MakeBulk([]byte("before")), snapshot["f"])
	assert.Len(t, snapshot, 1)
}

func TestBackend_SAddIdempotence(t *testing.T) {
	b := New()

	assert.True(t, b.SAdd("s", "m"))
	assert.False(t, b.SAdd("s", "m"))
	assert.True(t, b.SIsMember("s", "m"))
}

func TestBackend_SIsMemberAbsent(t *testing.T) {
	b := New()

	assert.False(t, b.SIsMember("missing", "m"))

	b.SAdd("s", "m")
	assert.False(t, b.SIsMember("s", "other"))
}

func TestBackend_ParallelSAdd(t *testing.T) {
	b := New()

	keyNum := 50
	memberNum := 50

	var wg sync.WaitGroup
	wg.Add(keyNum)
	for k := 0; k < keyNum; k++ {
		go func(k int) {
			defer wg.Done()
			key := fmt.Sprintf("set-%d", k)
			for m := 0; m < memberNum; m++ {
				assert.True(t, b.SAdd(key, fmt.Sprintf("member-%d", m)))
			}
		}(k)
	}
	wg.Wait()

	// No lost updates: every key holds exactly its own members
	for k := 0; k < keyNum; k++ {
		key := fmt.Sprintf("set-%d", k)
		members, ok := b.SMembers(key)
		require.True(t, ok)
		assert.Len(t, members, memberNum)
		for m := 0; m < memberNum; m++ {
			assert.True(t, b.SIsMember(key, fmt.Sprintf("member-%d", m)))
		}
	}
}

func TestBackend_TypeIndependence(t *testing.T) {
	b := New()

	// The same key name lives independently in all three maps
	b.Set("k", resp.MakeBulk([]byte("scalar")))
	b.HSet("k", "f", resp.MakeBulk([]byte("hash")))
	b.SAdd("k", "member")

	val, ok := b.Get("k")
	assert.True(t, ok)
	assert.Equal(t, resp.MakeBulk([]byte("scalar")), val)
	hval, ok := b.HGet("k", "f")
	assert.True(t, ok)
	assert.Equal(t, resp.MakeBulk([]byte("hash")), hval)
	assert.True(t, b.SIsMember("k", "member"))
}
