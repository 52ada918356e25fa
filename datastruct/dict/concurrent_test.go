package dict

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentDict_PutGet(t *testing.T) {
	d := MakeConcurrentDict(16)

	// Normally put a key
	result := d.Put("k1", "v1")
	assert.Equal(t, 1, result)
	val, ok := d.Get("k1")
	assert.True(t, ok)
	assert.Equal(t, "v1", val)

	// Overwrite is not a new insert
	result = d.Put("k1", "v2")
	assert.Equal(t, 0, result)
	val, _ = d.Get("k1")
	assert.Equal(t, "v2", val)

	// Missing key
	_, ok = d.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, 1, d.Len())
}

func TestConcurrentDict_PutIfAbsent(t *testing.T) {
	d := MakeConcurrentDict(16)

	assert.Equal(t, 1, d.PutIfAbsent("k", "v1"))
	assert.Equal(t, 0, d.PutIfAbsent("k", "v2"))

	val, _ := d.Get("k")
	assert.Equal(t, "v1", val)
}

func TestConcurrentDict_GetOrInsert(t *testing.T) {
	d := MakeConcurrentDict(16)

	created := 0
	create := func() interface{} {
		created++
		return "fresh"
	}

	assert.Equal(t, "fresh", d.GetOrInsert("k", create))
	assert.Equal(t, "fresh", d.GetOrInsert("k", create))
	assert.Equal(t, 1, created)
}

func TestConcurrentDict_Remove(t *testing.T) {
	d := MakeConcurrentDict(16)

	d.Put("k", "v")
	assert.Equal(t, 1, d.Remove("k"))
	assert.Equal(t, 0, d.Remove("k"))
	assert.False(t, d.Exist("k"))
	assert.Equal(t, 0, d.Len())
}

func TestConcurrentDict_KeysAndClear(t *testing.T) {
	d := MakeConcurrentDict(16)
	for i := 0; i < 100; i++ {
		d.Put(fmt.Sprintf("key-%d", i), i)
	}
	assert.Len(t, d.Keys(), 100)

	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.Keys())
}

func TestConcurrentDict_ParallelPut(t *testing.T) {
	d := MakeConcurrentDict(16)

	workerNum := 100
	keysPerWorker := 100

	var wg sync.WaitGroup
	wg.Add(workerNum)
	for id := 0; id < workerNum; id++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < keysPerWorker; i++ {
				key := fmt.Sprintf("worker-%d-key-%d", id, i)
				assert.Equal(t, 1, d.Put(key, id))
			}
		}(id)
	}
	wg.Wait()

	// No lost updates across shards
	assert.Equal(t, workerNum*keysPerWorker, d.Len())
}
