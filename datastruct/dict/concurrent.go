package dict

import (
	"sync"
	"sync/atomic"
)

// ConcurrentDict is a lock-striped hash table. Keys are routed to a
// fixed power-of-two shard table, so operations on different keys
// mostly proceed in parallel while operations on the same key are
// serialized by that key's shard lock.
type ConcurrentDict struct {
	table []*shard
	count int32
}

type shard struct {
	m  map[string]interface{}
	mu sync.RWMutex
}

// MakeConcurrentDict makes a dict with at least shardCount shards,
// rounded up to the next power of two.
func MakeConcurrentDict(shardCount int) *ConcurrentDict {
	shardCount = computeCapacity(shardCount)
	table := make([]*shard, shardCount)
	for i := range table {
		table[i] = &shard{m: make(map[string]interface{})}
	}
	return &ConcurrentDict{table: table}
}

func computeCapacity(param int) (size int) {
	if param <= 16 {
		return 16
	}
	n := param - 1
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	if n < 0 {
		return 1 << 30
	}
	return n + 1
}

const prime32 = uint32(16777619)

func fnv32(key string) uint32 {
	hash := uint32(2166136261)
	for i := 0; i < len(key); i++ {
		hash *= prime32
		hash ^= uint32(key[i])
	}
	return hash
}

func (d *ConcurrentDict) spread(hashCode uint32) uint32 {
	tableSize := uint32(len(d.table))
	return (tableSize - 1) & hashCode
}

func (d *ConcurrentDict) getShard(key string) *shard {
	return d.table[d.spread(fnv32(key))]
}

func (d *ConcurrentDict) Get(key string) (val interface{}, exists bool) {
	s := d.getShard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, exists = s.m[key]
	return
}

func (d *ConcurrentDict) Len() int {
	return int(atomic.LoadInt32(&d.count))
}

// Put stores the value and returns the number of new keys inserted
// (0 if the key already existed).
func (d *ConcurrentDict) Put(key string, val interface{}) (result int) {
	s := d.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		s.m[key] = val
		return 0
	}
	s.m[key] = val
	atomic.AddInt32(&d.count, 1)
	return 1
}

// PutIfAbsent stores the value only when the key is missing and
// returns the number of keys inserted.
func (d *ConcurrentDict) PutIfAbsent(key string, val interface{}) (result int) {
	s := d.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		return 0
	}
	s.m[key] = val
	atomic.AddInt32(&d.count, 1)
	return 1
}

// GetOrInsert returns the value bound to key, creating and storing
// create() under the shard lock when the key is missing. The check and
// the insert are one atomic step, so two racing callers observe the
// same value.
func (d *ConcurrentDict) GetOrInsert(key string, create func() interface{}) interface{} {
	s := d.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if val, ok := s.m[key]; ok {
		return val
	}
	val := create()
	s.m[key] = val
	atomic.AddInt32(&d.count, 1)
	return val
}

func (d *ConcurrentDict) Remove(key string) (result int) {
	s := d.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; ok {
		delete(s.m, key)
		atomic.AddInt32(&d.count, -1)
		return 1
	}
	return 0
}

func (d *ConcurrentDict) Exist(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// ForEach traverses the dict. Each shard is read-locked only while its
// own entries are visited; the traversal as a whole is not a frozen
// snapshot of the dict.
func (d *ConcurrentDict) ForEach(consumer Consumer) {
	for _, s := range d.table {
		s.mu.RLock()
		stop := func() bool {
			for key, val := range s.m {
				if !consumer(key, val) {
					return true
				}
			}
			return false
		}()
		s.mu.RUnlock()
		if stop {
			break
		}
	}
}

func (d *ConcurrentDict) Keys() []string {
	keys := make([]string, 0, d.Len())
	d.ForEach(func(key string, _ interface{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (d *ConcurrentDict) Clear() {
	for _, s := range d.table {
		s.mu.Lock()
		s.m = make(map[string]interface{})
		s.mu.Unlock()
	}
	atomic.StoreInt32(&d.count, 0)
}
