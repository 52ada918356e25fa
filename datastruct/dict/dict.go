package dict

// Consumer is used to traverse a dict. Returning false breaks the
// traversal.
type Consumer func(key string, val interface{}) bool

// Dict is the interface of a concurrency-safe key-value container.
type Dict interface {
	Get(key string) (val interface{}, exists bool)
	Len() int
	Put(key string, val interface{}) (result int)
	PutIfAbsent(key string, val interface{}) (result int)
	GetOrInsert(key string, create func() interface{}) interface{}
	Remove(key string) (result int)
	Exist(key string) bool
	ForEach(consumer Consumer)
	Keys() []string
	Clear()
}
