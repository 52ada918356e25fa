package wait

import (
	"sync"
	"time"
)

// Wait is a sync.WaitGroup that additionally supports waiting with a
// timeout.
type Wait struct {
	wg sync.WaitGroup
}

func NewWait() *Wait {
	return &Wait{}
}

func (w *Wait) Add(delta int) {
	w.wg.Add(delta)
}

func (w *Wait) Done() {
	w.wg.Done()
}

func (w *Wait) Wait() {
	w.wg.Wait()
}

// WaitWithTimeout blocks until the counter is zero or the timeout
// elapses. It reports whether the timeout fired first.
func (w *Wait) WaitWithTimeout(timeout time.Duration) bool {
	c := make(chan struct{})
	go func() {
		defer close(c)
		w.wg.Wait()
	}()
	select {
	case <-c:
		return false
	case <-time.After(timeout):
		return true
	}
}
