package impl

import "sync"

// keyedMutex serializes work per string key. Entries are reference-counted
// and reclaimed once no goroutine holds or awaits them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

// lock acquires the mutex for key and returns the release func.
func (km *keyedMutex) lock(key string) func() {
	km.mu.Lock()
	l, ok := km.locks[key]
	if !ok {
		l = &lockEntry{}
		km.locks[key] = l
	}
	l.refs++
	km.mu.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		km.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(km.locks, key)
		}
		km.mu.Unlock()
	}
}
