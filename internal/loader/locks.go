package loader

import "sync"

// collectionLocks не даёт двум запросам одновременно переписывать одну коллекцию.
type collectionLocks struct {
	mu    sync.Mutex
	byKey map[string]*sync.Mutex
}

func newCollectionLocks() *collectionLocks {
	return &collectionLocks{byKey: make(map[string]*sync.Mutex)}
}

func (l *collectionLocks) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.byKey[key]
	if !ok {
		m = &sync.Mutex{}
		l.byKey[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return func() { m.Unlock() }
}
