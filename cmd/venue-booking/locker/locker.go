// Package locker serialises work on a key, either inside one process or
// across replicas through Redis.
package locker

import (
	"context"
	"sync"
)

// Locker hands out exclusive access to a key. The returned release func must
// be called exactly once; extra calls are ignored.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// Local is a per-key mutex table for a single process. Entries are dropped
// once nobody holds or waits for them.
type Local struct {
	mu   sync.Mutex
	keys map[string]*keyLock
}

func NewLocal() *Local {
	return &Local{
		keys: make(map[string]*keyLock),
	}
}

func (l *Local) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.keys[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.keys[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(key, kl)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-kl.ch
			l.drop(key, kl)
		})
	}, nil
}

func (l *Local) drop(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kl.refs--
	if kl.refs == 0 {
		delete(l.keys, key)
	}
}

// held reports the number of keys currently tracked.
func (l *Local) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
