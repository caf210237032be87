// Package lock serializes mutating ledger operations per wallet id inside one process.
package lock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wallet-ledger/pkg/apperror"
)

// KeyedMutex keeps one mutex per key, created on first use and dropped once
// nobody holds or waits for it.
type KeyedMutex struct {
	mutexes map[string]*cntMutex
	mapMtx  sync.Mutex
}

// cntMutex is a one-slot semaphore so waiters can give up on ctx.
type cntMutex struct {
	ch  chan struct{}
	cnt int
}

// NewKeyedMutex creates a new KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{mutexes: make(map[string]*cntMutex)}
}

// Lock acquires every key in sorted order so two callers locking overlapping
// sets cannot deadlock. It implements ports.WalletLocker.
func (k *KeyedMutex) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = Keys(keys...)
	acquired := make([]string, 0, len(keys))
	for _, key := range keys {
		if err := k.lockOne(ctx, key); err != nil {
			k.unlockAll(acquired)
			return nil, apperror.ErrLockTimeout(fmt.Errorf("lock %s: %w", key, err))
		}
		acquired = append(acquired, key)
	}

	var once sync.Once
	return func() { once.Do(func() { k.unlockAll(acquired) }) }, nil
}

func (k *KeyedMutex) lockOne(ctx context.Context, key string) error {
	k.mapMtx.Lock()
	mtx, ok := k.mutexes[key]
	if ok {
		mtx.cnt++
	} else {
		mtx = &cntMutex{ch: make(chan struct{}, 1), cnt: 1}
		k.mutexes[key] = mtx
	}
	k.mapMtx.Unlock()

	select {
	case mtx.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		k.release(key, mtx)
		return ctx.Err()
	}
}

func (k *KeyedMutex) unlockAll(keys []string) {
	for i := len(keys) - 1; i >= 0; i-- {
		k.unlock(keys[i])
	}
}

func (k *KeyedMutex) unlock(key string) {
	k.mapMtx.Lock()
	mtx, ok := k.mutexes[key]
	k.mapMtx.Unlock()
	if !ok {
		panic(fmt.Sprintf("double unlock for key %s", key))
	}
	<-mtx.ch
	k.release(key, mtx)
}

// release drops one reference, deleting the entry when it was the last.
func (k *KeyedMutex) release(key string, mtx *cntMutex) {
	k.mapMtx.Lock()
	mtx.cnt--
	if mtx.cnt == 0 {
		delete(k.mutexes, key)
	}
	k.mapMtx.Unlock()
}

// held reports how many keys currently have holders or waiters.
func (k *KeyedMutex) held() int {
	k.mapMtx.Lock()
	defer k.mapMtx.Unlock()
	return len(k.mutexes)
}

// Keys returns keys sorted with duplicates and empty strings removed.
func Keys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
