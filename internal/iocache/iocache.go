// Package iocache provides the durable stores: the TTL result cache and
// the forecast run history.
package iocache

import (
	"sync"

	"github.com/jmallard/shelfwatch/internal/contract"
)

// CacheStoreManager manages the store instances handed to command executors.
type CacheStoreManager struct {
	sync.RWMutex // guards the pointers while InitStores swaps them in
	cache        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{}

// GetCacheStore returns the TTL result CacheStore.
func (mgr *CacheStoreManager) GetCacheStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.cache
}

// GetHistoryStore returns the forecast run HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
