// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/lockstake/lockstake/cache"
	"github.com/lockstake/lockstake/kv"
)

const defaultCacheSize = 8192

// Stater is the state creator.
// States created by the same stater share its read cache of committed values.
type Stater struct {
	store kv.Store
	cache *cache.LRU[key, []byte]
}

// NewStater create a new stater.
func NewStater(store kv.Store) *Stater {
	c, _ := cache.NewLRU[key, []byte](defaultCacheSize)
	return &Stater{store, c}
}

// NewState create a new state object on top of the latest committed values.
func (s *Stater) NewState() *State {
	return newState(s)
}

// CacheStats returns the hit/miss collector of the read cache.
func (s *Stater) CacheStats() *cache.Stats {
	return s.cache.Stats()
}

// load reads the committed value of k, nil if absent.
func (s *Stater) load(k key) ([]byte, error) {
	if v, ok := s.cache.Get(k); ok {
		metricStateAccessCounter().AddWithLabel(1, map[string]string{"type": k.kind(), "target": "cache"})
		return v, nil
	}
	metricStateAccessCounter().AddWithLabel(1, map[string]string{"type": k.kind(), "target": "store"})

	v, err := s.store.Get(k.encode())
	if err != nil {
		if !s.store.IsNotFound(err) {
			return nil, err
		}
		v = nil
	}
	s.cache.Add(k, v)
	return v, nil
}
