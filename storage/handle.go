// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sort"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// PoolHandle - one prefixed key pool of the state database
type PoolHandle struct {
	prefix byte
	limit  []byte
	access Access
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair into the batch
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Put nil access")
		return
	}
	p.access.Put(p.prefixKey(key), value)
}

// Delete - remove a key from the pool
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Delete nil access")
		return
	}
	p.access.Delete(p.prefixKey(key))
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
// returns nil if the key does not exist
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Get nil access")
		return nil
	}
	value, err := p.access.Get(p.prefixKey(key))
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		logger.Panic("pool.Has nil access")
		return false
	}
	value, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return value
}

// Iterate - visit every element of the pool in ascending key order
//
// committed records are merged with the uncommitted batch so a scan
// during a ledger close pass sees entries written earlier in the pass;
// return false from the callback to stop early
func (p *PoolHandle) Iterate(fn func(key []byte, value []byte) bool) {
	poolData.RLock()
	if nil == p.access {
		poolData.RUnlock()
		logger.Panic("pool.Iterate nil access")
		return
	}

	merged := make(map[string][]byte)

	iter := p.access.Iterator(&ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	})
	for iter.Next() {
		// contents of the returned slices are only valid until the
		// next call to Next
		key := iter.Key()
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		merged[string(key[1:])] = value
	}
	iter.Release()
	err := iter.Error()

	// overlay the uncommitted batch; nil marks a batched delete
	for cachedKey, value := range p.access.CachedEntries() {
		if 0 == len(cachedKey) || cachedKey[0] != p.prefix {
			continue
		}
		if nil == value {
			delete(merged, cachedKey[1:])
		} else {
			merged[cachedKey[1:]] = value
		}
	}
	poolData.RUnlock()

	logger.PanicIfError("pool.Iterate", err)

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !fn([]byte(key), merged[key]) {
			break
		}
	}
}
