// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/dyguan372/rippled/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	AccountRoots *PoolHandle `prefix:"R"`
	Amendments   *PoolHandle `prefix:"A"`
	FeeSettings  *PoolHandle `prefix:"F"`
	Dividend     *PoolHandle `prefix:"D"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentStateDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	log    *logger.L
	db     *leveldb.DB
	batch  *leveldb.Batch
	cache  Cache
	access Access

	// set once during initialise
	initialised bool
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string) error {
	poolData.Lock()
	defer poolData.Unlock()

	if poolData.initialised {
		return fault.ErrAlreadyInitialised
	}

	poolData.log = logger.New("storage")
	poolData.log.Info("starting…")

	stateDatabase := database + "-state.leveldb"

	db, err := leveldb.OpenFile(stateDatabase, nil)
	if nil != err {
		return err
	}
	poolData.db = db

	version, err := getVersion(db)
	if nil != err {
		db.Close()
		poolData.db = nil
		return err
	}

	switch {
	case 0 == version:
		// database was empty so tag as current version
		err = putVersion(db, currentStateDBVersion)
		if nil != err {
			db.Close()
			poolData.db = nil
			return err
		}
	case currentStateDBVersion == version:
		// normal start up
	default:
		poolData.log.Criticalf("state database version: %d  current version: %d", version, currentStateDBVersion)
		db.Close()
		poolData.db = nil
		return fault.ProcessError("incompatible state database version")
	}

	poolData.batch = new(leveldb.Batch)
	poolData.cache = newCache()
	poolData.access = newAccess(db, poolData.batch, poolData.cache)

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			logger.Panicf("pool: %v  has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: poolData.access,
		}
		newPool := reflect.ValueOf(p)
		poolValue.Field(i).Set(newPool)
	}

	poolData.initialised = true

	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if !poolData.initialised {
		return
	}

	poolData.log.Info("shutting down…")

	poolData.db.Close()
	poolData.db = nil
	poolData.batch = nil
	poolData.cache = nil
	poolData.access = nil

	// clear pools
	poolValue := reflect.ValueOf(&Pool).Elem()
	for i := 0; i < poolValue.NumField(); i += 1 {
		poolValue.Field(i).Set(reflect.Zero(poolValue.Field(i).Type()))
	}

	poolData.log.Flush()
	poolData.initialised = false
}

// Begin - start a batched ledger close pass
func Begin() error {
	poolData.RLock()
	defer poolData.RUnlock()

	if !poolData.initialised {
		return fault.ErrNotInitialised
	}
	return poolData.access.Begin()
}

// Commit - make all batched writes durable
func Commit() error {
	poolData.RLock()
	defer poolData.RUnlock()

	if !poolData.initialised {
		return fault.ErrNotInitialised
	}
	return poolData.access.Commit()
}

// Discard - drop all batched writes
func Discard() {
	poolData.RLock()
	defer poolData.RUnlock()

	if !poolData.initialised {
		return
	}
	poolData.access.Abort()
}

// IsInitialised - for callers that need a guard
func IsInitialised() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.initialised
}

// read the version record
func getVersion(db *leveldb.DB) (uint32, error) {
	value, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}
	if 4 != len(value) {
		return 0, fault.ProcessError("incompatible state database version block")
	}
	return binary.BigEndian.Uint32(value), nil
}

// write the version record
func putVersion(db *leveldb.DB, version uint32) error {
	value := make([]byte, 4)
	binary.BigEndian.PutUint32(value, version)
	return db.Put(versionKey, value, nil)
}
