// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amendment

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/dyguan372/rippled/fault"
)

// the registry mirrors the on-ledger amendments entry in process-wide
// state so that feature checks do not need a ledger read
var globalData struct {
	sync.RWMutex
	log       *logger.L
	supported map[ID]struct{}
	enabled   map[ID]struct{}

	// set once during initialise
	initialised bool
}

// Initialise - set up the amendment registry
//
// supported lists every amendment this build implements; enabling any
// other amendment blocks the node
func Initialise(supported []ID) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("amendment")
	globalData.log.Info("starting…")

	globalData.supported = make(map[ID]struct{}, len(supported))
	for _, id := range supported {
		globalData.supported[id] = struct{}{}
	}
	globalData.enabled = make(map[ID]struct{})

	globalData.initialised = true

	return nil
}

// Finalise - shutdown the amendment registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.supported = nil
	globalData.enabled = nil
	globalData.initialised = false

	return nil
}

// Enable - record that an amendment is now active on the ledger
func Enable(id ID) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return
	}

	globalData.enabled[id] = struct{}{}
	globalData.log.Infof("enabled: %s", id)
}

// IsSupported - true if this build implements the amendment
func IsSupported(id ID) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	_, ok := globalData.supported[id]
	return ok
}

// IsEnabled - true if the amendment is active on the ledger
func IsEnabled(id ID) bool {
	globalData.RLock()
	defer globalData.RUnlock()

	_, ok := globalData.enabled[id]
	return ok
}
