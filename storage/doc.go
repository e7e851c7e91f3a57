// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the state database
//
// Maintains a single leveldb database holding all ledger entries, one
// prefixed key pool per entry type.  All writes go through a batch
// with a cache overlay so that entries written earlier in a ledger
// close pass are visible to later reads and to iteration; Commit makes
// the batch durable at the end of the pass and Discard drops it.
package storage
