// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Every transaction outcome is one of these instances; the error class
// determines how the consensus layer treats the transaction: malformed
// results are never retried, local rejects are benign no-ops against
// the current state, retryable results may succeed in a later ledger
// and a nil error is full success.
package fault
