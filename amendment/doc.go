// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package amendment - protocol amendment identifiers and registry
//
// An amendment is a 256 bit feature identifier activated by an
// Amendment pseudo-transaction.  The registry is process-wide state
// initialised at node startup with the set of amendments this build
// implements; the transactor notifies it when an activation is applied
// to the ledger.
package amendment
