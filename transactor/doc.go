// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactor - apply privileged transactions to ledger state
//
// Every transaction runs the same staged pipeline:
//
//	preCheck → checkSeq → checkSig → payFee → doApply
//
// The first failing stage decides the outcome and later stages do not
// run.  The error class carried by the returned fault distinguishes
// the outcome kinds: malformed (never valid), local reject (invalid
// against current state), retryable (could become valid later) and
// process errors; nil is success.  A failed transaction leaves no
// ledger mutations - the caller simply drops the view.
//
// The three pseudo-transactions (amendment, fee update, dividend) are
// injected by consensus at ledger close: they carry the null account,
// no sequence and no signature, and are refused against an open
// ledger.  AddReferee is an ordinary signed transaction whose account
// based checks (sequence window, signature, fee debit) happen in the
// outer submission path before the pipeline runs.
package transactor
