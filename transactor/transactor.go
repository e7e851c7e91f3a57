// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/transactionrecord"
)

// Flags - apply context for one transaction
type Flags uint32

// flag bits
const (
	NoFlags Flags = 0

	// set when evaluating against a speculative open ledger; the
	// privileged transactions only apply at ledger close
	OpenLedger Flags = 1 << 0
)

var globalData struct {
	sync.RWMutex
	log *logger.L

	// set once during initialise
	initialised bool
}

// Initialise - set up the transactor
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("transactor")
	globalData.log.Info("starting…")

	globalData.initialised = true

	return nil
}

// Finalise - shutdown the transactor
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false

	return nil
}

// Apply - run one transaction through the validation pipeline
//
// the stages run in a fixed order and the first failing stage decides
// the outcome; only if every stage succeeds does the type specific
// apply run.  A nil return means the mutations in the view are
// complete and the caller must view.Apply() them; any error return
// means the view holds no wanted mutations and must be dropped.
func Apply(tx transactionrecord.Transaction, flags Flags, view *ledgerstate.View) error {

	globalData.RLock()
	initialised := globalData.initialised
	globalData.RUnlock()
	if !initialised || nil == tx || nil == view {
		return fault.ErrNotInitialised
	}

	if err := preCheck(tx, flags); nil != err {
		return err
	}
	if err := checkSeq(tx); nil != err {
		return err
	}
	if err := checkSig(tx); nil != err {
		return err
	}
	if err := payFee(tx); nil != err {
		return err
	}
	return doApply(tx, view)
}

// true for the transactions injected by consensus without a signer
func isPseudo(tx transactionrecord.Transaction) bool {
	switch tx.Tag() {
	case transactionrecord.AmendmentTag,
		transactionrecord.FeeUpdateTag,
		transactionrecord.DividendTag:
		return true
	default:
		return false
	}
}

// structural preconditions
func preCheck(tx transactionrecord.Transaction, flags Flags) error {

	if isPseudo(tx) {
		if !tx.Head().Account.IsZero() {
			globalData.log.Warn("bad source id")
			return fault.ErrBadSourceAccount
		}
		if 0 != flags&OpenLedger {
			globalData.log.Warn("pseudo-transaction against open ledger")
			return fault.ErrInvalidContext
		}
		return nil
	}

	// a signed transaction needs a real source account
	if tx.Head().Account.IsZero() {
		globalData.log.Warn("bad source id")
		return fault.ErrBadSourceAccount
	}
	return nil
}

// sequence preconditions
//
// account sequence rules for signed transactions are checked upstream
// together with signature verification
func checkSeq(tx transactionrecord.Transaction) error {

	if !isPseudo(tx) {
		return nil
	}

	if 0 != tx.Head().Sequence || nil != tx.Head().PreviousTx {
		globalData.log.Warn("bad sequence")
		return fault.ErrBadSequence
	}
	return nil
}

// signature preconditions
//
// a pseudo-transaction carrying any key or signature material is
// malformed; real signature verification happens upstream
func checkSig(tx transactionrecord.Transaction) error {

	if !isPseudo(tx) {
		return nil
	}

	if 0 != len(tx.Head().SigningKey) || 0 != len(tx.Head().Signature) {
		globalData.log.Warn("bad signature")
		return fault.ErrBadSignature
	}
	return nil
}

// fee preconditions
func payFee(tx transactionrecord.Transaction) error {

	if !isPseudo(tx) {
		return nil
	}

	if 0 != tx.Head().Fee {
		globalData.log.Warn("non-zero fee")
		return fault.ErrNonZeroFee
	}
	return nil
}

// dispatch the type specific effect
func doApply(tx transactionrecord.Transaction, view *ledgerstate.View) error {

	switch tx := tx.(type) {
	case *transactionrecord.Amendment:
		return applyAmendment(tx, view)
	case *transactionrecord.FeeUpdate:
		return applyFeeUpdate(tx, view)
	case *transactionrecord.Dividend:
		return applyDividend(tx, view)
	case *transactionrecord.AddReferee:
		return applyAddReferee(tx, view)
	default:
		return fault.ErrUnknownTransactionTag
	}
}
