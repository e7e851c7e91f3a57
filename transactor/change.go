// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"github.com/dyguan372/rippled/amendment"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/mode"
	"github.com/dyguan372/rippled/transactionrecord"
)

// record an amendment as permanently enabled
//
// an amendment the local build does not know about still activates,
// but the node can no longer follow the network rules, so it drops to
// blocked mode
func applyAmendment(tx *transactionrecord.Amendment, view *ledgerstate.View) error {

	amendments, err := view.Amendments()
	if nil != err {
		return err
	}
	if nil == amendments {
		amendments = view.CreateAmendments()
	}

	if amendments.HasAmendment(tx.AmendmentID) {
		globalData.log.Warnf("amendment already applied: %s", tx.AmendmentID)
		return fault.ErrDuplicateAmendment
	}

	amendments.Amendments = append(amendments.Amendments, tx.AmendmentID)
	view.MarkDirty(amendments)

	amendment.Enable(tx.AmendmentID)

	if !amendment.IsSupported(tx.AmendmentID) {
		globalData.log.Criticalf("unsupported amendment activated: %s", tx.AmendmentID)
		mode.Set(mode.Blocked)
	}

	globalData.log.Infof("amendment activated: %s", tx.AmendmentID)
	return nil
}

// overwrite the fee schedule wholesale
func applyFeeUpdate(tx *transactionrecord.FeeUpdate, view *ledgerstate.View) error {

	fees, err := view.FeeSettings()
	if nil != err {
		return err
	}
	if nil == fees {
		fees = view.CreateFeeSettings()
	}

	fees.BaseFee = tx.BaseFee
	fees.ReferenceFeeUnits = tx.ReferenceFeeUnits
	fees.ReserveBase = tx.ReserveBase
	fees.ReserveIncrement = tx.ReserveIncrement
	view.MarkDirty(fees)

	globalData.log.Infof("fees changed: base: %d  units: %d  reserve: %d + %d",
		fees.BaseFee, fees.ReferenceFeeUnits, fees.ReserveBase, fees.ReserveIncrement)
	return nil
}
