// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/transactionrecord"
)

// insert one referral edge: the sender names the destination as its
// referee and the destination gains the sender as a reference
//
// both edge ends are recorded, so either side of the relation can be
// walked without scanning; the dividend engine depends on the
// references list being the only child index
func applyAddReferee(tx *transactionrecord.AddReferee, view *ledgerstate.View) error {

	refereeID := tx.Destination
	referenceID := tx.Account

	if refereeID.IsZero() {
		globalData.log.Warn("destination account not specified")
		return fault.ErrDestinationRequired
	}
	if referenceID == refereeID {
		globalData.log.Warn("source and destination are the same")
		return fault.ErrSelfReferral
	}

	referee, err := view.Account(refereeID)
	if nil != err {
		return err
	}
	if nil == referee {
		globalData.log.Warnf("referee account does not exist: %s", refereeID)
		return fault.ErrRefereeNotFound
	}

	reference, err := view.Account(referenceID)
	if nil != err {
		return err
	}
	if nil == reference {
		globalData.log.Warnf("source account does not exist: %s", referenceID)
		return fault.ErrReferenceNotFound
	}

	if !reference.Referee.IsZero() {
		globalData.log.Warnf("account already has a referee: %s", referenceID)
		return fault.ErrRefereeAlreadySet
	}
	if referee.HasReference(referenceID) {
		globalData.log.Warnf("reference already recorded: %s", referenceID)
		return fault.ErrReferenceAlreadySet
	}

	reference.Referee = refereeID
	referee.References = append(referee.References, referenceID)
	view.MarkDirty(reference)
	view.MarkDirty(referee)

	globalData.log.Infof("referral edge: %s -> %s", referenceID, refereeID)
	return nil
}
