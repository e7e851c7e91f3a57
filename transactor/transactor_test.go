// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/amendment"
	"github.com/dyguan372/rippled/chain"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/mode"
	"github.com/dyguan372/rippled/storage"
	"github.com/dyguan372/rippled/transactionrecord"
	"github.com/dyguan372/rippled/transactor"
)

const (
	databaseFileName = "transactor-test"
	logDirectory     = "testlog"
)

// the one amendment this test build claims to implement
var supportedAmendment = amendment.ID{0xa1, 0x01}

func removeFiles() {
	os.RemoveAll(databaseFileName + "-state.leveldb")
	os.RemoveAll(logDirectory)
}

func TestMain(m *testing.M) {
	removeFiles()
	os.Mkdir(logDirectory, 0700)

	logging := logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic(fmt.Sprintf("logger initialise failed: %s", err))
	}
	if err := mode.Initialise(chain.Testing); nil != err {
		panic(fmt.Sprintf("mode initialise failed: %s", err))
	}
	if err := amendment.Initialise([]amendment.ID{supportedAmendment}); nil != err {
		panic(fmt.Sprintf("amendment initialise failed: %s", err))
	}
	if err := storage.Initialise(databaseFileName); nil != err {
		panic(fmt.Sprintf("storage initialise failed: %s", err))
	}
	if err := transactor.Initialise(); nil != err {
		panic(fmt.Sprintf("transactor initialise failed: %s", err))
	}

	rc := m.Run()

	transactor.Finalise()
	storage.Finalise()
	amendment.Finalise()
	mode.Finalise()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

// create a funded account directly in the current batch
func makeAccount(t *testing.T, id account.ID, balance uint64, stake uint64) {
	view := ledgerstate.NewView()
	entry := view.CreateAccount(id)
	entry.Balance = balance
	entry.Stake = stake
	view.MarkDirty(entry)
	assert.Nil(t, view.Apply(), "setup apply error")
}

func TestApplyBeforeInitialise(t *testing.T) {
	assert.Nil(t, transactor.Finalise(), "finalise error")
	defer func() {
		assert.Nil(t, transactor.Initialise(), "initialise error")
	}()

	err := transactor.Apply(&transactionrecord.FeeUpdate{}, transactor.NoFlags, ledgerstate.NewView())
	assert.Equal(t, fault.ErrNotInitialised, err, "wrong error")
	assert.True(t, fault.IsErrProcess(err), "wrong error class")
}

func TestAmendmentActivation(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	mode.Set(mode.Normal)

	tx := &transactionrecord.Amendment{
		AmendmentID: supportedAmendment,
	}

	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(tx, transactor.NoFlags, view), "apply error")
	assert.Nil(t, view.Apply(), "view apply error")

	assert.True(t, amendment.IsEnabled(supportedAmendment), "amendment not enabled")
	assert.True(t, mode.IsNot(mode.Blocked), "supported amendment blocked the node")

	// applying the same amendment again is a local reject
	again := ledgerstate.NewView()
	err := transactor.Apply(tx, transactor.NoFlags, again)
	assert.Equal(t, fault.ErrDuplicateAmendment, err, "wrong error")
	assert.True(t, fault.IsErrLocalReject(err), "wrong error class")
}

func TestUnsupportedAmendmentBlocksNode(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	mode.Set(mode.Normal)

	tx := &transactionrecord.Amendment{
		AmendmentID: amendment.ID{0xff, 0xee},
	}

	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(tx, transactor.NoFlags, view), "apply error")

	// the amendment still activates, but the node cannot follow it
	assert.True(t, amendment.IsEnabled(tx.AmendmentID), "amendment not enabled")
	assert.True(t, mode.Is(mode.Blocked), "node not blocked")

	mode.Set(mode.Normal)
}

func TestPseudoTransactionPreconditions(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	previous := transactionrecord.TxID{0x99}

	testData := []struct {
		name     string
		tx       transactionrecord.Transaction
		flags    transactor.Flags
		expected error
	}{
		{
			name: "non-zero source account",
			tx: &transactionrecord.FeeUpdate{
				Header: transactionrecord.Header{
					Account: account.ID{0x01},
				},
			},
			flags:    transactor.NoFlags,
			expected: fault.ErrBadSourceAccount,
		},
		{
			name:     "open ledger",
			tx:       &transactionrecord.FeeUpdate{},
			flags:    transactor.OpenLedger,
			expected: fault.ErrInvalidContext,
		},
		{
			name: "non-zero sequence",
			tx: &transactionrecord.FeeUpdate{
				Header: transactionrecord.Header{
					Sequence: 1,
				},
			},
			flags:    transactor.NoFlags,
			expected: fault.ErrBadSequence,
		},
		{
			name: "previous transaction present",
			tx: &transactionrecord.Dividend{
				Header: transactionrecord.Header{
					PreviousTx: &previous,
				},
			},
			flags:    transactor.NoFlags,
			expected: fault.ErrBadSequence,
		},
		{
			name: "signature material present",
			tx: &transactionrecord.Amendment{
				Header: transactionrecord.Header{
					Signature: account.Signature{0x01, 0x02},
				},
			},
			flags:    transactor.NoFlags,
			expected: fault.ErrBadSignature,
		},
		{
			name: "non-zero fee",
			tx: &transactionrecord.FeeUpdate{
				Header: transactionrecord.Header{
					Fee: 10,
				},
			},
			flags:    transactor.NoFlags,
			expected: fault.ErrNonZeroFee,
		},
	}

	for _, item := range testData {
		view := ledgerstate.NewView()
		err := transactor.Apply(item.tx, item.flags, view)
		assert.Equal(t, item.expected, err, item.name)
		assert.True(t, fault.IsErrMalformed(err), "%s: wrong error class", item.name)
	}
}

func TestFeeUpdateOverwrite(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	first := &transactionrecord.FeeUpdate{
		BaseFee:           100,
		ReferenceFeeUnits: 10,
		ReserveBase:       20,
		ReserveIncrement:  5,
	}

	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(first, transactor.NoFlags, view), "apply error")
	assert.Nil(t, view.Apply(), "view apply error")

	stored, err := ledgerstate.NewView().FeeSettings()
	assert.Nil(t, err, "fee settings error")
	assert.NotNil(t, stored, "fee settings missing")
	assert.Equal(t, uint64(100), stored.BaseFee, "wrong base fee")
	assert.Equal(t, uint32(10), stored.ReferenceFeeUnits, "wrong fee units")
	assert.Equal(t, uint32(20), stored.ReserveBase, "wrong reserve")
	assert.Equal(t, uint32(5), stored.ReserveIncrement, "wrong reserve increment")

	// a later update replaces the schedule wholesale
	second := &transactionrecord.FeeUpdate{
		BaseFee: 250,
	}
	view = ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(second, transactor.NoFlags, view), "apply error")
	assert.Nil(t, view.Apply(), "view apply error")

	stored, err = ledgerstate.NewView().FeeSettings()
	assert.Nil(t, err, "fee settings error")
	assert.Equal(t, uint64(250), stored.BaseFee, "wrong base fee")
	assert.Equal(t, uint32(0), stored.ReferenceFeeUnits, "fee units not overwritten")
	assert.Equal(t, uint32(0), stored.ReserveBase, "reserve not overwritten")
	assert.Equal(t, uint32(0), stored.ReserveIncrement, "reserve increment not overwritten")
}

func TestAddReferee(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	alpha := account.ID{0xa0, 0x01}
	beta := account.ID{0xb0, 0x02}
	gamma := account.ID{0xc0, 0x03}

	makeAccount(t, alpha, 1000, 0)
	makeAccount(t, beta, 500, 0)

	edge := func(source account.ID, destination account.ID) error {
		tx := &transactionrecord.AddReferee{
			Header: transactionrecord.Header{
				Account: source,
			},
			Destination: destination,
		}
		view := ledgerstate.NewView()
		err := transactor.Apply(tx, transactor.NoFlags, view)
		if nil == err {
			err = view.Apply()
		}
		return err
	}

	// rejects before the edge exists
	assert.Equal(t, fault.ErrBadSourceAccount, edge(account.ID{}, alpha), "zero source")
	assert.Equal(t, fault.ErrDestinationRequired, edge(beta, account.ID{}), "zero destination")
	assert.Equal(t, fault.ErrSelfReferral, edge(alpha, alpha), "self referral")
	assert.Equal(t, fault.ErrRefereeNotFound, edge(beta, gamma), "missing referee")
	assert.Equal(t, fault.ErrReferenceNotFound, edge(gamma, alpha), "missing source")

	// a missing referee may exist later, a missing source never applies
	assert.True(t, fault.IsErrLocalReject(fault.ErrRefereeNotFound), "wrong class")
	assert.True(t, fault.IsErrRetryable(fault.ErrReferenceNotFound), "wrong class")

	// the edge applies once
	assert.Nil(t, edge(beta, alpha), "edge apply error")

	view := ledgerstate.NewView()
	storedBeta, err := view.Account(beta)
	assert.Nil(t, err, "account error")
	assert.Equal(t, alpha, storedBeta.Referee, "referee not set")
	storedAlpha, err := view.Account(alpha)
	assert.Nil(t, err, "account error")
	assert.True(t, storedAlpha.HasReference(beta), "reference not recorded")

	// and never again
	assert.Equal(t, fault.ErrRefereeAlreadySet, edge(beta, alpha), "edge applied twice")

	// an account with a referee cannot pick another one
	makeAccount(t, gamma, 100, 0)
	assert.Equal(t, fault.ErrRefereeAlreadySet, edge(beta, gamma), "second referee accepted")
}

func TestAddRefereeDuplicateReference(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	alpha := account.ID{0xa2, 0x01}
	beta := account.ID{0xb2, 0x02}

	// a half edge: the referee already lists the source
	setup := ledgerstate.NewView()
	refereeEntry := setup.CreateAccount(alpha)
	refereeEntry.References = append(refereeEntry.References, beta)
	setup.MarkDirty(refereeEntry)
	setup.MarkDirty(setup.CreateAccount(beta))
	assert.Nil(t, setup.Apply(), "setup apply error")

	tx := &transactionrecord.AddReferee{
		Header: transactionrecord.Header{
			Account: beta,
		},
		Destination: alpha,
	}
	view := ledgerstate.NewView()
	err := transactor.Apply(tx, transactor.NoFlags, view)
	assert.Equal(t, fault.ErrReferenceAlreadySet, err, "wrong error")
	assert.True(t, fault.IsErrLocalReject(err), "wrong error class")
}

func TestAddRefereeOpenLedger(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	alpha := account.ID{0xa1, 0x01}
	beta := account.ID{0xb1, 0x02}
	makeAccount(t, alpha, 100, 0)
	makeAccount(t, beta, 100, 0)

	// a signed transaction is fine against the open ledger
	tx := &transactionrecord.AddReferee{
		Header: transactionrecord.Header{
			Account: beta,
		},
		Destination: alpha,
	}
	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(tx, transactor.OpenLedger, view), "apply error")
}
