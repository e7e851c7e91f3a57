// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/storage"
	"github.com/dyguan372/rippled/transactionrecord"
	"github.com/dyguan372/rippled/transactor"
)

// run one dividend over the current batch state
func runDividend(t *testing.T, ledger uint32, rate uint64, budget uint64) {
	tx := &transactionrecord.Dividend{
		LedgerSequence: ledger,
		IssueRate:      rate,
		StakeBudget:    budget,
	}
	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(tx, transactor.NoFlags, view), "dividend apply error")
	assert.Nil(t, view.Apply(), "view apply error")
}

func readStake(t *testing.T, id account.ID) (uint64, uint64) {
	entry, err := ledgerstate.NewView().Account(id)
	assert.Nil(t, err, "account error")
	assert.NotNil(t, entry, "account missing")
	if nil == entry {
		return 0, 0
	}
	return entry.Balance, entry.Stake
}

func TestDividendEmptyLedger(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	runDividend(t, 7, 3, 1000000000)

	dividend, err := ledgerstate.NewView().Dividend()
	assert.Nil(t, err, "dividend error")
	assert.NotNil(t, dividend, "dividend singleton missing")
	assert.Equal(t, uint32(7), dividend.LedgerSequence, "wrong ledger sequence")
	assert.Equal(t, uint64(0), dividend.DistributedStake, "stake paid with no accounts")
	assert.Equal(t, uint64(0), dividend.DistributedCoins, "coins paid with no accounts")
}

func TestDividendDenseRanking(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	// equal stakes share a rank and the next distinct stake takes the
	// following rank: stakes 10,10,20,30,30 rank as 1,1,2,3,3
	stakes := []uint64{10, 10, 20, 30, 30}
	ids := make([]account.ID, len(stakes))
	for i, stake := range stakes {
		ids[i] = account.ID{0xd0, byte(i + 1)}
		makeAccount(t, ids[i], 0, stake)
	}

	// isolated accounts have no referral power, so only the rank half
	// of the budget pays out
	runDividend(t, 8, 0, 20000000)

	// sum of ranks is 10, rank half is 10000000
	expected := []uint64{1000000, 1000000, 2000000, 3000000, 3000000}
	total := uint64(0)
	for i, id := range ids {
		_, stake := readStake(t, id)
		assert.Equal(t, stakes[i]+expected[i], stake, "wrong stake for account %d", i)
		total += expected[i]
	}

	dividend, err := ledgerstate.NewView().Dividend()
	assert.Nil(t, err, "dividend error")
	assert.Equal(t, total, dividend.DistributedStake, "wrong distributed stake")
	assert.Equal(t, uint64(0), dividend.DistributedCoins, "coins paid at zero rate")
}

func TestDividendBelowMinimumForfeited(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	id := account.ID{0xd1, 0x01}
	makeAccount(t, id, 0, 10)

	// the single account gets the whole rank half, but 500000 parts is
	// below the minimum payout so the stake share is forfeited; the
	// coin issue still applies
	runDividend(t, 9, 2, 1000000)

	balance, stake := readStake(t, id)
	assert.Equal(t, uint64(10), stake, "sub-minimum payout applied")
	assert.Equal(t, uint64(20), balance, "coin issue missing")

	dividend, err := ledgerstate.NewView().Dividend()
	assert.Nil(t, err, "dividend error")
	assert.Equal(t, uint64(0), dividend.DistributedStake, "forfeited payout recorded")
	assert.Equal(t, uint64(20), dividend.DistributedCoins, "wrong distributed coins")
}

func TestDividendReferralChain(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	// gamma refers to beta refers to alpha
	alpha := account.ID{0xd2, 0x01}
	beta := account.ID{0xd2, 0x02}
	gamma := account.ID{0xd2, 0x03}

	setup := ledgerstate.NewView()

	a := setup.CreateAccount(alpha)
	a.Stake = 0
	a.References = []account.ID{beta}
	setup.MarkDirty(a)

	b := setup.CreateAccount(beta)
	b.Stake = 30
	b.Referee = alpha
	b.References = []account.ID{gamma}
	setup.MarkDirty(b)

	c := setup.CreateAccount(gamma)
	c.Stake = 50
	c.Referee = beta
	setup.MarkDirty(c)

	assert.Nil(t, setup.Apply(), "setup apply error")

	// maxPower: alpha 50, beta 50, gamma 0; the power half of the
	// budget splits evenly between alpha and beta
	runDividend(t, 10, 0, 4000000)

	_, stakeAlpha := readStake(t, alpha)
	_, stakeBeta := readStake(t, beta)
	_, stakeGamma := readStake(t, gamma)

	// rank half 2000000 over ranks 1,2,3 (sum 6), power half 2000000
	// over maxPower 50,50,0 (sum 100)
	assert.Equal(t, uint64(0+333333+1000000), stakeAlpha, "wrong alpha stake")
	assert.Equal(t, uint64(30+666666+1000000), stakeBeta, "wrong beta stake")
	assert.Equal(t, uint64(50+1000000), stakeGamma, "wrong gamma stake")

	// rounding loss is forfeited, never overpaid
	dividend, err := ledgerstate.NewView().Dividend()
	assert.Nil(t, err, "dividend error")
	assert.Equal(t, uint64(3999999), dividend.DistributedStake, "wrong distributed stake")
}

func TestDividendEndToEnd(t *testing.T) {
	assert.Nil(t, storage.Begin(), "begin error")
	defer storage.Discard()

	// alpha holds 1000 stake and referred beta holding 100
	alpha := account.ID{0xd3, 0x01}
	beta := account.ID{0xd3, 0x02}
	makeAccount(t, alpha, 0, 1000)
	makeAccount(t, beta, 0, 100)

	tx := &transactionrecord.AddReferee{
		Header: transactionrecord.Header{
			Account: beta,
		},
		Destination: alpha,
	}
	view := ledgerstate.NewView()
	assert.Nil(t, transactor.Apply(tx, transactor.NoFlags, view), "edge apply error")
	assert.Nil(t, view.Apply(), "view apply error")

	runDividend(t, 11, 2, 6000000)

	// ranks: beta 1, alpha 2 (sum 3); maxPower: alpha 100, beta 0
	balanceAlpha, stakeAlpha := readStake(t, alpha)
	balanceBeta, stakeBeta := readStake(t, beta)

	assert.Equal(t, uint64(1000+2000000+3000000), stakeAlpha, "wrong alpha stake")
	assert.Equal(t, uint64(100+1000000), stakeBeta, "wrong beta stake")
	assert.Equal(t, uint64(2000), balanceAlpha, "wrong alpha balance")
	assert.Equal(t, uint64(200), balanceBeta, "wrong beta balance")

	dividend, err := ledgerstate.NewView().Dividend()
	assert.Nil(t, err, "dividend error")
	assert.Equal(t, uint32(11), dividend.LedgerSequence, "wrong ledger sequence")
	assert.Equal(t, uint64(6000000), dividend.DistributedStake, "wrong distributed stake")
	assert.Equal(t, uint64(2200), dividend.DistributedCoins, "wrong distributed coins")
}
