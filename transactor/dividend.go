// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactor

import (
	"bytes"
	"math/bits"
	"sort"

	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/ledgerentry"
	"github.com/dyguan372/rippled/ledgerstate"
	"github.com/dyguan372/rippled/transactionrecord"
)

// MinimumPayoutParts - smallest stake payout that is actually applied
//
// one whole stake unit in indivisible parts; a computed share below
// this is forfeited, not carried forward
const MinimumPayoutParts = 1000000

// accumulated referral weight of one account
type referralPower struct {
	power    uint64 // stake of every account below, direct and indirect
	maxPower uint64 // heaviest single branch seen below
}

// distribute a stake budget over all accounts by referral rank and
// branch weight, and issue new coins proportional to held stake
func applyDividend(tx *transactionrecord.Dividend, view *ledgerstate.View) error {
	log := globalData.log

	dividend, err := view.Dividend()
	if nil != err {
		return err
	}
	if nil == dividend {
		dividend = view.CreateDividend()
	}

	// discovery pass: every account root, plus the forest roots
	accounts := make([]*ledgerentry.AccountRoot, 0, 256)
	roots := make([]*ledgerentry.AccountRoot, 0, 16)
	byID := make(map[account.ID]*ledgerentry.AccountRoot)

	err = view.VisitAccounts(func(a *ledgerentry.AccountRoot) bool {
		accounts = append(accounts, a)
		byID[a.Account] = a
		if a.IsRoot() {
			roots = append(roots, a)
		}
		return true
	})
	if nil != err {
		return err
	}

	log.Infof("dividend: ledger: %d  accounts: %d  budget: %d  rate: %d",
		tx.LedgerSequence, len(accounts), tx.StakeBudget, tx.IssueRate)

	power := make(map[account.ID]referralPower)
	for _, root := range roots {
		computePower(root, byID, power)
	}

	// rank ascending by stake, identifier as the tie break so the
	// ordering is a total one
	sort.Slice(accounts, func(i int, j int) bool {
		if accounts[i].Stake != accounts[j].Stake {
			return accounts[i].Stake < accounts[j].Stake
		}
		return bytes.Compare(accounts[i].Account[:], accounts[j].Account[:]) < 0
	})

	ranks := make([]uint64, len(accounts))
	sumRanks := uint64(0)
	sumMaxPower := uint64(0)
	rank := uint64(0)
	for i, a := range accounts {
		if 0 == i || a.Stake > accounts[i-1].Stake {
			rank += 1
		}
		ranks[i] = rank
		sumRanks += rank

		p := power[a.Account]
		sumMaxPower += p.maxPower

		log.Debugf("account: %s  stake: %d  rank: %d  power: %d  max: %d  score: %d",
			a.Account, a.Stake, rank, p.power, p.maxPower,
			p.power-p.maxPower+icbrt(p.maxPower))
	}

	byRank := tx.StakeBudget / 2
	byPower := tx.StakeBudget - byRank

	actualStake := uint64(0)
	actualCoins := uint64(0)

	for i, a := range accounts {

		payout := uint64(0)
		if 0 != sumRanks {
			payout += mulDiv(byRank, ranks[i], sumRanks)
		}
		if 0 != sumMaxPower {
			payout += mulDiv(byPower, power[a.Account].maxPower, sumMaxPower)
		}

		coins := a.Stake * tx.IssueRate

		if payout >= MinimumPayoutParts {
			a.Stake += payout
			actualStake += payout
		}
		a.Balance += coins
		actualCoins += coins

		view.MarkDirty(a)
	}

	// record what was actually paid, not the nominal budget
	dividend.LedgerSequence = tx.LedgerSequence
	dividend.DistributedCoins = actualCoins
	dividend.DistributedStake = actualStake
	view.MarkDirty(dividend)

	log.Infof("dividend: distributed stake: %d  coins: %d", actualStake, actualCoins)
	return nil
}

// fold the stake of a referral tree into per-account totals
//
// iterative post-order walk with a memo, so shared work across roots
// is done once and deep chains cannot exhaust the stack; an account
// whose referee chain loops back on itself is skipped rather than
// recursed into
func computePower(root *ledgerentry.AccountRoot, byID map[account.ID]*ledgerentry.AccountRoot, power map[account.ID]referralPower) {

	type frame struct {
		entry *ledgerentry.AccountRoot
		next  int
	}

	if _, done := power[root.Account]; done {
		return
	}

	visiting := map[account.ID]struct{}{
		root.Account: {},
	}
	stack := []frame{{entry: root}}

depth:
	for 0 != len(stack) {
		top := &stack[len(stack)-1]

		for top.next < len(top.entry.References) {
			childID := top.entry.References[top.next]
			top.next += 1

			if _, done := power[childID]; done {
				continue
			}
			child, ok := byID[childID]
			if !ok {
				// dangling edge: contributes nothing
				globalData.log.Warnf("referenced account missing: %s", childID)
				power[childID] = referralPower{}
				continue
			}
			if _, open := visiting[childID]; open {
				globalData.log.Errorf("referral cycle through account: %s", childID)
				continue
			}

			visiting[childID] = struct{}{}
			stack = append(stack, frame{entry: child})
			continue depth
		}

		// all children resolved
		total := referralPower{}
		for _, childID := range top.entry.References {
			child, ok := byID[childID]
			if !ok {
				continue
			}
			p := power[childID]
			total.power += p.power + child.Stake
			if p.maxPower > total.maxPower {
				total.maxPower = p.maxPower
			}
			if child.Stake > total.maxPower {
				total.maxPower = child.Stake
			}
		}
		power[top.entry.Account] = total
		delete(visiting, top.entry.Account)
		stack = stack[:len(stack)-1]
	}
}

// ⌊a×b÷c⌋ without intermediate overflow; requires b ≤ c and c > 0
func mulDiv(a uint64, b uint64, c uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	q, _ := bits.Div64(hi, lo, c)
	return q
}

// integer cube root: the largest r with r³ ≤ n
func icbrt(n uint64) uint64 {
	r := uint64(0)
	for s := 63; s >= 0; s -= 3 {
		r <<= 1
		b := 3*r*(r+1) + 1
		if n>>uint(s) >= b {
			n -= b << uint(s)
			r += 1
		}
	}
	return r
}
