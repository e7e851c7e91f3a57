// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledgerentry - typed records of the ledger state
//
// Every entry is identified by a 256 bit index derived from a one byte
// namespace and an optional key; the three singleton entries
// (amendments, fee settings, dividend) have fixed indices and the
// account root index is derived from the account identifier.  Entries
// pack to the same Varint64 record format as transactions for storage.
package ledgerentry

import (
	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/amendment"
)

// TagType - type code for ledger entries
type TagType uint64

// enumerate the possible entry types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as an entry type
	NullTag = TagType(iota)

	// valid entry types
	AccountRootTag = TagType(iota) // one per account
	AmendmentsTag  = TagType(iota) // singleton: enabled amendments
	FeeSettingsTag = TagType(iota) // singleton: network fee schedule
	DividendTag    = TagType(iota) // singleton: last dividend applied

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed entries are just a byte slice
type Packed []byte

// limit on graph fan-out accepted from storage
const maxReferences = 1048576

// Entry - generic ledger entry interface
type Entry interface {
	Tag() TagType
	Pack() (Packed, error)
}

// AccountRoot - the per-account state
//
// Referee is the one-time back reference of the referral graph, the
// zero account meaning this account is a root; References lists every
// account that named this one as its referee, in insertion order.
type AccountRoot struct {
	Account    account.ID   `json:"account"`        // owner of this entry
	Balance    uint64       `json:"balance,string"` // primary currency parts
	Stake      uint64       `json:"stake,string"`   // secondary currency parts
	Referee    account.ID   `json:"referee"`        // zero if no referee
	References []account.ID `json:"references"`     // insertion order
}

// Amendments - the enabled amendment identifiers
//
// insertion order is activation order
type Amendments struct {
	Amendments []amendment.ID `json:"amendments"`
}

// FeeSettings - the network fee schedule
type FeeSettings struct {
	BaseFee           uint64 `json:"baseFee,string"`    // smallest currency unit
	ReferenceFeeUnits uint32 `json:"referenceFeeUnits"` // fee units for the reference transaction
	ReserveBase       uint32 `json:"reserveBase"`       // account reserve
	ReserveIncrement  uint32 `json:"reserveIncrement"`  // reserve per owned entry
}

// Dividend - record of the last dividend distribution
//
// the totals are what was actually applied, which can be less than the
// requested budgets because of integer division and the minimum payout
// threshold
type Dividend struct {
	LedgerSequence   uint32 `json:"ledgerSequence"`
	DistributedCoins uint64 `json:"distributedCoins,string"` // primary actually issued
	DistributedStake uint64 `json:"distributedStake,string"` // stake actually applied
}

// Tag - the entry type codes
func (a *AccountRoot) Tag() TagType { return AccountRootTag }
func (a *Amendments) Tag() TagType  { return AmendmentsTag }
func (f *FeeSettings) Tag() TagType { return FeeSettingsTag }
func (d *Dividend) Tag() TagType    { return DividendTag }

// IsRoot - true if this account has no referee
func (a *AccountRoot) IsRoot() bool {
	return a.Referee.IsZero()
}

// HasReference - true if id is already in the references list
func (a *AccountRoot) HasReference(id account.ID) bool {
	for _, r := range a.References {
		if r == id {
			return true
		}
	}
	return false
}

// HasAmendment - true if id is already enabled
func (a *Amendments) HasAmendment(id amendment.ID) bool {
	for _, enabled := range a.Amendments {
		if enabled == id {
			return true
		}
	}
	return false
}
