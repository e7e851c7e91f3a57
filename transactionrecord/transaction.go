// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactionrecord - privileged transaction records
//
// The four record types applied at ledger close: the three
// pseudo-transactions (Amendment, FeeUpdate, Dividend) injected by the
// consensus round without a signing account, and AddReferee which is
// initiated by a real account.  Each record has a canonical packed
// form: Varint64 tag followed by the fields in struct order with the
// signature last.
package transactionrecord

import (
	"golang.org/x/crypto/sha3"

	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/amendment"
)

// TagType - type code for transactions
type TagType uint64

// enumerate the possible transaction record types
// this is encoded a Varint64 at start of "Packed"
const (
	// null marks beginning of list - not used as a record type
	NullTag = TagType(iota)

	// valid record types
	AmendmentTag  = TagType(iota) // activate a protocol amendment
	FeeUpdateTag  = TagType(iota) // overwrite the fee schedule
	DividendTag   = TagType(iota) // distribute the periodic dividend
	AddRefereeTag = TagType(iota) // create a referral edge

	// this item must be last
	InvalidTag = TagType(iota)
)

// Packed - packed records are just a byte slice
type Packed []byte

// byte sizes for various fields
const (
	maxSigningKeyLength = 64
	maxSignatureLength  = 1024
)

// TxIDLength - number of bytes in a transaction identifier
const TxIDLength = 32

// TxID - transaction identifier, the SHA3-256 digest of the packed record
type TxID [TxIDLength]byte

// Header - fields common to all privileged transaction records
//
// for the pseudo-transactions the account is the null account, the
// sequence is zero, there is no previous transaction, the signing key
// and signature are empty and the fee is zero; the pipeline enforces
// all of this
type Header struct {
	Account    account.ID        `json:"account"`         // null for pseudo-transactions
	Sequence   uint64            `json:"sequence"`        // 0 for pseudo-transactions
	PreviousTx *TxID             `json:"previousTx"`      // nil if absent
	SigningKey []byte            `json:"signingKey"`      // hex
	Fee        uint64            `json:"fee,string"`      // smallest currency unit
	Signature  account.Signature `json:"signature"`       // hex
}

// Head - access the common header fields
func (h *Header) Head() *Header {
	return h
}

// Transaction - generic transaction interface
type Transaction interface {
	Head() *Header
	Tag() TagType
	Pack() (Packed, error)
}

// Amendment - activate a protocol feature on the ledger
type Amendment struct {
	Header
	AmendmentID amendment.ID `json:"amendmentId"` // feature to activate
}

// FeeUpdate - wholesale overwrite of the network fee schedule
type FeeUpdate struct {
	Header
	BaseFee           uint64 `json:"baseFee,string"`    // smallest currency unit
	ReferenceFeeUnits uint32 `json:"referenceFeeUnits"` // fee units for the reference transaction
	ReserveBase       uint32 `json:"reserveBase"`       // account reserve
	ReserveIncrement  uint32 `json:"reserveIncrement"`  // reserve per owned entry
}

// Dividend - distribute the periodic dividend over all accounts
type Dividend struct {
	Header
	LedgerSequence uint32 `json:"ledgerSequence"`      // ledger this dividend is computed for
	IssueRate      uint64 `json:"issueRate"`           // primary issued per stake part held
	StakeBudget    uint64 `json:"stakeBudget,string"`  // stake parts to distribute
}

// AddReferee - create the one-time referral edge account → referee
type AddReferee struct {
	Header
	Destination account.ID `json:"destination"` // the referee account
}

// Tag - the record type codes
func (a *Amendment) Tag() TagType  { return AmendmentTag }
func (f *FeeUpdate) Tag() TagType  { return FeeUpdateTag }
func (d *Dividend) Tag() TagType   { return DividendTag }
func (a *AddReferee) Tag() TagType { return AddRefereeTag }

// MakeTxID - create the transaction identifier of a packed record
func (record Packed) MakeTxID() TxID {
	return TxID(sha3.Sum256(record))
}

// Bytes - for consistency
func (record Packed) Bytes() []byte {
	return record
}
