// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/amendment"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/util"
)

// Unpack - turn a byte slice into a record
//
// must cast result to correct type
//
// e.g.
//   dividend, ok := result.(*transactionrecord.Dividend)
// or:
//   switch tx := result.(type) {
//   case *transactionrecord.Dividend:
func (record Packed) Unpack() (t Transaction, n int, e error) {

	defer func() {
		if r := recover(); nil != r {
			e = fault.ErrNotTransactionPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, 0, fault.ErrNotTransactionPack
	}

	switch TagType(recordType) {

	case AmendmentTag:

		header, headerLength, err := unpackHeader(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += headerLength

		// amendment identifier
		idBytes, idLength := unpackBytes(record[n:], amendment.IDLength)
		if 0 == idLength {
			break
		}
		n += idLength
		amendmentID, err := amendment.IDFromBytes(idBytes)
		if nil != err {
			return nil, 0, err
		}

		// signature is remainder of record
		signature, signatureLength := unpackBytes(record[n:], maxSignatureLength)
		if 0 == signatureLength {
			break
		}
		n += signatureLength
		header.Signature = signature

		r := &Amendment{
			Header:      *header,
			AmendmentID: amendmentID,
		}
		return r, n, nil

	case FeeUpdateTag:

		header, headerLength, err := unpackHeader(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += headerLength

		// the four fee schedule fields
		baseFee, baseFeeLength := util.FromVarint64(record[n:])
		if 0 == baseFeeLength {
			break
		}
		n += baseFeeLength

		referenceFeeUnits, referenceLength := util.FromVarint64(record[n:])
		if 0 == referenceLength {
			break
		}
		n += referenceLength

		reserveBase, reserveBaseLength := util.FromVarint64(record[n:])
		if 0 == reserveBaseLength {
			break
		}
		n += reserveBaseLength

		reserveIncrement, reserveIncrementLength := util.FromVarint64(record[n:])
		if 0 == reserveIncrementLength {
			break
		}
		n += reserveIncrementLength

		// signature is remainder of record
		signature, signatureLength := unpackBytes(record[n:], maxSignatureLength)
		if 0 == signatureLength {
			break
		}
		n += signatureLength
		header.Signature = signature

		r := &FeeUpdate{
			Header:            *header,
			BaseFee:           baseFee,
			ReferenceFeeUnits: uint32(referenceFeeUnits),
			ReserveBase:       uint32(reserveBase),
			ReserveIncrement:  uint32(reserveIncrement),
		}
		return r, n, nil

	case DividendTag:

		header, headerLength, err := unpackHeader(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += headerLength

		ledgerSequence, ledgerLength := util.FromVarint64(record[n:])
		if 0 == ledgerLength {
			break
		}
		n += ledgerLength

		issueRate, issueRateLength := util.FromVarint64(record[n:])
		if 0 == issueRateLength {
			break
		}
		n += issueRateLength

		stakeBudget, stakeBudgetLength := util.FromVarint64(record[n:])
		if 0 == stakeBudgetLength {
			break
		}
		n += stakeBudgetLength

		// signature is remainder of record
		signature, signatureLength := unpackBytes(record[n:], maxSignatureLength)
		if 0 == signatureLength {
			break
		}
		n += signatureLength
		header.Signature = signature

		r := &Dividend{
			Header:         *header,
			LedgerSequence: uint32(ledgerSequence),
			IssueRate:      issueRate,
			StakeBudget:    stakeBudget,
		}
		return r, n, nil

	case AddRefereeTag:

		header, headerLength, err := unpackHeader(record[n:])
		if nil != err {
			return nil, 0, err
		}
		n += headerLength

		// destination account
		destinationBytes, destinationLength := unpackBytes(record[n:], account.IDLength)
		if 0 == destinationLength {
			break
		}
		n += destinationLength
		destination, err := account.IDFromBytes(destinationBytes)
		if nil != err {
			return nil, 0, err
		}

		// signature is remainder of record
		signature, signatureLength := unpackBytes(record[n:], maxSignatureLength)
		if 0 == signatureLength {
			break
		}
		n += signatureLength
		header.Signature = signature

		r := &AddReferee{
			Header:      *header,
			Destination: destination,
		}
		return r, n, nil

	default: // also NullTag and InvalidTag
		return nil, 0, fault.ErrUnknownTransactionTag
	}

	return nil, 0, fault.ErrNotTransactionPack
}

// unpack the common header fields
//
// the signature stays empty: it is always the last field of the whole
// record, after the type specific fields
func unpackHeader(buffer Packed) (*Header, int, error) {

	n := 0

	// source account
	accountBytes, accountLength := unpackBytes(buffer[n:], account.IDLength)
	if 0 == accountLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += accountLength
	accountID, err := account.IDFromBytes(accountBytes)
	if nil != err {
		return nil, 0, err
	}

	// sequence
	sequence, sequenceLength := util.FromVarint64(buffer[n:])
	if 0 == sequenceLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += sequenceLength

	// previous transaction: zero length when absent
	previousTxBytes, previousTxLength := unpackBytes(buffer[n:], TxIDLength)
	if 0 == previousTxLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += previousTxLength
	var previousTx *TxID
	if 0 != len(previousTxBytes) {
		if TxIDLength != len(previousTxBytes) {
			return nil, 0, fault.ErrNotTransactionPack
		}
		previousTx = new(TxID)
		copy(previousTx[:], previousTxBytes)
	}

	// signing key
	signingKey, signingKeyLength := unpackBytes(buffer[n:], maxSigningKeyLength)
	if 0 == signingKeyLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += signingKeyLength

	// fee
	fee, feeLength := util.FromVarint64(buffer[n:])
	if 0 == feeLength {
		return nil, 0, fault.ErrNotTransactionPack
	}
	n += feeLength

	header := &Header{
		Account:    accountID,
		Sequence:   sequence,
		PreviousTx: previousTx,
		SigningKey: signingKey,
		Fee:        fee,
	}
	return header, n, nil
}

// unpack one length-prefixed byte field of at most maximum bytes
//
// returns the field and the total bytes consumed including the length
// prefix; a zero length field is valid and consumes just the prefix
func unpackBytes(buffer Packed, maximum int) ([]byte, int) {

	length, lengthOffset := util.FromVarint64(buffer)
	if 0 == lengthOffset || length > uint64(maximum) {
		return nil, 0
	}
	if 0 == length {
		return nil, lengthOffset
	}
	n := lengthOffset
	data := make([]byte, length)
	if len(buffer) < n+int(length) {
		return nil, 0
	}
	copy(data, buffer[n:n+int(length)])
	n += int(length)
	return data, n
}
