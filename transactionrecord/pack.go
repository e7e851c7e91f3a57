// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/util"
)

// pack Amendment
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (a *Amendment) Pack() (Packed, error) {

	message, err := appendHeader(util.ToVarint64(uint64(AmendmentTag)), &a.Header)
	if nil != err {
		return nil, err
	}

	message = appendBytes(message, a.AmendmentID.Bytes())

	// signature last
	return appendBytes(message, a.Signature), nil
}

// pack FeeUpdate
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (f *FeeUpdate) Pack() (Packed, error) {

	message, err := appendHeader(util.ToVarint64(uint64(FeeUpdateTag)), &f.Header)
	if nil != err {
		return nil, err
	}

	message = appendUint64(message, f.BaseFee)
	message = appendUint64(message, uint64(f.ReferenceFeeUnits))
	message = appendUint64(message, uint64(f.ReserveBase))
	message = appendUint64(message, uint64(f.ReserveIncrement))

	// signature last
	return appendBytes(message, f.Signature), nil
}

// pack Dividend
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (d *Dividend) Pack() (Packed, error) {

	message, err := appendHeader(util.ToVarint64(uint64(DividendTag)), &d.Header)
	if nil != err {
		return nil, err
	}

	message = appendUint64(message, uint64(d.LedgerSequence))
	message = appendUint64(message, d.IssueRate)
	message = appendUint64(message, d.StakeBudget)

	// signature last
	return appendBytes(message, d.Signature), nil
}

// pack AddReferee
//
// Pack Varint64(tag) followed by fields in order as struct above with
// signature last
func (a *AddReferee) Pack() (Packed, error) {

	message, err := appendHeader(util.ToVarint64(uint64(AddRefereeTag)), &a.Header)
	if nil != err {
		return nil, err
	}

	message = appendBytes(message, a.Destination.Bytes())

	// signature last
	return appendBytes(message, a.Signature), nil
}

// append the common header fields to a buffer
//
// the previous transaction identifier packs as a zero length field
// when absent
func appendHeader(buffer Packed, header *Header) (Packed, error) {
	if len(header.SigningKey) > maxSigningKeyLength {
		return nil, fault.ErrBadSignature
	}
	if len(header.Signature) > maxSignatureLength {
		return nil, fault.ErrSignatureTooLong
	}

	buffer = appendBytes(buffer, header.Account.Bytes())
	buffer = appendUint64(buffer, header.Sequence)
	if nil == header.PreviousTx {
		buffer = appendBytes(buffer, nil)
	} else {
		buffer = appendBytes(buffer, header.PreviousTx[:])
	}
	buffer = appendBytes(buffer, header.SigningKey)
	buffer = appendUint64(buffer, header.Fee)
	return buffer, nil
}

// append a bytes to a buffer
//
// the field is prefixed by Varint64(length)
func appendBytes(buffer Packed, data []byte) Packed {
	l := util.ToVarint64(uint64(len(data)))
	buffer = append(buffer, l...)
	buffer = append(buffer, data...)
	return buffer
}

// append a Varint64 to buffer
func appendUint64(buffer Packed, value uint64) Packed {
	valueBytes := util.ToVarint64(value)
	buffer = append(buffer, valueBytes...)
	return buffer
}
