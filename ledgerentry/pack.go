// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerentry

import (
	"github.com/dyguan372/rippled/util"
)

// pack AccountRoot
//
// Pack Varint64(tag) followed by fields in order as struct above, the
// references list prefixed by its count
func (a *AccountRoot) Pack() (Packed, error) {

	message := Packed(util.ToVarint64(uint64(AccountRootTag)))
	message = appendBytes(message, a.Account.Bytes())
	message = appendUint64(message, a.Balance)
	message = appendUint64(message, a.Stake)
	message = appendBytes(message, a.Referee.Bytes())
	message = appendUint64(message, uint64(len(a.References)))
	for _, reference := range a.References {
		message = appendBytes(message, reference.Bytes())
	}
	return message, nil
}

// pack Amendments
//
// Pack Varint64(tag) followed by the count prefixed identifier list in
// activation order
func (a *Amendments) Pack() (Packed, error) {

	message := Packed(util.ToVarint64(uint64(AmendmentsTag)))
	message = appendUint64(message, uint64(len(a.Amendments)))
	for _, id := range a.Amendments {
		message = appendBytes(message, id.Bytes())
	}
	return message, nil
}

// pack FeeSettings
func (f *FeeSettings) Pack() (Packed, error) {

	message := Packed(util.ToVarint64(uint64(FeeSettingsTag)))
	message = appendUint64(message, f.BaseFee)
	message = appendUint64(message, uint64(f.ReferenceFeeUnits))
	message = appendUint64(message, uint64(f.ReserveBase))
	message = appendUint64(message, uint64(f.ReserveIncrement))
	return message, nil
}

// pack Dividend
func (d *Dividend) Pack() (Packed, error) {

	message := Packed(util.ToVarint64(uint64(DividendTag)))
	message = appendUint64(message, uint64(d.LedgerSequence))
	message = appendUint64(message, d.DistributedCoins)
	message = appendUint64(message, d.DistributedStake)
	return message, nil
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
