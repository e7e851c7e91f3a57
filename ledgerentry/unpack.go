// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerentry

import (
	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/amendment"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/util"
)

// Unpack - turn a stored byte slice back into an entry
//
// must cast result to correct type
func (record Packed) Unpack() (e Entry, err error) {

	defer func() {
		if r := recover(); nil != r {
			e = nil
			err = fault.ErrNotEntryPack
		}
	}()

	recordType, n := util.ClippedVarint64(record, 1, 8192)
	if 0 == n {
		return nil, fault.ErrNotEntryPack
	}

	switch TagType(recordType) {

	case AccountRootTag:

		accountBytes, accountLength := unpackBytes(record[n:], account.IDLength)
		if 0 == accountLength {
			break
		}
		n += accountLength
		owner, err := account.IDFromBytes(accountBytes)
		if nil != err {
			return nil, fault.ErrNotEntryPack
		}

		balance, balanceLength := util.FromVarint64(record[n:])
		if 0 == balanceLength {
			break
		}
		n += balanceLength

		stake, stakeLength := util.FromVarint64(record[n:])
		if 0 == stakeLength {
			break
		}
		n += stakeLength

		refereeBytes, refereeLength := unpackBytes(record[n:], account.IDLength)
		if 0 == refereeLength {
			break
		}
		n += refereeLength
		referee, err := account.IDFromBytes(refereeBytes)
		if nil != err {
			return nil, fault.ErrNotEntryPack
		}

		count, countLength := util.ClippedVarint64(record[n:], 0, maxReferences)
		if 0 == countLength {
			break
		}
		n += countLength

		references := make([]account.ID, 0, count)
		for i := 0; i < count; i += 1 {
			referenceBytes, referenceLength := unpackBytes(record[n:], account.IDLength)
			if 0 == referenceLength {
				return nil, fault.ErrNotEntryPack
			}
			n += referenceLength
			reference, err := account.IDFromBytes(referenceBytes)
			if nil != err {
				return nil, fault.ErrNotEntryPack
			}
			references = append(references, reference)
		}
		if 0 == len(references) {
			references = nil
		}

		return &AccountRoot{
			Account:    owner,
			Balance:    balance,
			Stake:      stake,
			Referee:    referee,
			References: references,
		}, nil

	case AmendmentsTag:

		count, countLength := util.ClippedVarint64(record[n:], 0, 8192)
		if 0 == countLength {
			break
		}
		n += countLength

		amendments := make([]amendment.ID, 0, count)
		for i := 0; i < count; i += 1 {
			idBytes, idLength := unpackBytes(record[n:], amendment.IDLength)
			if 0 == idLength {
				return nil, fault.ErrNotEntryPack
			}
			n += idLength
			id, err := amendment.IDFromBytes(idBytes)
			if nil != err {
				return nil, fault.ErrNotEntryPack
			}
			amendments = append(amendments, id)
		}
		if 0 == len(amendments) {
			amendments = nil
		}

		return &Amendments{Amendments: amendments}, nil

	case FeeSettingsTag:

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

		return &FeeSettings{
			BaseFee:           baseFee,
			ReferenceFeeUnits: uint32(referenceFeeUnits),
			ReserveBase:       uint32(reserveBase),
			ReserveIncrement:  uint32(reserveIncrement),
		}, nil

	case DividendTag:

		ledgerSequence, ledgerLength := util.FromVarint64(record[n:])
		if 0 == ledgerLength {
			break
		}
		n += ledgerLength

		distributedCoins, coinsLength := util.FromVarint64(record[n:])
		if 0 == coinsLength {
			break
		}
		n += coinsLength

		distributedStake, stakeLength := util.FromVarint64(record[n:])
		if 0 == stakeLength {
			break
		}
		n += stakeLength

		return &Dividend{
			LedgerSequence:   uint32(ledgerSequence),
			DistributedCoins: distributedCoins,
			DistributedStake: distributedStake,
		}, nil

	default:
		return nil, fault.ErrWrongEntryType
	}

	return nil, fault.ErrNotEntryPack
}

// unpack one length-prefixed byte field of at most maximum bytes
//
// returns the field and the total bytes consumed including the length
// prefix
func unpackBytes(buffer Packed, maximum int) ([]byte, int) {

	length, lengthOffset := util.FromVarint64(buffer)
	if 0 == lengthOffset || length > uint64(maximum) {
		return nil, 0
	}
	if 0 == length {
		return nil, lengthOffset
	}
	n := lengthOffset
	if len(buffer) < n+int(length) {
		return nil, 0
	}
	data := make([]byte, length)
	copy(data, buffer[n:n+int(length)])
	n += int(length)
	return data, n
}
