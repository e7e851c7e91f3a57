// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledgerentry

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/dyguan372/rippled/account"
)

// IndexLength - number of bytes in an entry index
const IndexLength = 32

// Index - the derived 256 bit entry identifier
type Index [IndexLength]byte

// namespace bytes for index derivation
const (
	accountRootSpace = byte('R')
	amendmentsSpace  = byte('A')
	feeSettingsSpace = byte('F')
	dividendSpace    = byte('D')
)

// NewIndex - derive an index from a namespace and key
func NewIndex(namespace byte, key []byte) Index {
	buffer := make([]byte, 1, 1+len(key))
	buffer[0] = namespace
	buffer = append(buffer, key...)
	return Index(sha3.Sum256(buffer))
}

// AccountRootIndex - the index of an account root entry
func AccountRootIndex(id account.ID) Index {
	return NewIndex(accountRootSpace, id.Bytes())
}

// AmendmentsIndex - the fixed index of the amendments singleton
func AmendmentsIndex() Index {
	return NewIndex(amendmentsSpace, nil)
}

// FeeSettingsIndex - the fixed index of the fee settings singleton
func FeeSettingsIndex() Index {
	return NewIndex(feeSettingsSpace, nil)
}

// DividendIndex - the fixed index of the dividend singleton
func DividendIndex() Index {
	return NewIndex(dividendSpace, nil)
}

// Bytes - byte slice for use as a storage key
func (index Index) Bytes() []byte {
	return index[:]
}

// String - convert a binary index to hex string for use by the fmt package (for %s)
func (index Index) String() string {
	return hex.EncodeToString(index[:])
}
