// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package amendment

import (
	"encoding/hex"

	"github.com/dyguan372/rippled/fault"
)

// IDLength - number of bytes in an amendment identifier
const IDLength = 32

// ID - the 256 bit amendment identifier
//
// represented as big endian hex text for printing and JSON encoding
type ID [IDLength]byte

// IDFromBytes - convert a byte slice to an amendment identifier
func IDFromBytes(buffer []byte) (ID, error) {
	var id ID
	if IDLength != len(buffer) {
		return id, fault.ErrNotTransactionPack
	}
	copy(id[:], buffer)
	return id, nil
}

// IDFromHexString - convert a hex string to an amendment identifier
func IDFromHexString(s string) (ID, error) {
	var id ID
	if len(s) != hex.EncodedLen(IDLength) {
		return id, fault.ErrNotTransactionPack
	}
	_, err := hex.Decode(id[:], []byte(s))
	return id, err
}

// IsZero - true if identifier is all zero
func (id ID) IsZero() bool {
	return id == ID{}
}

// Bytes - byte slice for packing into records
func (id ID) Bytes() []byte {
	return id[:]
}

// String - convert a binary identifier to hex string for use by the fmt package (for %s)
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText - convert identifier to hex text
func (id ID) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(IDLength)
	buffer := make([]byte, size)
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into an identifier
func (id *ID) UnmarshalText(s []byte) error {
	if len(s) != hex.EncodedLen(IDLength) {
		return fault.ErrNotTransactionPack
	}
	_, err := hex.Decode(id[:], s)
	return err
}
