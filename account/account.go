// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - account identifiers
//
// An account is named by a fixed 160 bit identifier; the zero value is
// reserved for the null account used as the source of all
// pseudo-transactions and as the "no referee" marker.
package account

import (
	"encoding/hex"

	"github.com/dyguan372/rippled/fault"
)

// IDLength - number of bytes in an account identifier
const IDLength = 20

// ID - the 160 bit account identifier
//
// represented as big endian hex text for printing and JSON encoding
type ID [IDLength]byte

// Signature - raw signature bytes
//
// pseudo-transactions carry an empty signature; verification of real
// signatures happens outside this core
type Signature []byte

// IDFromBytes - convert a byte slice to an account identifier
func IDFromBytes(buffer []byte) (ID, error) {
	var id ID
	if IDLength != len(buffer) {
		return id, fault.ErrNotTransactionPack
	}
	copy(id[:], buffer)
	return id, nil
}

// IsZero - true if this is the null account
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

// GoString - convert a binary identifier to hex string for use by the fmt package (for %#v)
func (id ID) GoString() string {
	return "<account:" + hex.EncodeToString(id[:]) + ">"
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
	byteCount, err := hex.Decode(id[:], s)
	if nil != err {
		return err
	}
	if IDLength != byteCount {
		return fault.ErrNotTransactionPack
	}
	return nil
}
