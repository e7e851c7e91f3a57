// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledgerstate - copy-on-write entry access for one apply call
//
// A View is created for a single transaction apply and dropped
// afterwards.  Reading an entry materialises a mutable handle that is
// cached for the rest of the call; Create inserts a new entry;
// MarkDirty schedules a handle for inclusion in the resulting ledger.
// Apply packs every dirty entry into the storage batch - a view that
// is dropped without Apply leaves no trace, which is what makes a
// failed transaction a clean no-op.
package ledgerstate

import (
	"github.com/dyguan372/rippled/account"
	"github.com/dyguan372/rippled/fault"
	"github.com/dyguan372/rippled/ledgerentry"
	"github.com/dyguan372/rippled/storage"
)

// View - entry handles scoped to one transaction apply
type View struct {
	entries map[ledgerentry.Index]ledgerentry.Entry
	indices map[ledgerentry.Entry]ledgerentry.Index
	dirty   map[ledgerentry.Index]struct{}
}

// NewView - create an empty view over the current state
func NewView() *View {
	return &View{
		entries: make(map[ledgerentry.Index]ledgerentry.Entry),
		indices: make(map[ledgerentry.Entry]ledgerentry.Index),
		dirty:   make(map[ledgerentry.Index]struct{}),
	}
}

// materialise an entry from storage, caching the handle
//
// returns nil with no error if the entry does not exist
func (v *View) fetch(pool *storage.PoolHandle, index ledgerentry.Index, tag ledgerentry.TagType) (ledgerentry.Entry, error) {

	if entry, ok := v.entries[index]; ok {
		if tag != entry.Tag() {
			return nil, fault.ErrWrongEntryType
		}
		return entry, nil
	}

	packed := pool.Get(index.Bytes())
	if nil == packed {
		return nil, nil
	}

	entry, err := ledgerentry.Packed(packed).Unpack()
	if nil != err {
		return nil, err
	}
	if tag != entry.Tag() {
		return nil, fault.ErrWrongEntryType
	}

	v.entries[index] = entry
	v.indices[entry] = index
	return entry, nil
}

// cache a newly created entry handle
func (v *View) insert(index ledgerentry.Index, entry ledgerentry.Entry) {
	v.entries[index] = entry
	v.indices[entry] = index
}

// Account - the account root for an identifier, nil if absent
func (v *View) Account(id account.ID) (*ledgerentry.AccountRoot, error) {
	entry, err := v.fetch(storage.Pool.AccountRoots, ledgerentry.AccountRootIndex(id), ledgerentry.AccountRootTag)
	if nil != err || nil == entry {
		return nil, err
	}
	return entry.(*ledgerentry.AccountRoot), nil
}

// CreateAccount - insert a new empty account root
func (v *View) CreateAccount(id account.ID) *ledgerentry.AccountRoot {
	entry := &ledgerentry.AccountRoot{Account: id}
	v.insert(ledgerentry.AccountRootIndex(id), entry)
	return entry
}

// Amendments - the amendments singleton, nil if absent
func (v *View) Amendments() (*ledgerentry.Amendments, error) {
	entry, err := v.fetch(storage.Pool.Amendments, ledgerentry.AmendmentsIndex(), ledgerentry.AmendmentsTag)
	if nil != err || nil == entry {
		return nil, err
	}
	return entry.(*ledgerentry.Amendments), nil
}

// CreateAmendments - insert the amendments singleton
func (v *View) CreateAmendments() *ledgerentry.Amendments {
	entry := &ledgerentry.Amendments{}
	v.insert(ledgerentry.AmendmentsIndex(), entry)
	return entry
}

// FeeSettings - the fee settings singleton, nil if absent
func (v *View) FeeSettings() (*ledgerentry.FeeSettings, error) {
	entry, err := v.fetch(storage.Pool.FeeSettings, ledgerentry.FeeSettingsIndex(), ledgerentry.FeeSettingsTag)
	if nil != err || nil == entry {
		return nil, err
	}
	return entry.(*ledgerentry.FeeSettings), nil
}

// CreateFeeSettings - insert the fee settings singleton
func (v *View) CreateFeeSettings() *ledgerentry.FeeSettings {
	entry := &ledgerentry.FeeSettings{}
	v.insert(ledgerentry.FeeSettingsIndex(), entry)
	return entry
}

// Dividend - the dividend singleton, nil if absent
func (v *View) Dividend() (*ledgerentry.Dividend, error) {
	entry, err := v.fetch(storage.Pool.Dividend, ledgerentry.DividendIndex(), ledgerentry.DividendTag)
	if nil != err || nil == entry {
		return nil, err
	}
	return entry.(*ledgerentry.Dividend), nil
}

// CreateDividend - insert the dividend singleton
func (v *View) CreateDividend() *ledgerentry.Dividend {
	entry := &ledgerentry.Dividend{}
	v.insert(ledgerentry.DividendIndex(), entry)
	return entry
}

// MarkDirty - schedule a handle for the resulting ledger
//
// the handle must have come from this view
func (v *View) MarkDirty(entry ledgerentry.Entry) {
	index, ok := v.indices[entry]
	if !ok {
		// a handle from another view is a programming error
		return
	}
	v.dirty[index] = struct{}{}
}

// VisitAccounts - yield every account root in ascending index order
//
// handles already materialised by this view are yielded in place of
// the stored record so earlier mutations within the call are seen;
// return false from the callback to stop early
func (v *View) VisitAccounts(fn func(*ledgerentry.AccountRoot) bool) error {

	var visitError error
	storage.Pool.AccountRoots.Iterate(func(key []byte, value []byte) bool {

		var index ledgerentry.Index
		if ledgerentry.IndexLength != len(key) {
			visitError = fault.ErrNotEntryPack
			return false
		}
		copy(index[:], key)

		if cached, ok := v.entries[index]; ok {
			if accountRoot, ok := cached.(*ledgerentry.AccountRoot); ok {
				return fn(accountRoot)
			}
			visitError = fault.ErrWrongEntryType
			return false
		}

		entry, err := ledgerentry.Packed(value).Unpack()
		if nil != err {
			visitError = err
			return false
		}
		accountRoot, ok := entry.(*ledgerentry.AccountRoot)
		if !ok {
			visitError = fault.ErrWrongEntryType
			return false
		}

		v.entries[index] = accountRoot
		v.indices[accountRoot] = index
		return fn(accountRoot)
	})

	return visitError
}

// Apply - pack every dirty entry into the storage batch
//
// called once, after the transaction outcome is success
func (v *View) Apply() error {

	for index := range v.dirty {
		entry := v.entries[index]

		packed, err := entry.Pack()
		if nil != err {
			return err
		}

		switch entry.Tag() {
		case ledgerentry.AccountRootTag:
			storage.Pool.AccountRoots.Put(index.Bytes(), packed)
		case ledgerentry.AmendmentsTag:
			storage.Pool.Amendments.Put(index.Bytes(), packed)
		case ledgerentry.FeeSettingsTag:
			storage.Pool.FeeSettings.Put(index.Bytes(), packed)
		case ledgerentry.DividendTag:
			storage.Pool.Dividend.Put(index.Bytes(), packed)
		default:
			return fault.ErrWrongEntryType
		}
	}

	return nil
}
