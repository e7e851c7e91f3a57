// SPDX-License-Identifier: ISC
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
//
// the three transaction outcome classes are Malformed, LocalReject and
// Retryable, with success represented by a nil error; ProcessError is
// for internal faults that are never a transaction outcome
type MalformedError GenericError
type LocalRejectError GenericError
type RetryableError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised   = ProcessError("already initialised")
	ErrInvalidChain         = ProcessError("invalid chain")
	ErrInvalidLoggerChannel = ProcessError("invalid logger channel")
	ErrNotEntryPack         = ProcessError("not entry pack")
	ErrNotInitialised       = ProcessError("not initialised")
	ErrWrongEntryType       = ProcessError("wrong entry type")
)

// transaction outcome errors - keep in alphabetic order
var (
	ErrBadSequence           = MalformedError("bad sequence")
	ErrBadSignature          = MalformedError("bad signature")
	ErrBadSourceAccount      = MalformedError("bad source account")
	ErrDestinationRequired   = MalformedError("destination required")
	ErrDuplicateAmendment    = LocalRejectError("duplicate amendment")
	ErrInvalidContext        = MalformedError("pseudo-transaction against open ledger")
	ErrNonZeroFee            = MalformedError("non-zero fee")
	ErrNotTransactionPack    = MalformedError("not transaction pack")
	ErrRefereeAlreadySet     = LocalRejectError("referee already set")
	ErrRefereeNotFound       = LocalRejectError("referee not found")
	ErrReferenceAlreadySet   = LocalRejectError("reference already set")
	ErrReferenceNotFound     = RetryableError("reference not found")
	ErrSelfReferral          = MalformedError("self referral")
	ErrSignatureTooLong      = MalformedError("signature too long")
	ErrUnknownTransactionTag = MalformedError("unknown transaction tag")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e MalformedError) Error() string   { return string(e) }
func (e LocalRejectError) Error() string { return string(e) }
func (e RetryableError) Error() string   { return string(e) }
func (e ProcessError) Error() string     { return string(e) }

// determine the class of an error
func IsErrMalformed(e error) bool   { _, ok := e.(MalformedError); return ok }
func IsErrLocalReject(e error) bool { _, ok := e.(LocalRejectError); return ok }
func IsErrRetryable(e error) bool   { _, ok := e.(RetryableError); return ok }
func IsErrProcess(e error) bool     { _, ok := e.(ProcessError); return ok }
