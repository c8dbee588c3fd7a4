// Package guard provides ConstructorGuard, a marker that lets value objects,
// entities and commands detect whether they were built through their
// constructor or are an unvalidated zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a private field in types whose invariants are
// established by a constructor. The zero value reports "not constructed".
//
// Example:
//
//	var ErrRevisionNotConstructed = errors.New("OrderRevision must be created via NewOrderRevision")
//
//	type OrderRevision struct {
//	    quantities map[string]int
//	    guard      guard.ConstructorGuard
//	}
//
//	func (r OrderRevision) Validate() error {
//	    return r.guard.Validate(ErrRevisionNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard and validationError otherwise.
// A nil validationError is replaced with ErrDefaultConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
