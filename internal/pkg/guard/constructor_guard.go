// Package guard provides a defensive construction marker for commands,
// queries and value objects that must only be created through their
// constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects zero-value instances of structs that embed it.
// Constructors set the internal flag via NewConstructorGuard; a struct created
// by direct initialization fails Validate.
//
// Example:
//
//	type RecordDepositCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewRecordDepositCommand(orderID kernel.UUID) (RecordDepositCommand, error) {
//	    return RecordDepositCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c RecordDepositCommand) Validate() error {
//	    return c.guard.Validate(ErrRecordDepositCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded object was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
