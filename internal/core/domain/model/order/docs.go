// Package order contains the Order aggregate root and its lifecycle state
// machine: statuses, actions, actor roles, the declarative transition table,
// the monetary invariants of the payment ledger, and the domain events raised
// by accepted changes.
//
// The transition table in rules.go is the single source of truth for which
// actor may move an order between which statuses under which payment guards.
// Every mutation of an order goes through Apply, RecordDeposit or
// RecordRemainingPayment; a failed guard leaves the aggregate untouched and
// yields a typed rejection from errors.go.
package order
