// Package services contains stateless domain services that coordinate logic
// across aggregates without owning state of their own.
package services
