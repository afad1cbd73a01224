// Package kernel contains the shared value objects of the fulfillment domain:
// identifiers and money. These types are immutable, validated on construction,
// and carry no dependencies on the aggregates that use them.
package kernel
