// Package kernel provides the shared value objects of the order domain.
//
// The package includes:
//   - UUID: identifier value object for orders, consumers and restaurants
//   - Money: immutable decimal amount used for prices, totals and the order minimum
//
// Both types are immutable and safe for concurrent use.
package kernel
