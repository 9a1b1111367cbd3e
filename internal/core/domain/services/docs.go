// Package services provides domain services that don't belong to a single aggregate.
//
// The package includes:
//   - CourierMatcher: nearest-courier selection over freshest location reports
//   - FeeSplitter: platform fee and courier payout for a captured task price
package services
