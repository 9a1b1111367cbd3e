// Package kernel provides the shared value objects of the dispatch domain.
//
// The package includes:
//   - UUID: identifier for couriers, customers, tasks and wallets
//   - GeoPoint: validated latitude/longitude pair with the planar ranking metric
//   - Place: an address pinned to a GeoPoint (task pickup and dropoff)
//   - Role: the principal kind carried by session tokens
//
// Value objects embed guard.ConstructorGuard so zero values fail validation.
package kernel
