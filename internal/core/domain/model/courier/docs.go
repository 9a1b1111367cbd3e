// Package courier provides the Courier aggregate and the push devices it registers.
//
// The package includes:
//   - Courier: identity, phone, display name and activity flag of a rider
//   - Device: a push token bound to a courier and a mobile platform
//
// Couriers are only ever deactivated, never deleted, because tasks, wallets
// and location history reference them for as long as the system runs.
package courier
