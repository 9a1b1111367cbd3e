// Package wallet provides the Wallet aggregate and its append-only ledger entries.
//
// Every balance change produces exactly one Transaction; persisting the pair
// atomically keeps the reconciliation invariant
//
//	balance == Sum(transactions)
//
// true for any history.
package wallet
