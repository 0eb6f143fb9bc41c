// Package models defines the domain records managed by feeledger.
//
// # Records
//
//   - Client: a customer, carrying the derived TotalDue and TotalPaid aggregates
//   - Fee: an amount owed by a client, with a pending/overdue/paid status
//   - Payment: money received against a fee
//
// Identifiers are int64 values assigned by the store. Money is held in
// decimal.Decimal so totals never pick up floating point noise.
//
// # Patches
//
// Updates are sparse. Each record has a matching Patch type whose fields
// are pointers; a nil field means "leave unchanged". This keeps update
// semantics partial instead of replace, and lets a store apply an update
// as a single write.
//
// # Relationships
//
// Records refer to each other by ID only (Fee.ClientID, Payment.FeeID).
// Nothing here enforces referential integrity: deleting a fee leaves its
// payments in place.
package models
