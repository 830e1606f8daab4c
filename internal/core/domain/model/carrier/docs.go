// Package carrier provides the per-company ledger aggregate for the freight
// ledger. Each Carrier records the (order, leg) tasks the company has launched
// and the orders it currently holds, and names the payout recipient credited
// with the company's incentives.
//
// Key business rules:
//   - The launch log is append-only and idempotent
//   - A launched task gates leg-completion reporting
//   - Held orders form an insertion-ordered enumerable set
package carrier
