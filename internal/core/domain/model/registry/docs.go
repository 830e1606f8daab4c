// Package registry provides the central coordinator aggregate of the freight
// ledger. The Registry admits orders against its carrier membership set,
// assigns sequential tracking identifiers, accrues per-carrier performance
// ratings and per-recipient incentive balances, and settles incentives through
// a two-phase stage-then-pay process.
//
// Key business rules:
//   - Only orders whose non-origin legs all name registered carriers are admitted
//   - Performance counters move exactly once per order per distinct carrier
//   - Failed orders carry no rating or incentive effects
//   - A settlement pays the amount staged by the previous settlement and stages
//     the current remainder; recipients settled to zero leave the recipient set
package registry
