// Package services contains domain services coordinating operations across the
// order, carrier and registry aggregates. The TrackingCoordinator enforces the
// all-or-nothing cross-party protocol: every precondition across all involved
// aggregates is validated before any of them is mutated.
package services
