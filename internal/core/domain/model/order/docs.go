// Package order provides domain entities and business logic for shipment
// tracking in the freight ledger. It implements the Order aggregate root with
// an itinerary of tracking legs and a lifecycle state machine.
//
// The package includes:
//   - Order: The aggregate root holding the itinerary and advancing one leg at a time
//   - Leg: A value object binding a party, a target status code and an incentive
//   - Status: A state machine over Pending -> InTransit -> Completed | Failed
//   - StatusCode: The enumerated leg milestone codes plus the reserved failure code
//
// Key business rules:
//   - Itineraries are fixed at creation: one shipper leg plus at least one carrier leg
//   - Only the party assigned to the current step may report it
//   - A reported code must match the leg's declared target, or be the failure code
//   - Completed and Failed are mutually exclusive terminal states
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
