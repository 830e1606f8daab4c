package order

import (
	"fmt"

	"freightledger/internal/pkg/errs"
)

// StatusCode identifies the handling milestone a tracking leg reports.
// The numeric values are part of the external interface and must not change.
//
// CodeFailed is distinguished: it is never a valid leg target and is only
// accepted through the failure branch of leg reporting.
type StatusCode int

const (
	// CodeUnknown represents an invalid or undefined code.
	// This value (0) helps catch uninitialized StatusCode values.
	CodeUnknown StatusCode = 0

	// CodeInit marks the origin leg at order creation.
	CodeInit StatusCode = 10
	// CodeCancel marks a cancelled handover.
	CodeCancel StatusCode = 14
	// CodeLaunch marks acceptance of a leg by its carrier.
	CodeLaunch StatusCode = 15
	// CodeWarehousing marks arrival at a warehouse.
	CodeWarehousing StatusCode = 20
	// CodeReleased marks release from a warehouse.
	CodeReleased StatusCode = 30
	// CodeFlight marks the long-haul transport segment.
	CodeFlight StatusCode = 40
	// CodeLastMile marks the leg immediately preceding final delivery.
	// An order whose current leg targets this code is eligible for same-carrier
	// continuation without a fresh explicit acceptance.
	CodeLastMile StatusCode = 60
	// CodeComplete marks final delivery.
	CodeComplete StatusCode = 70

	// CodeFailed is the reserved failure code. Reporting it makes the order
	// terminal without advancing the current step.
	CodeFailed StatusCode = 99
)

func getStatusCodeStrings() map[StatusCode]string {
	return map[StatusCode]string{
		CodeUnknown:     "Unknown",
		CodeInit:        "Init",
		CodeCancel:      "Cancel",
		CodeLaunch:      "Launch",
		CodeWarehousing: "Warehousing",
		CodeReleased:    "Released",
		CodeFlight:      "Flight",
		CodeLastMile:    "LastMile",
		CodeComplete:    "Complete",
		CodeFailed:      "Failed",
	}
}

func getValidStatusCodeStrings() map[StatusCode]string {
	// CodeFailed is intentionally excluded: it is not a valid leg target.
	return map[StatusCode]string{
		CodeInit:        "Init",
		CodeCancel:      "Cancel",
		CodeLaunch:      "Launch",
		CodeWarehousing: "Warehousing",
		CodeReleased:    "Released",
		CodeFlight:      "Flight",
		CodeLastMile:    "LastMile",
		CodeComplete:    "Complete",
	}
}

// Validate checks that the code belongs to the enumerated set of valid leg
// targets. CodeFailed and CodeUnknown are invalid targets.
func (c StatusCode) Validate() error {
	if _, ok := getValidStatusCodeStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status code is invalid",
			fmt.Errorf("%d is not a valid status code", c))
	}
	return nil
}

// IsFailure reports whether the code is the reserved failure code.
func (c StatusCode) IsFailure() bool {
	return c == CodeFailed
}

// String returns the human-readable name of the code.
// It implements fmt.Stringer and is safe on any value, including invalid ones.
func (c StatusCode) String() string {
	if str, ok := getStatusCodeStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
