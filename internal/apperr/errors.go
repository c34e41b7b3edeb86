// Package apperr defines the error categories every layer of Mosaic
// classifies against. Call sites wrap a sentinel with context, e.g.
//
//	fmt.Errorf("%w: end_time before start_time", apperr.ErrInvalidArgument)
//
// and callers branch with errors.Is. The MCP façade maps each sentinel to
// its stable wire code.
package apperr

import "errors"

var (
	// ErrInvalidArgument indicates a shape, value range, or semantic
	// precondition violation in caller-supplied input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique or semantic constraint violation.
	ErrConflict = errors.New("conflict")

	// ErrPermissionDenied is reserved for future multi-user use.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDeliveryFailed indicates the notification bridge exhausted retries.
	ErrDeliveryFailed = errors.New("notification delivery failed")

	// ErrInternal indicates an unexpected storage, serialization, or
	// dependency failure.
	ErrInternal = errors.New("internal error")
)

// Code returns the stable machine-readable code for err, or "INTERNAL"
// when the error matches no known category.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "INVALID_ARGUMENT"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrPermissionDenied):
		return "PERMISSION_DENIED"
	case errors.Is(err, ErrDeliveryFailed):
		return "DELIVERY_FAILED"
	default:
		return "INTERNAL"
	}
}
