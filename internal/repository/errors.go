// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrRoomUnavailable signals that a booking could not be
// inserted because another booking overlaps the requested dates.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrRoomUnavailable is returned when a booking insert is rejected
// because an existing booking for the same room overlaps the requested
// date range. Handlers should translate this into an HTTP 409 response.
var ErrRoomUnavailable = errors.New("room unavailable")

// ErrHotelExists is returned when a user attempts to register a second
// hotel. Each owner may hold at most one hotel.
var ErrHotelExists = errors.New("hotel already registered for this owner")

// Not-found sentinels, one per entity so handlers can produce precise
// messages without string matching.
var (
    ErrUserNotFound    = errors.New("user not found")
    ErrHotelNotFound   = errors.New("hotel not found")
    ErrRoomNotFound    = errors.New("room not found")
    ErrBookingNotFound = errors.New("booking not found")
)
