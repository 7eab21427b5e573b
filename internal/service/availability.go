// Package service holds the booking business logic that sits between HTTP
// handlers and repositories: the availability checker, the pricing
// calculator and the booking event publisher.
package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-booking/internal/repository"
)

// AvailabilityChecker answers whether a room is free for a date range.
// Overlap is tested on the closed interval [checkIn, checkOut]: a booking
// that ends on the exact day another begins counts as a conflict.
type AvailabilityChecker struct {
	bookings *repository.BookingRepo
}

// NewAvailabilityChecker returns a checker backed by the booking repository.
func NewAvailabilityChecker(bookings *repository.BookingRepo) *AvailabilityChecker {
	if bookings == nil {
		panic("nil booking repository passed to NewAvailabilityChecker")
	}
	return &AvailabilityChecker{bookings: bookings}
}

// IsAvailable reports true iff no existing booking for the room overlaps
// the requested range.  The check is fail-closed: on a query error the
// room is reported unavailable and the error is logged, not propagated.
// Callers that are about to insert must still rely on the transactional
// re-check in BookingRepo.Create; this answer can go stale between check
// and insert.
func (a *AvailabilityChecker) IsAvailable(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) bool {
	n, err := a.bookings.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		log.Printf("availability: overlap query failed for room %d: %v", roomID, err)
		return false
	}
	return n == 0
}
