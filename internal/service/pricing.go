package service

import "time"

// Nights returns the number of nights between check-in and check-out,
// computed as the ceiling of the elapsed time in whole days.  For
// plain dates this is simply the day difference; partial days round up.
// A same-day or inverted range yields zero or a negative count, which
// handlers reject before any booking is priced.
func Nights(checkIn, checkOut time.Time) int {
	diff := checkOut.Sub(checkIn)
	nights := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		nights++
	}
	return nights
}

// TotalCents computes the total price of a stay in minor currency units:
// nightly rate times the number of nights.
func TotalCents(pricePerNightCents int64, checkIn, checkOut time.Time) int64 {
	return pricePerNightCents * int64(Nights(checkIn, checkOut))
}
