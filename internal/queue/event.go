// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into confirmation mail.
package queue

// BookingQueueName is the durable queue bookings are announced on.
const BookingQueueName = "booking.created"

// BookingCreatedEvent is published when a booking is successfully written.
// It carries enough information for downstream consumers to send the
// confirmation mail without querying the primary database.
type BookingCreatedEvent struct {
	BookingID        uint64 `json:"booking_id"`
	UserName         string `json:"user_name"`
	UserEmail        string `json:"user_email"`
	HotelName        string `json:"hotel_name"`
	HotelAddress     string `json:"hotel_address"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	Nights           int    `json:"nights"`
	Guests           int    `json:"guests"`
	TotalAmountCents int64  `json:"total_amount_cents"`
	Currency         string `json:"currency"`
	CreatedAt        string `json:"created_at"`
}
