package model

import "time"

// Booking records a user's stay in a room.  Bookings are immutable once
// created; there is no update or cancel operation.  The hotel_id column is
// denormalized from the room so that owner dashboards can query by hotel
// without joining through rooms.
//
// Invariant: no two bookings for the same room may overlap on the closed
// interval [CheckInDate, CheckOutDate].  A booking that ends on the exact
// day another begins counts as a conflict.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – user who made the booking.
//  RoomID           – room being booked.
//  HotelID          – hotel the room belongs to (denormalized).
//  Guests           – positive number of guests.
//  CheckInDate      – first day of the stay (DATE, UTC).
//  CheckOutDate     – last day of the stay, strictly after check-in.
//  TotalAmountCents – positive total price in cents.
//  CreatedAt        – creation timestamp.
type Booking struct {
    ID               uint64    `json:"id"`                 // bookings.id
    UserID           uint64    `json:"user_id"`            // bookings.user_id
    RoomID           uint64    `json:"room_id"`            // bookings.room_id
    HotelID          uint64    `json:"hotel_id"`           // bookings.hotel_id
    Guests           int       `json:"guests"`             // bookings.guests
    CheckInDate      time.Time `json:"check_in_date"`      // bookings.check_in_date
    CheckOutDate     time.Time `json:"check_out_date"`     // bookings.check_out_date
    TotalAmountCents int64     `json:"total_amount_cents"` // bookings.total_amount_cents
    CreatedAt        time.Time `json:"created_at"`         // bookings.created_at
}

// BookingDetail is a booking joined with room and hotel information for
// display in user booking lists and owner dashboards.
type BookingDetail struct {
    Booking
    RoomType     string `json:"room_type"`
    HotelName    string `json:"hotel_name"`
    HotelAddress string `json:"hotel_address"`
    HotelCity    string `json:"hotel_city"`
    GuestName    string `json:"guest_name,omitempty"`
    GuestEmail   string `json:"guest_email,omitempty"`
}
