package model

import "time"

// Room represents a bookable room belonging to exactly one hotel.  Prices
// are stored in minor currency units (cents) to avoid floating point
// arithmetic on money.
//
// Fields:
//  ID                 – primary key identifier.
//  HotelID            – hotels.id of the parent hotel.
//  RoomType           – free-form label such as "Double Bed".
//  PricePerNightCents – positive nightly rate in cents.
//  CreatedAt          – timestamp of creation.
type Room struct {
    ID                 uint64    `json:"id"`                    // rooms.id
    HotelID            uint64    `json:"hotel_id"`              // rooms.hotel_id
    RoomType           string    `json:"room_type"`             // rooms.room_type
    PricePerNightCents int64     `json:"price_per_night_cents"` // rooms.price_per_night_cents
    CreatedAt          time.Time `json:"created_at"`            // rooms.created_at
}

// RoomDetail is a room joined with its parent hotel.  It is produced by the
// room repository for booking creation and payment flows, which need hotel
// metadata without issuing a second query.
type RoomDetail struct {
    Room
    HotelName    string `json:"hotel_name"`
    HotelAddress string `json:"hotel_address"`
    HotelCity    string `json:"hotel_city"`
    HotelOwnerID uint64 `json:"-"`
}
