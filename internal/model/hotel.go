package model

import "time"

// Hotel represents a property owned by a single user.  The owner_id column
// carries a unique constraint: each user may register at most one hotel.
// Only the owner may update or delete their hotel.
//
// Fields:
//  ID        – primary key identifier.
//  OwnerID   – users.id of the hotel owner (unique).
//  Name      – display name of the hotel.
//  Address   – street address.
//  Contact   – phone number or other contact detail.
//  City      – city used for browse-by-city lookups.
//  CreatedAt – timestamp when the hotel was registered.
//  UpdatedAt – timestamp of last update.
type Hotel struct {
    ID        uint64    `json:"id"`         // hotels.id
    OwnerID   uint64    `json:"owner_id"`   // hotels.owner_id
    Name      string    `json:"name"`       // hotels.name
    Address   string    `json:"address"`    // hotels.address
    Contact   string    `json:"contact"`    // hotels.contact
    City      string    `json:"city"`       // hotels.city
    CreatedAt time.Time `json:"created_at"` // hotels.created_at
    UpdatedAt time.Time `json:"-"`          // hotels.updated_at
}
