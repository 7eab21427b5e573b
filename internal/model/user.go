package model

import "time"

// Role values stored in users.role.  A user starts as a guest on first
// sight, becomes a hotelOwner when they register a hotel, and reverts to
// a plain user when their last hotel is deleted.
const (
    RoleGuest      = "guest"
    RoleUser       = "user"
    RoleHotelOwner = "hotelOwner"
)

// User represents an application user record as stored in the `users`
// table.  Accounts are never created through a signup flow: the identity
// resolver middleware lazily inserts a row the first time an external
// identity id is seen on an authenticated request.
//
// Fields:
//  ID         – primary key identifier of the user.
//  ExternalID – stable subject supplied by the external identity provider.
//  Name       – display name, taken from token claims when available.
//  Email      – email address, taken from token claims when available.
//  Role       – one of guest, user, hotelOwner.
//  CreatedAt  – timestamp of creation.
//  UpdatedAt  – timestamp of last update.
type User struct {
    ID         uint64    `json:"id"`          // users.id
    ExternalID string    `json:"-"`           // users.external_id
    Name       string    `json:"name"`        // users.name
    Email      string    `json:"email"`       // users.email
    Role       string    `json:"role"`        // users.role
    CreatedAt  time.Time `json:"created_at"`  // users.created_at
    UpdatedAt  time.Time `json:"-"`           // users.updated_at
}
