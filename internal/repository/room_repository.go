package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// RoomRepo provides data access to the rooms table.  Rooms belong to
// exactly one hotel and carry the nightly rate used by the pricing
// calculator.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a new room for a hotel and populates the generated ID
// and creation timestamp on the provided model.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const qInsert = `INSERT INTO rooms (hotel_id, room_type, price_per_night_cents) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, room.HotelID, room.RoomType, room.PricePerNightCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	const qSelect = `SELECT created_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, room.ID).Scan(&room.CreatedAt)
}

// GetDetail fetches a room joined with its parent hotel.  Booking creation
// and payment flows need the hotel name and address without issuing a
// second query.  It returns ErrRoomNotFound when no row exists.
func (r *RoomRepo) GetDetail(ctx context.Context, id uint64) (*model.RoomDetail, error) {
	const q = `SELECT r.id, r.hotel_id, r.room_type, r.price_per_night_cents, r.created_at,
	                  h.name, h.address, h.city, h.owner_id
	           FROM rooms r
	           JOIN hotels h ON h.id = r.hotel_id
	           WHERE r.id = ?`
	var d model.RoomDetail
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.HotelID, &d.RoomType, &d.PricePerNightCents, &d.CreatedAt,
		&d.HotelName, &d.HotelAddress, &d.HotelCity, &d.HotelOwnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByHotel returns all rooms of a hotel ordered by id.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.Room, error) {
	const q = `SELECT id, hotel_id, room_type, price_per_night_cents, created_at
	           FROM rooms WHERE hotel_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Room
	for rows.Next() {
		room := new(model.Room)
		if err := rows.Scan(&room.ID, &room.HotelID, &room.RoomType,
			&room.PricePerNightCents, &room.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
