// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for hotel CRUD and lookup operations.
// A hotel belongs to exactly one owner and an owner may hold at most one
// hotel, enforced by a unique key on hotels.owner_id.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.  It
// depends on a sql.DB connection which should be configured elsewhere.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

const hotelColumns = "id, owner_id, name, address, contact, city, created_at, updated_at"

func scanHotel(row interface{ Scan(...any) error }, h *model.Hotel) error {
	return row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Address, &h.Contact, &h.City,
		&h.CreatedAt, &h.UpdatedAt)
}

// Create inserts a new hotel into the database.  On success the hotel's ID
// field is populated with the auto-generated value and a follow-up SELECT
// fills the timestamp columns.  A duplicate owner_id violation is mapped
// to ErrHotelExists.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = `INSERT INTO hotels (owner_id, name, address, contact, city) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.OwnerID, h.Name, h.Address, h.Contact, h.City)
	if err != nil {
		// MySQL error 1062: duplicate entry for the unique owner_id key.
		if strings.Contains(err.Error(), "1062") {
			return ErrHotelExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	const qSelect = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	return scanHotel(r.db.QueryRowContext(ctx, qSelect, h.ID), h)
}

// GetByID fetches a hotel by its ID regardless of owner.  It returns
// ErrHotelNotFound if no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`
	var h model.Hotel
	if err := scanHotel(r.db.QueryRowContext(ctx, q, id), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// GetByOwner fetches the hotel owned by the given user, if any.  It returns
// ErrHotelNotFound when the user owns no hotel.
func (r *HotelRepo) GetByOwner(ctx context.Context, ownerID uint64) (*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE owner_id = ?`
	var h model.Hotel
	if err := scanHotel(r.db.QueryRowContext(ctx, q, ownerID), &h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListAll returns all hotels ordered by id.  It backs the public browse
// endpoint and is typically served through the response cache.
func (r *HotelRepo) ListAll(ctx context.Context) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY id`
	return r.list(ctx, q)
}

// ListByCity returns hotels whose city matches the given name, using a
// case-insensitive substring match to mirror typical search-box behavior.
func (r *HotelRepo) ListByCity(ctx context.Context, city string) ([]*model.Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels
	           WHERE LOWER(city) LIKE CONCAT('%', LOWER(?), '%') ORDER BY id`
	return r.list(ctx, q, city)
}

func (r *HotelRepo) list(ctx context.Context, q string, args ...any) ([]*model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Hotel
	for rows.Next() {
		h := new(model.Hotel)
		if err := scanHotel(rows, h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifies a hotel's descriptive fields provided it belongs to the
// given owner.  Ownership is verified before any mutation: a missing hotel
// yields ErrHotelNotFound and an ownership mismatch yields ErrForbidden
// with the row left untouched.
func (r *HotelRepo) Update(ctx context.Context, id, ownerID uint64, name, address, contact, city string) (*model.Hotel, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	const q = `UPDATE hotels
	           SET name = ?, address = ?, contact = ?, city = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ? AND owner_id = ?`
	if _, err := r.db.ExecContext(ctx, q, name, address, contact, city, id, ownerID); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByIDAndOwner removes a hotel together with its rooms and bookings,
// provided it belongs to the specified owner.  If the hotel does not exist,
// ErrHotelNotFound is returned.  If the hotel exists but is owned by a
// different user, ErrForbidden is returned and nothing is deleted.  When
// the deletion leaves the owner with zero hotels their role is downgraded
// to "user" inside the same transaction, so the role can never point at a
// hotel that no longer exists.
func (r *HotelRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Verify hotel exists and ownership before mutating anything.
	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, `SELECT owner_id FROM hotels WHERE id = ?`, id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrHotelNotFound
		}
		return err
	}
	if dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}

	// Cascade delete dependent records before the hotel itself.
	if _, err = tx.ExecContext(ctx, `DELETE FROM bookings WHERE hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM rooms WHERE hotel_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id); err != nil {
		return err
	}

	// Role downgrade: owners with no remaining hotels revert to plain users.
	var remaining int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels WHERE owner_id = ?`, ownerID).Scan(&remaining); err != nil {
		return err
	}
	if remaining == 0 {
		if _, err = tx.ExecContext(ctx, `UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
			model.RoleUser, ownerID); err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}
