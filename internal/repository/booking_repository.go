package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  Bookings are
// immutable once created, so the repository exposes only insert and query
// operations.  All date comparisons use the closed interval
// [check_in_date, check_out_date]: a booking that ends on the exact day
// another begins is treated as a conflict.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const dateLayout = "2006-01-02"

// overlapWhere matches every booking for a room whose stay touches the
// requested range, boundaries included.  Bind order: roomID, checkOut, checkIn.
const overlapWhere = `room_id = ? AND check_in_date <= ? AND check_out_date >= ?`

// CountOverlapping returns the number of bookings for the room whose date
// range overlaps [checkIn, checkOut] inclusively.
func (r *BookingRepo) CountOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM bookings WHERE ` + overlapWhere
	var n int
	err := r.db.QueryRowContext(ctx, q, roomID,
		checkOut.Format(dateLayout), checkIn.Format(dateLayout)).Scan(&n)
	return n, err
}

// Create inserts a booking as a conditional write: the overlap constraint
// is re-validated inside the transaction, with the matching rows locked,
// immediately before the insert.  Two concurrent requests for the same
// room and overlapping dates may both pass the handler-level availability
// check, but only one can commit here; the other receives
// ErrRoomUnavailable.  On success the generated ID and creation timestamp
// are populated on the provided model.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var conflicts int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE `+overlapWhere+` FOR UPDATE`,
		b.RoomID, b.CheckOutDate.Format(dateLayout), b.CheckInDate.Format(dateLayout),
	).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		err = ErrRoomUnavailable
		return err
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, room_id, hotel_id, guests, check_in_date, check_out_date, total_amount_cents)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.RoomID, b.HotelID, b.Guests,
		b.CheckInDate.Format(dateLayout), b.CheckOutDate.Format(dateLayout),
		b.TotalAmountCents)
	if err != nil {
		return err
	}
	var id int64
	if id, err = res.LastInsertId(); err != nil {
		return err
	}
	b.ID = uint64(id)
	if err = tx.QueryRowContext(ctx, `SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return err
	}

	// The commit can still fail under lock contention; the caller must not
	// report success for a booking that never became durable.
	err = tx.Commit()
	return err
}

// GetByID fetches a booking by primary key.  It returns ErrBookingNotFound
// when no row exists.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, room_id, hotel_id, guests, check_in_date, check_out_date,
	                  total_amount_cents, created_at
	           FROM bookings WHERE id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.HotelID, &b.Guests,
		&b.CheckInDate, &b.CheckOutDate, &b.TotalAmountCents, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const detailColumns = `b.id, b.user_id, b.room_id, b.hotel_id, b.guests,
	b.check_in_date, b.check_out_date, b.total_amount_cents, b.created_at,
	r.room_type, h.name, h.address, h.city`

// ListByUser returns the user's bookings joined with room and hotel
// details, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.BookingDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN hotels h ON h.id = b.hotel_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows, false)
}

// ListByHotel returns all bookings for a hotel joined with room, hotel and
// guest details, newest first.  It backs the owner dashboard.
func (r *BookingRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]*model.BookingDetail, error) {
	const q = `SELECT ` + detailColumns + `, u.name, u.email
	           FROM bookings b
	           JOIN rooms r ON r.id = b.room_id
	           JOIN hotels h ON h.id = b.hotel_id
	           JOIN users u ON u.id = b.user_id
	           WHERE b.hotel_id = ?
	           ORDER BY b.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDetails(rows, true)
}

func scanDetails(rows *sql.Rows, withGuest bool) ([]*model.BookingDetail, error) {
	var out []*model.BookingDetail
	for rows.Next() {
		d := new(model.BookingDetail)
		dest := []any{
			&d.ID, &d.UserID, &d.RoomID, &d.HotelID, &d.Guests,
			&d.CheckInDate, &d.CheckOutDate, &d.TotalAmountCents, &d.CreatedAt,
			&d.RoomType, &d.HotelName, &d.HotelAddress, &d.HotelCity,
		}
		if withGuest {
			dest = append(dest, &d.GuestName, &d.GuestEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
