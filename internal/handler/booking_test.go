package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/service"
)

type stubCheckout struct {
	url string
	err error

	bookingID   uint64
	amountCents int64
}

func (s *stubCheckout) CreateSession(bookingID uint64, hotelName string, amountCents int64, origin string) (string, error) {
	s.bookingID = bookingID
	s.amountCents = amountCents
	return s.url, s.err
}

func newBookingHandler(t *testing.T, checkout CheckoutProvider) (*BookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	bookings := repository.NewBookingRepo(db)
	rooms := repository.NewRoomRepo(db)
	hotels := repository.NewHotelRepo(db)
	h := NewBookingHandler(bookings, rooms, hotels,
		service.NewAvailabilityChecker(bookings), checkout,
		"test", "usd", "https://app.example.com")
	return h, mock
}

func postJSON(t *testing.T, path, body string, u *model.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if u != nil {
		c.Set("user", u)
	}
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body, err)
	}
	return body
}

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(n)
}

func roomDetailRows(roomID, hotelID, ownerID uint64, priceCents int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "hotel_id", "room_type", "price_per_night_cents", "created_at",
		"name", "address", "city", "owner_id",
	}).AddRow(roomID, hotelID, "Double", priceCents, time.Now(), "Seaside", "1 Main St", "Lisbon", ownerID)
}

func TestCheckAvailability(t *testing.T) {
	cases := []struct {
		name      string
		count     int
		available bool
	}{
		{"free room", 0, true},
		{"occupied room", 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock := newBookingHandler(t, nil)
			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
				WithArgs(uint64(4), "2024-03-08", "2024-03-06").
				WillReturnRows(countRows(tc.count))

			c, rec := postJSON(t, "/v1/bookings/check-availability",
				`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-08"}`, nil)
			if err := h.CheckAvailability(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := decodeBody(t, rec)["isAvailable"]; got != tc.available {
				t.Errorf("isAvailable = %v, want %v", got, tc.available)
			}
		})
	}
}

func TestCheckAvailabilityRejectsSameDayStay(t *testing.T) {
	h, _ := newBookingHandler(t, nil)
	c, rec := postJSON(t, "/v1/bookings/check-availability",
		`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-06"}`, nil)
	if err := h.CheckAvailability(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateBooking(t *testing.T) {
	h, mock := newBookingHandler(t, nil)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(`FROM rooms r`).
		WithArgs(uint64(4)).
		WillReturnRows(roomDetailRows(4, 2, 9, 10000))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE .+ FOR UPDATE`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO bookings`).
		// 2 nights at 10000 cents
		WithArgs(uint64(5), uint64(4), uint64(2), 2, "2024-03-06", "2024-03-08", int64(20000)).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(`SELECT created_at FROM bookings WHERE id = \?`).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	c, rec := postJSON(t, "/v1/bookings",
		`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-08","guests":2}`,
		&model.User{ID: 5, Name: "Greta", Email: "greta@example.com"})
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateBookingUnavailable(t *testing.T) {
	// When the availability check finds a conflict the handler must stop
	// before touching the rooms table or opening a transaction.
	h, mock := newBookingHandler(t, nil)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(countRows(1))

	c, rec := postJSON(t, "/v1/bookings",
		`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-08","guests":2}`,
		&model.User{ID: 5})
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	if got := decodeBody(t, rec)["message"]; got != "Room is not available" {
		t.Errorf("message = %q", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestCreateBookingLosesRace(t *testing.T) {
	// Availability passes but the transactional re-check finds a booking
	// committed in between; the caller still gets a conflict.
	h, mock := newBookingHandler(t, nil)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings`).
		WillReturnRows(countRows(0))
	mock.ExpectQuery(`FROM rooms r`).
		WillReturnRows(roomDetailRows(4, 2, 9, 10000))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bookings WHERE .+ FOR UPDATE`).
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	c, rec := postJSON(t, "/v1/bookings",
		`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-08","guests":2}`,
		&model.User{ID: 5})
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestCreateBookingRejectsZeroGuests(t *testing.T) {
	h, _ := newBookingHandler(t, nil)
	c, rec := postJSON(t, "/v1/bookings",
		`{"room":4,"checkInDate":"2024-03-06","checkOutDate":"2024-03-08","guests":0}`,
		&model.User{ID: 5})
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestStripePayment(t *testing.T) {
	checkout := &stubCheckout{url: "https://checkout.stripe.com/pay/cs_test_123"}
	h, mock := newBookingHandler(t, checkout)
	now := time.Now()
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "hotel_id", "guests",
			"check_in_date", "check_out_date", "total_amount_cents", "created_at",
		}).AddRow(11, 5, 4, 2, 2, now, now.AddDate(0, 0, 2), 20000, now))
	mock.ExpectQuery(`FROM rooms r`).
		WithArgs(uint64(4)).
		WillReturnRows(roomDetailRows(4, 2, 9, 10000))

	c, rec := postJSON(t, "/v1/bookings/stripe-payment",
		`{"bookingId":11}`, &model.User{ID: 5})
	if err := h.StripePayment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body)
	}
	if got := decodeBody(t, rec)["url"]; got != checkout.url {
		t.Errorf("url = %q, want %q", got, checkout.url)
	}
	if checkout.bookingID != 11 || checkout.amountCents != 20000 {
		t.Errorf("session created with bookingID=%d amount=%d", checkout.bookingID, checkout.amountCents)
	}
}

func TestStripePaymentForeignBooking(t *testing.T) {
	checkout := &stubCheckout{url: "https://checkout.stripe.com/pay/cs_test_123"}
	h, mock := newBookingHandler(t, checkout)
	now := time.Now()
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "hotel_id", "guests",
			"check_in_date", "check_out_date", "total_amount_cents", "created_at",
		}).AddRow(11, 99, 4, 2, 2, now, now.AddDate(0, 0, 2), 20000, now))

	c, rec := postJSON(t, "/v1/bookings/stripe-payment",
		`{"bookingId":11}`, &model.User{ID: 5})
	if err := h.StripePayment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
	if checkout.bookingID != 0 {
		t.Error("checkout session must not be created for a foreign booking")
	}
}

func TestStripePaymentProviderFailure(t *testing.T) {
	checkout := &stubCheckout{err: errors.New("stripe: api key expired")}
	h, mock := newBookingHandler(t, checkout)
	now := time.Now()
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "room_id", "hotel_id", "guests",
			"check_in_date", "check_out_date", "total_amount_cents", "created_at",
		}).AddRow(11, 5, 4, 2, 2, now, now.AddDate(0, 0, 2), 20000, now))
	mock.ExpectQuery(`FROM rooms r`).
		WillReturnRows(roomDetailRows(4, 2, 9, 10000))

	c, rec := postJSON(t, "/v1/bookings/stripe-payment",
		`{"bookingId":11}`, &model.User{ID: 5})
	if err := h.StripePayment(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
