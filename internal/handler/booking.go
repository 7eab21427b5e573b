package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/queue"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// CheckoutProvider creates a hosted payment session for a booking and
// returns its redirect URL.  It is implemented by payment.Checkout; the
// indirection keeps handler tests free of Stripe.
type CheckoutProvider interface {
	CreateSession(bookingID uint64, hotelName string, amountCents int64, origin string) (string, error)
}

// BookingHandler orchestrates booking creation and queries.  Creation runs
// availability check, room lookup, pricing and a transactional insert in
// sequence; each step is a hard precondition for the next.  The
// confirmation mail is a best-effort side channel announced over the
// message broker and never affects the response.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Hotels   *repository.HotelRepo
	Checker  *service.AvailabilityChecker
	Checkout CheckoutProvider

	Env         string
	Currency    string
	FrontendURL string
}

// NewBookingHandler constructs a BookingHandler.  All dependencies except
// the checkout provider must be non-nil.
func NewBookingHandler(bookings *repository.BookingRepo, rooms *repository.RoomRepo, hotels *repository.HotelRepo,
	checker *service.AvailabilityChecker, checkout CheckoutProvider, env, currency, frontendURL string) *BookingHandler {
	if bookings == nil || rooms == nil || hotels == nil || checker == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Bookings:    bookings,
		Rooms:       rooms,
		Hotels:      hotels,
		Checker:     checker,
		Checkout:    checkout,
		Env:         env,
		Currency:    currency,
		FrontendURL: frontendURL,
	}
}

type stayBody struct {
	RoomID       uint64 `json:"room"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Guests       int    `json:"guests"`
}

// parseStay validates the date range common to availability checks and
// booking creation.  Same-day and inverted ranges are rejected outright:
// a zero-night booking would be free, which is never intended.
func (b *stayBody) parseStay() (checkIn, checkOut time.Time, msg string) {
	if b.RoomID == 0 {
		return checkIn, checkOut, "room is required"
	}
	var err error
	if checkIn, err = parseDate(b.CheckInDate); err != nil {
		return checkIn, checkOut, "invalid checkInDate"
	}
	if checkOut, err = parseDate(b.CheckOutDate); err != nil {
		return checkIn, checkOut, "invalid checkOutDate"
	}
	if service.Nights(checkIn, checkOut) < 1 {
		return checkIn, checkOut, "checkOutDate must be after checkInDate"
	}
	return checkIn, checkOut, ""
}

// CheckAvailability handles POST /v1/bookings/check-availability.  It is a
// public endpoint; the answer is advisory and may go stale before a
// booking is attempted.
func (h *BookingHandler) CheckAvailability(c echo.Context) error {
	var body stayBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	checkIn, checkOut, msg := body.parseStay()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	available := h.Checker.IsAvailable(c.Request().Context(), body.RoomID, checkIn, checkOut)
	return respond(c, http.StatusOK, echo.Map{"isAvailable": available})
}

// Create handles POST /v1/bookings.  The insert itself re-validates the
// overlap constraint transactionally, so the earlier availability check is
// an early exit, not the safety mechanism.
func (h *BookingHandler) Create(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	var body stayBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	checkIn, checkOut, msg := body.parseStay()
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}
	if body.Guests < 1 {
		return fail(c, http.StatusBadRequest, "guests must be at least 1")
	}

	ctx := c.Request().Context()
	if !h.Checker.IsAvailable(ctx, body.RoomID, checkIn, checkOut) {
		return fail(c, http.StatusConflict, "Room is not available")
	}

	room, err := h.Rooms.GetDetail(ctx, body.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return fail(c, http.StatusNotFound, "Room not found")
		}
		return failInternal(c, h.Env, "failed to fetch room", err)
	}

	booking := &model.Booking{
		UserID:           u.ID,
		RoomID:           room.ID,
		HotelID:          room.HotelID,
		Guests:           body.Guests,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		TotalAmountCents: service.TotalCents(room.PricePerNightCents, checkIn, checkOut),
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrRoomUnavailable) {
			// Lost the race against a concurrent booking for the same dates.
			return fail(c, http.StatusConflict, "Room is not available")
		}
		return failInternal(c, h.Env, "Failed to create booking", err)
	}

	h.announce(booking, room, u)
	return respond(c, http.StatusCreated, echo.Map{"message": "Booking created successfully"})
}

// announce publishes the booking event for confirmation mail.  Publishing
// happens off the request goroutine with its own deadline; a broker outage
// is logged and otherwise invisible to the caller.
func (h *BookingHandler) announce(b *model.Booking, room *model.RoomDetail, u *model.User) {
	ev := queue.BookingCreatedEvent{
		BookingID:        b.ID,
		UserName:         u.Name,
		UserEmail:        u.Email,
		HotelName:        room.HotelName,
		HotelAddress:     room.HotelAddress,
		CheckInDate:      b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:     b.CheckOutDate.Format("2006-01-02"),
		Nights:           service.Nights(b.CheckInDate, b.CheckOutDate),
		Guests:           b.Guests,
		TotalAmountCents: b.TotalAmountCents,
		Currency:         h.Currency,
		CreatedAt:        b.CreatedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := service.PublishBookingCreated(ctx, ev); err != nil {
			log.Printf("booking: confirmation event for booking %d not published: %v", b.ID, err)
		}
	}()
}

// ListMine handles GET /v1/bookings/user and returns the caller's
// bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), u.ID)
	if err != nil {
		return failInternal(c, h.Env, "Failed to fetch bookings", err)
	}
	if bookings == nil {
		bookings = []*model.BookingDetail{}
	}
	return respond(c, http.StatusOK, echo.Map{"bookings": bookings})
}

// HotelDashboard handles GET /v1/bookings/hotel.  It returns booking and
// revenue totals for the caller's hotel; the route is restricted to the
// hotelOwner role.
func (h *BookingHandler) HotelDashboard(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	ctx := c.Request().Context()
	hotel, err := h.Hotels.GetByOwner(ctx, u.ID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusNotFound, "No hotel found")
		}
		return failInternal(c, h.Env, "Failed to fetch bookings", err)
	}
	bookings, err := h.Bookings.ListByHotel(ctx, hotel.ID)
	if err != nil {
		return failInternal(c, h.Env, "Failed to fetch bookings", err)
	}
	var totalRevenue int64
	for _, b := range bookings {
		totalRevenue += b.TotalAmountCents
	}
	if bookings == nil {
		bookings = []*model.BookingDetail{}
	}
	return respond(c, http.StatusOK, echo.Map{
		"dashboardData": echo.Map{
			"totalBookings":     len(bookings),
			"totalRevenueCents": totalRevenue,
			"bookings":          bookings,
		},
	})
}

// StripePayment handles POST /v1/bookings/stripe-payment.  It creates a
// hosted checkout session for one of the caller's bookings and returns
// the provider's redirect URL.
func (h *BookingHandler) StripePayment(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	var body struct {
		BookingID uint64 `json:"bookingId"`
	}
	if err := c.Bind(&body); err != nil || body.BookingID == 0 {
		return fail(c, http.StatusBadRequest, "bookingId is required")
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByID(ctx, body.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return fail(c, http.StatusNotFound, "Booking not found")
		}
		return failInternal(c, h.Env, "failed to fetch booking", err)
	}
	if booking.UserID != u.ID {
		return fail(c, http.StatusForbidden, "Not authorized to pay for this booking")
	}
	room, err := h.Rooms.GetDetail(ctx, booking.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return fail(c, http.StatusNotFound, "Room not found")
		}
		return failInternal(c, h.Env, "failed to fetch room", err)
	}

	origin := c.Request().Header.Get("Origin")
	if origin == "" {
		origin = h.FrontendURL
	}
	url, err := h.Checkout.CreateSession(booking.ID, room.HotelName, booking.TotalAmountCents, origin)
	if err != nil {
		log.Printf("booking: checkout session for booking %d failed: %v", booking.ID, err)
		return fail(c, http.StatusBadGateway, "Payment failed")
	}
	return respond(c, http.StatusOK, echo.Map{"url": url})
}
