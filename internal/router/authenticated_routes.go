package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// RegisterAuthenticated registers all endpoints that require a verified
// identity.  Every route in this group runs JWTAuth (token verification)
// followed by ResolveUser (idempotent upsert of the local user record), so
// handlers always see a fully resolved *model.User in the context.
//
// Ownership of a specific hotel is enforced in the repository layer rather
// than by role: any authenticated user may register a hotel (becoming its
// owner in the process), and update/delete verify the owner row-by-row.
// Only the owner dashboard is gated on the hotelOwner role itself.
func RegisterAuthenticated(e *echo.Echo, users *repository.UserRepo, jwtSecret string,
	userH *handler.UserHandler, hotelH *handler.HotelHandler, roomH *handler.RoomHandler,
	bookingH *handler.BookingHandler) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.ResolveUser(users),
	)

	// ---- Users ----
	g.GET("/users/me", userH.Me)
	g.POST("/users/recent-searched-cities", userH.StoreRecentCity)

	// ---- Hotels ----
	g.POST("/hotels", hotelH.Register)
	g.PUT("/hotels/:id", hotelH.Update)
	g.DELETE("/hotels/:id", hotelH.Delete)

	// ---- Rooms ----
	g.POST("/hotels/:id/rooms", roomH.Create)

	// ---- Bookings ----
	g.POST("/bookings", bookingH.Create)
	g.GET("/bookings/user", bookingH.ListMine)
	g.POST("/bookings/stripe-payment", bookingH.StripePayment)

	// Owner dashboard requires the hotelOwner role on the user record.
	g.GET("/bookings/hotel", bookingH.HotelDashboard, middleware.RequireRole(model.RoleHotelOwner))
}
