// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication and
// carry no domain state.  Currently it exposes only a health check used by
// load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse endpoints: hotel and
// room listings plus the advisory availability check.  Browse responses
// are served through the Redis response cache middleware when one is
// configured; the availability check is a POST and is never cached.
func RegisterPublic(e *echo.Echo, hotels *handler.HotelHandler, rooms *handler.RoomHandler,
	bookings *handler.BookingHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", cache)
	g.GET("/hotels", hotels.List)
	g.GET("/hotels/:id", hotels.GetByID)
	g.GET("/hotels/city/:city", hotels.ListByCity)
	g.GET("/hotels/:id/rooms", rooms.List)

	e.POST("/v1/bookings/check-availability", bookings.CheckAvailability)
}
