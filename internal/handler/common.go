// Package handler contains the HTTP handlers for the booking API.  Every
// response body carries a `success` flag plus either payload fields or a
// human-readable `message`; failures consistently use non-2xx status codes.
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/model"
)

// respond writes a success envelope with the given payload fields merged in.
func respond(c echo.Context, status int, payload echo.Map) error {
	body := echo.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(status, body)
}

// fail writes a failure envelope with a short human-readable message.
func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "message": msg})
}

// failInternal logs the underlying error and writes a 500 failure.  Error
// detail is only exposed to clients in the dev environment.
func failInternal(c echo.Context, env, msg string, err error) error {
	log.Printf("%s %s: %s: %v", c.Request().Method, c.Path(), msg, err)
	if env == "dev" && err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return fail(c, http.StatusInternalServerError, msg)
}

// currentUser returns the user resolved by the identity middleware.  A nil
// user on a protected route means the middleware chain is misconfigured.
func currentUser(c echo.Context) (*model.User, error) {
	if u := middleware.UserFrom(c); u != nil {
		return u, nil
	}
	return nil, errors.New("no resolved user in context")
}

// parseDate accepts plain dates and full RFC 3339 timestamps, normalizing
// the latter to their UTC calendar day.  Clients send plain dates; the
// timestamp form exists for API clients that serialize Date objects whole.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
