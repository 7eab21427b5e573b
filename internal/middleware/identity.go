package middleware

// identity.go turns the external identity id extracted by JWTAuth into a
// local user record.  The upsert is idempotent and keyed by external_id:
// every authenticated request resolves to exactly one user row, created
// with the default guest role on first sight.  The resolved user is stored
// in the request context and passed explicitly into handlers; there is no
// global current-user state.

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// ctxUser is the context key under which the resolved *model.User is stored.
const ctxUser = "user"

// ResolveUser returns middleware that upserts the authenticated identity
// into the users table and stores the resulting record in the context.
// It must run after JWTAuth.  A missing external id means the middleware
// chain is misconfigured and yields 401; a store failure yields 500.
func ResolveUser(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			externalID, _ := c.Get(ctxExternalID).(string)
			if externalID == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "not authenticated"})
			}
			name, _ := c.Get(ctxClaimName).(string)
			email, _ := c.Get(ctxClaimEmail).(string)

			u, err := users.UpsertByExternalID(c.Request().Context(), externalID, name, email)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "could not resolve user"})
			}
			c.Set(ctxUser, u)
			return next(c)
		}
	}
}

// UserFrom extracts the resolved user from the context.  It returns nil
// when no user has been resolved (public routes or misconfigured chains).
func UserFrom(c echo.Context) *model.User {
	u, _ := c.Get(ctxUser).(*model.User)
	return u
}
