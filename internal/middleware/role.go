package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// resolved user has one of the specified roles.  Roles live on the user
// record, not in the token: the identity provider knows nothing about
// hotel ownership, and a user's role can change mid-session when they
// register or delete a hotel.  It must run after ResolveUser.  If the
// user's role is not in the allowed set, the request is aborted with a
// 403 Forbidden response.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := UserFrom(c)
			if u == nil || !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "forbidden"})
			}
			return next(c)
		}
	}
}
