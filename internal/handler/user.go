package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/repository"
)

// UserHandler serves the authenticated user's own profile data.  The user
// record itself is created and resolved by middleware; these endpoints
// only read it and maintain the recent-searched-cities list.
type UserHandler struct {
	Users *repository.UserRepo
	Env   string
}

// NewUserHandler constructs a UserHandler.  The repository must be non-nil.
func NewUserHandler(users *repository.UserRepo, env string) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Env: env}
}

// Me handles GET /v1/users/me.  It returns the caller's role, profile
// fields and recently searched cities.
func (h *UserHandler) Me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	cities, err := h.Users.RecentCities(c.Request().Context(), u.ID)
	if err != nil {
		return failInternal(c, h.Env, "failed to load recent cities", err)
	}
	return respond(c, http.StatusOK, echo.Map{
		"role":                 u.Role,
		"recentSearchedCities": cities,
		"name":                 u.Name,
		"email":                u.Email,
	})
}

// StoreRecentCity handles POST /v1/users/recent-searched-cities.  It
// records a city the user searched for; only the newest three are kept.
func (h *UserHandler) StoreRecentCity(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	var body struct {
		City string `json:"recentSearchedCity"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	city := strings.TrimSpace(body.City)
	if city == "" {
		return fail(c, http.StatusBadRequest, "recentSearchedCity is required")
	}
	if err := h.Users.PushRecentCity(c.Request().Context(), u.ID, city); err != nil {
		return failInternal(c, h.Env, "failed to store city", err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "City added"})
}
