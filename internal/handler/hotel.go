package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// HotelHandler serves the hotel registry: public browse endpoints and
// owner-scoped create/update/delete.  Ownership checks happen in the
// repository before any mutation.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Users  *repository.UserRepo
	Env    string
}

// NewHotelHandler constructs a HotelHandler.  All repositories must be non-nil.
func NewHotelHandler(hotels *repository.HotelRepo, users *repository.UserRepo, env string) *HotelHandler {
	if hotels == nil || users == nil {
		panic("nil repository passed to NewHotelHandler")
	}
	return &HotelHandler{Hotels: hotels, Users: users, Env: env}
}

type hotelBody struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	City    string `json:"city"`
}

func (b *hotelBody) validate() string {
	b.Name = strings.TrimSpace(b.Name)
	b.Address = strings.TrimSpace(b.Address)
	b.Contact = strings.TrimSpace(b.Contact)
	b.City = strings.TrimSpace(b.City)
	switch {
	case b.Name == "":
		return "name is required"
	case b.City == "":
		return "city is required"
	}
	return ""
}

// Register handles POST /v1/hotels.  It creates a hotel owned by the
// caller and promotes them to the hotelOwner role.  Each user may register
// at most one hotel.
func (h *HotelHandler) Register(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	var body hotelBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	hotel := &model.Hotel{
		OwnerID: u.ID,
		Name:    body.Name,
		Address: body.Address,
		Contact: body.Contact,
		City:    body.City,
	}
	if err := h.Hotels.Create(c.Request().Context(), hotel); err != nil {
		if errors.Is(err, repository.ErrHotelExists) {
			return fail(c, http.StatusConflict, "You have already registered a hotel")
		}
		return failInternal(c, h.Env, "could not register hotel", err)
	}

	if u.Role != model.RoleHotelOwner {
		// The hotel row is already durable; a failed promotion is repaired
		// on the next registry mutation rather than rolled back.
		if err := h.Users.UpdateRole(c.Request().Context(), u.ID, model.RoleHotelOwner); err != nil {
			log.Printf("hotel: role promotion failed for user %d: %v", u.ID, err)
		}
	}
	return respond(c, http.StatusCreated, echo.Map{"message": "Hotel registered successfully", "hotel": hotel})
}

// List handles GET /v1/hotels and returns all hotels.
func (h *HotelHandler) List(c echo.Context) error {
	hotels, err := h.Hotels.ListAll(c.Request().Context())
	if err != nil {
		return failInternal(c, h.Env, "failed to fetch hotels", err)
	}
	if hotels == nil {
		hotels = []*model.Hotel{}
	}
	return respond(c, http.StatusOK, echo.Map{"hotels": hotels})
}

// GetByID handles GET /v1/hotels/:id.
func (h *HotelHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusNotFound, "Hotel not found")
		}
		return failInternal(c, h.Env, "failed to fetch hotel", err)
	}
	return respond(c, http.StatusOK, echo.Map{"hotel": hotel})
}

// ListByCity handles GET /v1/hotels/city/:city with a case-insensitive
// substring match on the city name.
func (h *HotelHandler) ListByCity(c echo.Context) error {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		return fail(c, http.StatusBadRequest, "city is required")
	}
	hotels, err := h.Hotels.ListByCity(c.Request().Context(), city)
	if err != nil {
		return failInternal(c, h.Env, "failed to fetch hotels", err)
	}
	if hotels == nil {
		hotels = []*model.Hotel{}
	}
	return respond(c, http.StatusOK, echo.Map{"hotels": hotels})
}

// Update handles PUT /v1/hotels/:id.  Only the owner may update; the
// ownership check happens before any write.
func (h *HotelHandler) Update(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	var body hotelBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if msg := body.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	hotel, err := h.Hotels.Update(c.Request().Context(), id, u.ID, body.Name, body.Address, body.Contact, body.City)
	switch {
	case errors.Is(err, repository.ErrHotelNotFound):
		return fail(c, http.StatusNotFound, "Hotel not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "Not authorized to update this hotel")
	case err != nil:
		return failInternal(c, h.Env, "failed to update hotel", err)
	}
	return respond(c, http.StatusOK, echo.Map{"hotel": hotel})
}

// Delete handles DELETE /v1/hotels/:id.  Only the owner may delete.  When
// the owner's last hotel is removed their role reverts to "user"; both
// happen in one repository transaction.
func (h *HotelHandler) Delete(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	err = h.Hotels.DeleteByIDAndOwner(c.Request().Context(), id, u.ID)
	switch {
	case errors.Is(err, repository.ErrHotelNotFound):
		return fail(c, http.StatusNotFound, "Hotel not found")
	case errors.Is(err, repository.ErrForbidden):
		return fail(c, http.StatusForbidden, "Not authorized to delete this hotel")
	case err != nil:
		return failInternal(c, h.Env, "failed to delete hotel", err)
	}
	return respond(c, http.StatusOK, echo.Map{"message": "Hotel deleted successfully"})
}
