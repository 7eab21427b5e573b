package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// RoomHandler serves room management for hotel owners and the public room
// listing used by the booking frontend.
type RoomHandler struct {
	Rooms  *repository.RoomRepo
	Hotels *repository.HotelRepo
	Env    string
}

// NewRoomHandler constructs a RoomHandler.  All repositories must be non-nil.
func NewRoomHandler(rooms *repository.RoomRepo, hotels *repository.HotelRepo, env string) *RoomHandler {
	if rooms == nil || hotels == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Hotels: hotels, Env: env}
}

// Create handles POST /v1/hotels/:id/rooms.  Only the hotel's owner may
// add rooms; prices arrive and are stored in minor currency units.
func (h *RoomHandler) Create(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "not authenticated")
	}
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusNotFound, "Hotel not found")
		}
		return failInternal(c, h.Env, "failed to fetch hotel", err)
	}
	if hotel.OwnerID != u.ID {
		return fail(c, http.StatusForbidden, "Not authorized to add rooms to this hotel")
	}

	var body struct {
		RoomType           string `json:"roomType"`
		PricePerNightCents int64  `json:"pricePerNightCents"`
	}
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	body.RoomType = strings.TrimSpace(body.RoomType)
	if body.RoomType == "" {
		return fail(c, http.StatusBadRequest, "roomType is required")
	}
	if body.PricePerNightCents <= 0 {
		return fail(c, http.StatusBadRequest, "pricePerNightCents must be positive")
	}

	room := &model.Room{
		HotelID:            hotelID,
		RoomType:           body.RoomType,
		PricePerNightCents: body.PricePerNightCents,
	}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return failInternal(c, h.Env, "could not create room", err)
	}
	return respond(c, http.StatusCreated, echo.Map{"room": room})
}

// List handles GET /v1/hotels/:id/rooms and returns the hotel's rooms.
func (h *RoomHandler) List(c echo.Context) error {
	hotelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || hotelID == 0 {
		return fail(c, http.StatusBadRequest, "invalid hotel id")
	}
	if _, err := h.Hotels.GetByID(c.Request().Context(), hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return fail(c, http.StatusNotFound, "Hotel not found")
		}
		return failInternal(c, h.Env, "failed to fetch hotel", err)
	}
	rooms, err := h.Rooms.ListByHotel(c.Request().Context(), hotelID)
	if err != nil {
		return failInternal(c, h.Env, "failed to fetch rooms", err)
	}
	if rooms == nil {
		rooms = []*model.Room{}
	}
	return respond(c, http.StatusOK, echo.Map{"rooms": rooms})
}
