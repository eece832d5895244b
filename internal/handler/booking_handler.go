package handler

import (
	"strconv"

	"github.com/Kir-Mi/shareit/internal/application"
	bookingDomain "github.com/Kir-Mi/shareit/internal/domain/booking"
	"github.com/Kir-Mi/shareit/internal/middleware"
	"github.com/Kir-Mi/shareit/internal/response"
	"github.com/gin-gonic/gin"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.RequireSharerID())
	{
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:bookingId", h.SetApproval)
		bookings.GET("/:bookingId", h.GetBooking)
		bookings.GET("", h.ListBookingsOfBooker)
		bookings.GET("/owner", h.ListBookingsOfOwner)
	}
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetApproval handles PATCH /bookings/:bookingId?approved={true|false}.
func (h *BookingHandler) SetApproval(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	bookingID, err := parseIDParam(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved must be true or false")
		return
	}

	result, err := h.service.SetApproval(c.Request.Context(), userID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /bookings/:bookingId.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	bookingID, err := parseIDParam(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetBookingByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBookingsOfBooker handles GET /bookings?state=&from=&size=.
func (h *BookingHandler) ListBookingsOfBooker(c *gin.Context) {
	h.listBookings(c, bookingDomain.RoleBooker)
}

// ListBookingsOfOwner handles GET /bookings/owner?state=&from=&size=.
func (h *BookingHandler) ListBookingsOfOwner(c *gin.Context) {
	h.listBookings(c, bookingDomain.RoleOwner)
}

func (h *BookingHandler) listBookings(c *gin.Context, role bookingDomain.Role) {
	userID, ok := middleware.GetSharerID(c)
	if !ok {
		response.BadRequest(c, "missing X-Sharer-User-Id header")
		return
	}

	filter, err := bookingDomain.ParseStateFilter(c.DefaultQuery("state", "ALL"))
	if err != nil {
		response.Error(c, err)
		return
	}

	from, size, err := parsePagination(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListBookingsForUser(c.Request.Context(), userID, role, filter, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
