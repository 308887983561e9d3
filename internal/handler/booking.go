package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	UserID          string  `json:"user_id"`
	VehicleID       string  `json:"vehicle_id"`
	DriverID        string  `json:"driver_id,omitempty"`
	BookingType     string  `json:"booking_type,omitempty"` // rental, delivery
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	PickupLat       float64 `json:"pickup_lat,omitempty"`
	PickupLng       float64 `json:"pickup_lng,omitempty"`
	DropoffLat      float64 `json:"dropoff_lat,omitempty"`
	DropoffLng      float64 `json:"dropoff_lng,omitempty"`
	SpecialRequests string  `json:"special_requests,omitempty"`
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, endDate, err := parseBookingWindow(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	detail, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		UserID:          req.UserID,
		VehicleID:       req.VehicleID,
		DriverID:        req.DriverID,
		BookingType:     domain.BookingType(req.BookingType),
		StartDate:       startDate,
		EndDate:         endDate,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		DropoffLat:      req.DropoffLat,
		DropoffLng:      req.DropoffLng,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newBookingDetailView(detail))
}

// parseBookingWindow parses the start/end timestamps of a booking request.
// Zero values pass through so the service can report missing fields.
func parseBookingWindow(start, end string) (time.Time, time.Time, error) {
	var startDate, endDate time.Time
	var err error

	if start != "" {
		startDate, err = time.Parse(time.RFC3339, start)
		if err != nil {
			return time.Time{}, time.Time{}, service.ErrInvalidBookingWindow
		}
	}
	if end != "" {
		endDate, err = time.Parse(time.RFC3339, end)
		if err != nil {
			return time.Time{}, time.Time{}, service.ErrInvalidBookingWindow
		}
	}
	return startDate, endDate, nil
}

// GetBooking handles GET /api/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	detail, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingDetailView(detail))
}

// ListBookingsResponse is the HTTP response for a user's booking page.
type ListBookingsResponse struct {
	Bookings   []*BookingView `json:"bookings"`
	Pagination Pagination     `json:"pagination"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ListUserBookings handles GET /api/bookings/user/:userId
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	status := domain.BookingStatus(c.Query("status"))

	result, err := h.bookingService.ListUserBookings(c.Request.Context(), c.Param("userId"), status, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	bookings := make([]*BookingView, 0, len(result.Bookings))
	for _, b := range result.Bookings {
		bookings = append(bookings, newBookingDetailView(b))
	}

	respondJSON(c, http.StatusOK, ListBookingsResponse{
		Bookings: bookings,
		Pagination: Pagination{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
			Pages: result.Pages,
		},
	})
}

// UpdateStatusRequest is the HTTP request body for a status update. Both
// fields are optional; present fields are validated against the transition
// tables.
type UpdateStatusRequest struct {
	Status        string `json:"status,omitempty"`
	PaymentStatus string `json:"payment_status,omitempty"`
}

// UpdateStatus handles PATCH /api/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), service.UpdateStatusRequest{
		BookingID:     c.Param("id"),
		Status:        domain.BookingStatus(req.Status),
		PaymentStatus: domain.PaymentStatus(req.PaymentStatus),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newBookingView(booking))
}

// ProcessPaymentRequest is the HTTP request body for processing a payment.
type ProcessPaymentRequest struct {
	PaymentMethod string  `json:"payment_method"`
	Amount        float64 `json:"amount,omitempty"`
}

// ProcessPaymentResponse is the HTTP response for a processed payment.
type ProcessPaymentResponse struct {
	Booking     *BookingView     `json:"booking"`
	Transaction *TransactionView `json:"transaction"`
}

// ProcessPayment handles POST /api/bookings/:id/payment
func (h *BookingHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.bookingService.ProcessPayment(c.Request.Context(), service.ProcessPaymentRequest{
		BookingID: c.Param("id"),
		Method:    domain.PaymentMethod(req.PaymentMethod),
		Amount:    req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, ProcessPaymentResponse{
		Booking:     newBookingView(result.Booking),
		Transaction: newTransactionView(result.Transaction),
	})
}
