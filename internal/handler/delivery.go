package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// DeliveryHandler handles HTTP requests for deliveries.
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// CreateDeliveryRequest is the HTTP request body for creating a delivery.
type CreateDeliveryRequest struct {
	BookingID           string  `json:"booking_id"`
	SenderName          string  `json:"sender_name"`
	SenderPhone         string  `json:"sender_phone"`
	SenderAddress       string  `json:"sender_address"`
	RecipientName       string  `json:"recipient_name"`
	RecipientPhone      string  `json:"recipient_phone"`
	RecipientAddress    string  `json:"recipient_address"`
	PackageDescription  string  `json:"package_description"`
	PackageWeight       float64 `json:"package_weight,omitempty"`
	PackageDimensions   string  `json:"package_dimensions,omitempty"`
	Priority            string  `json:"priority,omitempty"` // standard, express, urgent
	DeliveryFee         float64 `json:"delivery_fee,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// CreateDelivery handles POST /api/deliveries
func (h *DeliveryHandler) CreateDelivery(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	detail, err := h.deliveryService.CreateDelivery(c.Request.Context(), service.CreateDeliveryRequest{
		BookingID:           req.BookingID,
		SenderName:          req.SenderName,
		SenderPhone:         req.SenderPhone,
		SenderAddress:       req.SenderAddress,
		RecipientName:       req.RecipientName,
		RecipientPhone:      req.RecipientPhone,
		RecipientAddress:    req.RecipientAddress,
		PackageDescription:  req.PackageDescription,
		PackageWeight:       req.PackageWeight,
		PackageDimensions:   req.PackageDimensions,
		Priority:            domain.DeliveryPriority(req.Priority),
		DeliveryFee:         req.DeliveryFee,
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newDeliveryDetailView(detail))
}

// GetDelivery handles GET /api/deliveries/:id
func (h *DeliveryHandler) GetDelivery(c *gin.Context) {
	detail, err := h.deliveryService.GetDelivery(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDeliveryDetailView(detail))
}

// TrackingEventView is one entry in a tracking timeline.
type TrackingEventView struct {
	Status      string `json:"status"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
}

// DriverPositionView is the assigned driver's last known position.
type DriverPositionView struct {
	DriverID  string  `json:"driver_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}

// TrackDeliveryResponse is the HTTP response for a tracking lookup.
type TrackDeliveryResponse struct {
	TrackingNumber    string              `json:"tracking_number"`
	Status            string              `json:"status"`
	StatusDescription string              `json:"status_description"`
	EstimatedDelivery string              `json:"estimated_delivery,omitempty"`
	ActualDelivery    string              `json:"actual_delivery,omitempty"`
	History           []TrackingEventView `json:"history"`
	DriverPosition    *DriverPositionView `json:"driver_position,omitempty"`
}

// TrackDelivery handles GET /api/deliveries/track/:trackingNumber
func (h *DeliveryHandler) TrackDelivery(c *gin.Context) {
	info, err := h.deliveryService.TrackDelivery(c.Request.Context(), c.Param("trackingNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	history := make([]TrackingEventView, 0, len(info.History))
	for _, e := range info.History {
		history = append(history, TrackingEventView{
			Status:      string(e.Status),
			Description: e.Description,
			Timestamp:   formatTime(e.Timestamp),
			Location:    e.Location,
		})
	}

	response := TrackDeliveryResponse{
		TrackingNumber:    info.Delivery.TrackingNumber,
		Status:            string(info.Delivery.Status),
		StatusDescription: info.StatusDescription,
		EstimatedDelivery: formatTime(info.Delivery.EstimatedDeliveryTime),
		ActualDelivery:    formatTime(info.Delivery.ActualDeliveryTime),
		History:           history,
	}

	if info.DriverPosition != nil {
		response.DriverPosition = &DriverPositionView{
			DriverID:  info.DriverPosition.DriverID,
			Lat:       info.DriverPosition.Lat,
			Lng:       info.DriverPosition.Lng,
			UpdatedAt: formatTime(info.DriverPosition.UpdatedAt),
		}
	}

	respondJSON(c, http.StatusOK, response)
}

// UpdateDeliveryStatusRequest is the HTTP request body for a delivery status
// update. Driver coordinates are optional and cascade to the assigned driver.
type UpdateDeliveryStatusRequest struct {
	Status    string   `json:"status"`
	DriverLat *float64 `json:"driver_lat,omitempty"`
	DriverLng *float64 `json:"driver_lng,omitempty"`
}

// UpdateStatus handles PATCH /api/deliveries/:id/status
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateDeliveryStatusRequest{
		DeliveryID: c.Param("id"),
		Status:     domain.DeliveryStatus(req.Status),
	}
	if req.DriverLat != nil && req.DriverLng != nil {
		update.HasDriverLocation = true
		update.DriverLat = *req.DriverLat
		update.DriverLng = *req.DriverLng
	}

	delivery, err := h.deliveryService.UpdateDeliveryStatus(c.Request.Context(), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDeliveryView(delivery))
}
