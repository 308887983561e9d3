package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleRepo repository.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo}
}

// CreateVehicleRequest is the HTTP request body for registering a vehicle.
type CreateVehicleRequest struct {
	VendorID        string   `json:"vendor_id"`
	VehicleType     string   `json:"vehicle_type"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	LicensePlate    string   `json:"license_plate"`
	Color           string   `json:"color,omitempty"`
	FuelType        string   `json:"fuel_type,omitempty"`
	Transmission    string   `json:"transmission,omitempty"`
	HourlyRate      float64  `json:"hourly_rate"`
	DailyRate       float64  `json:"daily_rate,omitempty"`
	Description     string   `json:"description,omitempty"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	ConditionStatus string   `json:"condition_status,omitempty"`
	Mileage         int      `json:"mileage,omitempty"`
}

// CreateVehicle handles POST /api/vehicles
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VendorID == "" || req.VehicleType == "" || req.Make == "" || req.Model == "" ||
		req.LicensePlate == "" || req.HourlyRate <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required vehicle fields"})
		return
	}

	condition := domain.ConditionStatus(req.ConditionStatus)
	if condition == "" {
		condition = domain.ConditionGood
	}

	vehicle := &domain.Vehicle{
		ID:              uuid.New().String(),
		VendorID:        req.VendorID,
		VehicleType:     domain.VehicleType(req.VehicleType),
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		LicensePlate:    req.LicensePlate,
		Color:           req.Color,
		FuelType:        req.FuelType,
		Transmission:    req.Transmission,
		HourlyRate:      req.HourlyRate,
		DailyRate:       req.DailyRate,
		Description:     req.Description,
		IsAvailable:     true,
		ConditionStatus: condition,
		Mileage:         req.Mileage,
		CreatedAt:       time.Now(),
	}
	if req.LocationLat != nil && req.LocationLng != nil {
		vehicle.HasLocation = true
		vehicle.LocationLat = *req.LocationLat
		vehicle.LocationLng = *req.LocationLng
	}

	if err := h.vehicleRepo.Create(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newVehicleView(vehicle, nil))
}

// GetVehicle handles GET /api/vehicles/:id
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	result, err := h.vehicleRepo.GetWithVendor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newVehicleView(result.Vehicle, result.Vendor))
}

// ListVehiclesResponse is the HTTP response for a paginated vehicle list.
type ListVehiclesResponse struct {
	Vehicles   []*VehicleView `json:"vehicles"`
	Pagination Pagination     `json:"pagination"`
}

// ListVehicles handles GET /api/vehicles
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filter := repository.VehicleFilter{
		Type:          domain.VehicleType(c.Query("type")),
		City:          c.Query("city"),
		AvailableOnly: c.Query("available_only") == "true",
		Limit:         limit,
		Offset:        (page - 1) * limit,
	}

	rows, err := h.vehicleRepo.Find(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	total, err := h.vehicleRepo.Count(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	pages := total / limit
	if total%limit != 0 {
		pages++
	}

	vehicles := make([]*VehicleView, 0, len(rows))
	for _, row := range rows {
		vehicles = append(vehicles, newVehicleView(row.Vehicle, row.Vendor))
	}

	respondJSON(c, http.StatusOK, ListVehiclesResponse{
		Vehicles: vehicles,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// ListByVendor handles GET /api/vehicles/vendor/:vendorId
func (h *VehicleHandler) ListByVendor(c *gin.Context) {
	availableOnly := c.Query("available_only") == "true"

	rows, err := h.vehicleRepo.ListByVendor(c.Request.Context(), c.Param("vendorId"), availableOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	vehicles := make([]*VehicleView, 0, len(rows))
	for _, v := range rows {
		vehicles = append(vehicles, newVehicleView(v, nil))
	}

	respondJSON(c, http.StatusOK, vehicles)
}
