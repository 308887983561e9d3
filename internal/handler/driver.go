package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"motorent/internal/domain"
	"motorent/internal/redis"
	"motorent/internal/repository"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverRepo repository.DriverRepository, locationStore redis.LocationStoreInterface) *DriverHandler {
	return &DriverHandler{
		driverRepo:    driverRepo,
		locationStore: locationStore,
	}
}

// CreateDriverRequest is the HTTP request body for registering a driver.
type CreateDriverRequest struct {
	UserID            string  `json:"user_id"`
	VendorID          string  `json:"vendor_id"`
	LicenseNumber     string  `json:"license_number"`
	LicenseType       string  `json:"license_type"` // motorcycle, scooter, both
	YearsOfExperience int     `json:"years_of_experience,omitempty"`
	Rating            float64 `json:"rating,omitempty"`
}

// CreateDriver handles POST /api/drivers
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.UserID == "" || req.VendorID == "" || req.LicenseNumber == "" || req.LicenseType == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required driver fields"})
		return
	}

	driver := &domain.Driver{
		ID:                uuid.New().String(),
		UserID:            req.UserID,
		VendorID:          req.VendorID,
		LicenseNumber:     req.LicenseNumber,
		LicenseType:       domain.LicenseType(req.LicenseType),
		YearsOfExperience: req.YearsOfExperience,
		Rating:            req.Rating,
		IsAvailable:       true,
		CreatedAt:         time.Now(),
	}

	if err := h.driverRepo.Create(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newDriverView(driver, nil, nil))
}

// GetDriver handles GET /api/drivers/:id
func (h *DriverHandler) GetDriver(c *gin.Context) {
	result, err := h.driverRepo.GetWithUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newDriverView(result.Driver, result.User, result.Vendor))
}

// ListByVendor handles GET /api/drivers/vendor/:vendorId
func (h *DriverHandler) ListByVendor(c *gin.Context) {
	availableOnly := c.Query("available_only") == "true"

	rows, err := h.driverRepo.ListByVendor(c.Request.Context(), c.Param("vendorId"), availableOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	drivers := make([]*DriverView, 0, len(rows))
	for _, row := range rows {
		drivers = append(drivers, newDriverView(row.Driver, row.User, row.Vendor))
	}

	respondJSON(c, http.StatusOK, drivers)
}

// UpdateLocationRequest is the HTTP request body for a driver location update.
type UpdateLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateLocation handles PUT /api/drivers/:id/location
func (h *DriverHandler) UpdateLocation(c *gin.Context) {
	driverID := c.Param("id")

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.driverRepo.UpdateLocation(c.Request.Context(), driverID, req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}

	if h.locationStore != nil {
		_ = h.locationStore.SetPosition(c.Request.Context(), &redis.DriverPosition{
			DriverID:  driverID,
			Lat:       req.Lat,
			Lng:       req.Lng,
			UpdatedAt: time.Now(),
		})
	}

	respondJSON(c, http.StatusOK, gin.H{"driver_id": driverID, "lat": req.Lat, "lng": req.Lng})
}
