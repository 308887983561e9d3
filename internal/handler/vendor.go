package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"motorent/internal/domain"
	"motorent/internal/repository"
)

// VendorHandler handles HTTP requests for vendors.
type VendorHandler struct {
	vendorRepo repository.VendorRepository
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorRepo repository.VendorRepository) *VendorHandler {
	return &VendorHandler{vendorRepo: vendorRepo}
}

// CreateVendorRequest is the HTTP request body for registering a vendor.
type CreateVendorRequest struct {
	CreatedBy   string   `json:"created_by"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address,omitempty"`
	LocationLat *float64 `json:"location_lat,omitempty"`
	LocationLng *float64 `json:"location_lng,omitempty"`
}

// CreateVendor handles POST /api/vendors
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" || req.City == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing required vendor fields"})
		return
	}

	vendor := &domain.Vendor{
		ID:        uuid.New().String(),
		CreatedBy: req.CreatedBy,
		Name:      req.Name,
		City:      req.City,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}
	if req.LocationLat != nil && req.LocationLng != nil {
		vendor.HasLocation = true
		vendor.LocationLat = *req.LocationLat
		vendor.LocationLng = *req.LocationLng
	}

	if err := h.vendorRepo.Create(c.Request.Context(), vendor); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newVendorView(vendor))
}

// GetVendor handles GET /api/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendor, err := h.vendorRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newVendorView(vendor))
}

// ListVendors handles GET /api/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	city := c.Query("city")
	verifiedOnly := c.Query("verified_only") == "true"

	vendors, err := h.vendorRepo.List(c.Request.Context(), city, verifiedOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]*VendorView, 0, len(vendors))
	for _, v := range vendors {
		views = append(views, newVendorView(v))
	}

	respondJSON(c, http.StatusOK, views)
}
