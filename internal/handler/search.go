package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"motorent/internal/domain"
	"motorent/internal/service"
)

// SearchHandler handles HTTP requests for vehicle and driver discovery.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// VehicleSearchResultView is one vehicle search hit.
type VehicleSearchResultView struct {
	Vehicle    *VehicleView `json:"vehicle"`
	DistanceKm *float64     `json:"distance_km,omitempty"`
	Available  *bool        `json:"available,omitempty"`
}

// VehicleSearchResponse is the HTTP response for a vehicle search.
type VehicleSearchResponse struct {
	Results []VehicleSearchResultView `json:"results"`
	Count   int                       `json:"count"`
}

// SearchVehicles handles GET /api/search/vehicles
func (h *SearchHandler) SearchVehicles(c *gin.Context) {
	req := service.VehicleSearchRequest{
		Type:          domain.VehicleType(c.Query("type")),
		City:          c.Query("city"),
		AvailableOnly: c.DefaultQuery("available_only", "true") == "true",
	}
	req.MinHourlyRate, _ = strconv.ParseFloat(c.Query("min_hourly_rate"), 64)
	req.MaxHourlyRate, _ = strconv.ParseFloat(c.Query("max_hourly_rate"), 64)

	if c.Query("lat") != "" && c.Query("lng") != "" {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinates"})
			return
		}
		req.HasCenter = true
		req.CenterLat = lat
		req.CenterLng = lng
		req.RadiusKm, _ = strconv.ParseFloat(c.Query("radius"), 64)
	}

	if c.Query("start_date") != "" || c.Query("end_date") != "" {
		start, errStart := time.Parse(time.RFC3339, c.Query("start_date"))
		end, errEnd := time.Parse(time.RFC3339, c.Query("end_date"))
		if errStart != nil || errEnd != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date window"})
			return
		}
		req.HasWindow = true
		req.StartDate = start
		req.EndDate = end
	}

	results, err := h.searchService.SearchVehicles(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]VehicleSearchResultView, 0, len(results))
	for _, r := range results {
		view := VehicleSearchResultView{
			Vehicle: newVehicleView(r.Vehicle, r.Vendor),
		}
		if req.HasCenter {
			d := r.DistanceKm
			view.DistanceKm = &d
		}
		if r.HasWindow {
			available := r.Available
			view.Available = &available
		}
		views = append(views, view)
	}

	respondJSON(c, http.StatusOK, VehicleSearchResponse{Results: views, Count: len(views)})
}

// DriverSearchResultView is one driver search hit.
type DriverSearchResultView struct {
	Driver     *DriverView `json:"driver"`
	DistanceKm *float64    `json:"distance_km,omitempty"`
}

// DriverSearchResponse is the HTTP response for a driver search.
type DriverSearchResponse struct {
	Results []DriverSearchResultView `json:"results"`
	Count   int                      `json:"count"`
}

// SearchDrivers handles GET /api/search/drivers
func (h *SearchHandler) SearchDrivers(c *gin.Context) {
	req := service.DriverSearchRequest{
		VehicleType:   domain.VehicleType(c.Query("vehicle_type")),
		AvailableOnly: c.DefaultQuery("available_only", "true") == "true",
	}

	if c.Query("lat") != "" && c.Query("lng") != "" {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid coordinates"})
			return
		}
		req.HasCenter = true
		req.CenterLat = lat
		req.CenterLng = lng
		req.RadiusKm, _ = strconv.ParseFloat(c.Query("radius"), 64)
	}

	results, err := h.searchService.SearchDrivers(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]DriverSearchResultView, 0, len(results))
	for _, r := range results {
		view := DriverSearchResultView{
			Driver: newDriverView(r.Driver, r.User, r.Vendor),
		}
		if req.HasCenter {
			d := r.DistanceKm
			view.DistanceKm = &d
		}
		views = append(views, view)
	}

	respondJSON(c, http.StatusOK, DriverSearchResponse{Results: views, Count: len(views)})
}
