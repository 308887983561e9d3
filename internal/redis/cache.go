package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	VehicleCacheTTL = 60 * time.Second // Vehicle attributes change rarely
	BookingCacheTTL = 10 * time.Second // Booking status changes during payment
)

// Key prefixes
const (
	vehicleCachePrefix = "cache:vehicle:"
	bookingCachePrefix = "cache:booking:"
)

// CachedVehicle represents a cached vehicle entity.
type CachedVehicle struct {
	ID          string  `json:"id"`
	VendorID    string  `json:"vendor_id"`
	VehicleType string  `json:"vehicle_type"`
	HourlyRate  float64 `json:"hourly_rate"`
	DailyRate   float64 `json:"daily_rate"`
	IsAvailable bool    `json:"is_available"`
}

// CachedBooking represents a cached booking entity.
type CachedBooking struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	VehicleID     string  `json:"vehicle_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	TotalAmount   float64 `json:"total_amount"`
}

// GetVehicle retrieves a vehicle from cache. Returns nil on a miss.
func (s *CacheStore) GetVehicle(ctx context.Context, vehicleID string) (*CachedVehicle, error) {
	key := vehicleCachePrefix + vehicleID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var vehicle CachedVehicle
	if err := json.Unmarshal(data, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache.
func (s *CacheStore) SetVehicle(ctx context.Context, vehicle *CachedVehicle) error {
	key := vehicleCachePrefix + vehicle.ID
	data, err := json.Marshal(vehicle)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, VehicleCacheTTL).Err()
}

// InvalidateVehicle removes a vehicle from cache.
func (s *CacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	key := vehicleCachePrefix + vehicleID
	return s.client.Del(ctx, key).Err()
}

// GetBooking retrieves a booking from cache. Returns nil on a miss.
func (s *CacheStore) GetBooking(ctx context.Context, bookingID string) (*CachedBooking, error) {
	key := bookingCachePrefix + bookingID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var booking CachedBooking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// SetBooking stores a booking in cache.
func (s *CacheStore) SetBooking(ctx context.Context, booking *CachedBooking) error {
	key := bookingCachePrefix + booking.ID
	data, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, BookingCacheTTL).Err()
}

// InvalidateBooking removes a booking from cache.
func (s *CacheStore) InvalidateBooking(ctx context.Context, bookingID string) error {
	key := bookingCachePrefix + bookingID
	return s.client.Del(ctx, key).Err()
}
