package redis

import (
	"context"
	"time"
)

// LocationStoreInterface defines the interface for the driver position mirror.
type LocationStoreInterface interface {
	SetPosition(ctx context.Context, pos *DriverPosition) error
	GetPosition(ctx context.Context, driverID string) (*DriverPosition, error)
	RemovePosition(ctx context.Context, driverID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error)
	ReleaseVehicleLock(ctx context.Context, vehicleID string) error
}

// RateLimitStoreInterface defines the interface for request counting.
type RateLimitStoreInterface interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// CacheStoreInterface defines the interface for entity caching.
type CacheStoreInterface interface {
	GetVehicle(ctx context.Context, vehicleID string) (*CachedVehicle, error)
	SetVehicle(ctx context.Context, vehicle *CachedVehicle) error
	InvalidateVehicle(ctx context.Context, vehicleID string) error
	GetBooking(ctx context.Context, bookingID string) (*CachedBooking, error)
	SetBooking(ctx context.Context, booking *CachedBooking) error
	InvalidateBooking(ctx context.Context, bookingID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface  = (*LocationStore)(nil)
	_ LockStoreInterface      = (*LockStore)(nil)
	_ RateLimitStoreInterface = (*RateLimitStore)(nil)
	_ CacheStoreInterface     = (*CacheStore)(nil)
)
