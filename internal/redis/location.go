package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const driverLocationTTL = 15 * time.Minute

// DriverPosition is a driver's last reported position.
type DriverPosition struct {
	DriverID  string    `json:"driver_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LocationStore mirrors drivers' last known coordinates in Redis so that
// public tracking lookups do not hit the database. Positions expire if a
// driver stops reporting.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

func driverLocationKey(driverID string) string {
	return fmt.Sprintf("location:driver:%s", driverID)
}

// SetPosition stores a driver's position.
func (s *LocationStore) SetPosition(ctx context.Context, pos *DriverPosition) error {
	data, err := json.Marshal(pos)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, driverLocationKey(pos.DriverID), data, driverLocationTTL).Err()
}

// GetPosition retrieves a driver's position. Returns nil on a miss.
func (s *LocationStore) GetPosition(ctx context.Context, driverID string) (*DriverPosition, error) {
	data, err := s.client.Get(ctx, driverLocationKey(driverID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var pos DriverPosition
	if err := json.Unmarshal(data, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// RemovePosition removes a driver's position.
func (s *LocationStore) RemovePosition(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, driverLocationKey(driverID)).Err()
}
