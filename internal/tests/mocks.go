package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"motorent/internal/domain"
	"motorent/internal/redis"
	"motorent/internal/repository"
	"motorent/internal/service"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Related records for detail resolution.
	Users    map[string]*domain.User
	Vehicles map[string]*domain.Vehicle
	Vendors  map[string]*domain.Vendor

	// Counters for verification
	CreateCallCount          int32
	UpdateCallCount          int32
	FindConflictingCallCount int32

	// Error injection
	CreateError          error
	UpdateError          error
	FindConflictingError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
		Users:    make(map[string]*domain.User),
		Vehicles: make(map[string]*domain.Vehicle),
		Vendors:  make(map[string]*domain.Vendor),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetDetailByID(ctx context.Context, id string) (*domain.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &domain.BookingDetail{
		Booking: &copy,
		User:    m.Users[booking.UserID],
		Vehicle: m.Vehicles[booking.VehicleID],
	}, nil
}

func (m *MockBookingRepository) FindConflicting(ctx context.Context, vehicleID string, start, end time.Time, excludeID string) ([]*domain.Booking, error) {
	atomic.AddInt32(&m.FindConflictingCallCount, 1)
	if m.FindConflictingError != nil {
		return nil, m.FindConflictingError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var conflicts []*domain.Booking
	for _, b := range m.bookings {
		if b.VehicleID != vehicleID || b.ID == excludeID {
			continue
		}
		if b.Status != domain.BookingStatusConfirmed && b.Status != domain.BookingStatusInProgress {
			continue
		}
		if b.StartDate.Before(end) && b.EndDate.After(start) {
			copy := *b
			conflicts = append(conflicts, &copy)
		}
	}
	return conflicts, nil
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, filter repository.BookingFilter) ([]*domain.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matched []*domain.Booking
	for _, b := range m.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}

	result := make([]*domain.BookingDetail, 0, end-start)
	for _, b := range matched[start:end] {
		copy := *b
		result = append(result, &domain.BookingDetail{
			Booking: &copy,
			Vehicle: m.Vehicles[b.VehicleID],
		})
	}
	return result, nil
}

func (m *MockBookingRepository) CountByUser(ctx context.Context, filter repository.BookingFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, b := range m.bookings {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) UpdateTotalAmount(ctx context.Context, id string, total float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	booking.TotalAmount = total
	return nil
}

// GetBooking returns the booking by ID (for test assertions).
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// CountBookings returns the number of bookings.
func (m *MockBookingRepository) CountBookings() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bookings)
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
	vendors  map[string]*domain.Vendor

	// Counters
	CreateCallCount int32

	// Error injection
	CreateError error
	FindError   error
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
		vendors:  make(map[string]*domain.Vendor),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

// AddVendor adds a vendor for join resolution.
func (m *MockVehicleRepository) AddVendor(vendor *domain.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vendors[vendor.ID] = vendor
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetWithVendor(ctx context.Context, id string) (*domain.VehicleWithVendor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &domain.VehicleWithVendor{Vehicle: &copy, Vendor: m.vendors[vehicle.VendorID]}, nil
}

func (m *MockVehicleRepository) ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Vehicle
	for _, v := range m.vehicles {
		if v.VendorID != vendorID {
			continue
		}
		if availableOnly && !v.IsAvailable {
			continue
		}
		copy := *v
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockVehicleRepository) Find(ctx context.Context, filter repository.VehicleFilter) ([]*domain.VehicleWithVendor, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.VehicleWithVendor
	for _, v := range m.vehicles {
		if !m.matches(v, filter) {
			continue
		}
		copy := *v
		result = append(result, &domain.VehicleWithVendor{Vehicle: &copy, Vendor: m.vendors[v.VendorID]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Vehicle.ID < result[j].Vehicle.ID
	})
	return result, nil
}

func (m *MockVehicleRepository) Count(ctx context.Context, filter repository.VehicleFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, v := range m.vehicles {
		if m.matches(v, filter) {
			count++
		}
	}
	return count, nil
}

func (m *MockVehicleRepository) matches(v *domain.Vehicle, filter repository.VehicleFilter) bool {
	if filter.Type != "" && v.VehicleType != filter.Type {
		return false
	}
	if filter.AvailableOnly && !v.IsAvailable {
		return false
	}
	if filter.MinHourlyRate > 0 && v.HourlyRate < filter.MinHourlyRate {
		return false
	}
	if filter.MaxHourlyRate > 0 && v.HourlyRate > filter.MaxHourlyRate {
		return false
	}
	if filter.City != "" {
		vendor := m.vendors[v.VendorID]
		if vendor == nil || vendor.City != filter.City {
			return false
		}
	}
	return true
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters
	CreateCallCount         int32
	UpdateLocationCallCount int32

	// Error injection
	CreateError         error
	UpdateLocationError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetWithUser(ctx context.Context, id string) (*domain.DriverWithUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &domain.DriverWithUser{Driver: &copy}, nil
}

func (m *MockDriverRepository) ListByVendor(ctx context.Context, vendorID string, availableOnly bool) ([]*domain.DriverWithUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DriverWithUser
	for _, d := range m.drivers {
		if d.VendorID != vendorID {
			continue
		}
		if availableOnly && !d.IsAvailable {
			continue
		}
		copy := *d
		result = append(result, &domain.DriverWithUser{Driver: &copy})
	}
	return result, nil
}

func (m *MockDriverRepository) Find(ctx context.Context, filter repository.DriverFilter) ([]*domain.DriverWithUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.DriverWithUser
	for _, d := range m.drivers {
		if filter.AvailableOnly && !d.IsAvailable {
			continue
		}
		if len(filter.LicenseTypes) > 0 {
			ok := false
			for _, lt := range filter.LicenseTypes {
				if d.LicenseType == lt {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}
		copy := *d
		result = append(result, &domain.DriverWithUser{Driver: &copy})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Driver.ID < result[j].Driver.ID
	})
	return result, nil
}

func (m *MockDriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.CurrentLat = lat
	driver.CurrentLng = lng
	driver.HasLocation = true
	return nil
}

// GetDriver returns the driver by ID (for test assertions).
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK DELIVERY REPOSITORY
// ──────────────────────────────────────────────

// MockDeliveryRepository is a mock implementation of DeliveryRepository.
type MockDeliveryRepository struct {
	mu         sync.RWMutex
	deliveries map[string]*domain.Delivery

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockDeliveryRepository creates a new mock delivery repository.
func NewMockDeliveryRepository() *MockDeliveryRepository {
	return &MockDeliveryRepository{
		deliveries: make(map[string]*domain.Delivery),
	}
}

// AddDelivery adds a delivery to the mock repository.
func (m *MockDeliveryRepository) AddDelivery(delivery *domain.Delivery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[delivery.ID] = delivery
}

func (m *MockDeliveryRepository) Create(ctx context.Context, delivery *domain.Delivery) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[delivery.ID] = delivery
	return nil
}

func (m *MockDeliveryRepository) GetByID(ctx context.Context, id string) (*domain.Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	delivery, ok := m.deliveries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *delivery
	return &copy, nil
}

func (m *MockDeliveryRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.deliveries {
		if d.TrackingNumber == trackingNumber {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDeliveryRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Delivery, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.deliveries {
		if d.BookingID == bookingID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, nil // No delivery, but not an error.
}

func (m *MockDeliveryRepository) GetDetailByID(ctx context.Context, id string) (*domain.DeliveryDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	delivery, ok := m.deliveries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *delivery
	return &domain.DeliveryDetail{Delivery: &copy}, nil
}

func (m *MockDeliveryRepository) Update(ctx context.Context, delivery *domain.Delivery) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.deliveries[delivery.ID]; !ok {
		return repository.ErrNotFound
	}
	m.deliveries[delivery.ID] = delivery
	return nil
}

// GetDelivery returns the delivery by ID (for test assertions).
func (m *MockDeliveryRepository) GetDelivery(id string) *domain.Delivery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.deliveries[id]
}

// CountDeliveries returns the number of deliveries.
func (m *MockDeliveryRepository) CountDeliveries() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.deliveries)
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Counters
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copy := *u
		result = append(result, &copy)
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]time.Time),
	}
}

func (m *MockLockStore) AcquireVehicleLock(ctx context.Context, vehicleID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := "lock:vehicle:" + vehicleID
	if expiry, exists := m.locks[key]; exists {
		if time.Now().Before(expiry) {
			return false, nil // Lock still held.
		}
	}

	m.locks[key] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseVehicleLock(ctx context.Context, vehicleID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:vehicle:"+vehicleID)
	return nil
}

// IsLocked checks if a vehicle is locked (for test assertions).
func (m *MockLockStore) IsLocked(vehicleID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, exists := m.locks["lock:vehicle:"+vehicleID]
	return exists && time.Now().Before(expiry)
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of the driver position mirror.
type MockLocationStore struct {
	mu        sync.RWMutex
	positions map[string]*redis.DriverPosition

	// Counters
	SetPositionCallCount int32

	// Error injection
	SetPositionError error
	GetPositionError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		positions: make(map[string]*redis.DriverPosition),
	}
}

func (m *MockLocationStore) SetPosition(ctx context.Context, pos *redis.DriverPosition) error {
	atomic.AddInt32(&m.SetPositionCallCount, 1)
	if m.SetPositionError != nil {
		return m.SetPositionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *pos
	m.positions[pos.DriverID] = &copy
	return nil
}

func (m *MockLocationStore) GetPosition(ctx context.Context, driverID string) (*redis.DriverPosition, error) {
	if m.GetPositionError != nil {
		return nil, m.GetPositionError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	pos, ok := m.positions[driverID]
	if !ok {
		return nil, nil
	}
	copy := *pos
	return &copy, nil
}

func (m *MockLocationStore) RemovePosition(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, driverID)
	return nil
}

// HasPosition checks if a driver position exists (for test assertions).
func (m *MockLocationStore) HasPosition(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.positions[driverID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK CACHE STORE
// ──────────────────────────────────────────────

// MockCacheStore is a mock implementation of the entity cache.
type MockCacheStore struct {
	mu       sync.RWMutex
	vehicles map[string]*redis.CachedVehicle
	bookings map[string]*redis.CachedBooking

	// Counters
	GetVehicleCallCount        int32
	SetVehicleCallCount        int32
	GetBookingCallCount        int32
	SetBookingCallCount        int32
	InvalidateBookingCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{
		vehicles: make(map[string]*redis.CachedVehicle),
		bookings: make(map[string]*redis.CachedBooking),
	}
}

// AddVehicle pre-warms the vehicle cache.
func (m *MockCacheStore) AddVehicle(vehicle *redis.CachedVehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

// AddBooking pre-warms the booking cache.
func (m *MockCacheStore) AddBooking(booking *redis.CachedBooking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockCacheStore) GetVehicle(ctx context.Context, vehicleID string) (*redis.CachedVehicle, error) {
	atomic.AddInt32(&m.GetVehicleCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[vehicleID]
	if !ok {
		return nil, nil
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockCacheStore) SetVehicle(ctx context.Context, vehicle *redis.CachedVehicle) error {
	atomic.AddInt32(&m.SetVehicleCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *vehicle
	m.vehicles[vehicle.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateVehicle(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vehicles, vehicleID)
	return nil
}

func (m *MockCacheStore) GetBooking(ctx context.Context, bookingID string) (*redis.CachedBooking, error) {
	atomic.AddInt32(&m.GetBookingCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	copy := *booking
	return &copy, nil
}

func (m *MockCacheStore) SetBooking(ctx context.Context, booking *redis.CachedBooking) error {
	atomic.AddInt32(&m.SetBookingCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateBooking(ctx context.Context, bookingID string) error {
	atomic.AddInt32(&m.InvalidateBookingCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, bookingID)
	return nil
}

// CachedVehicle returns the cached vehicle by ID (for test assertions).
func (m *MockCacheStore) CachedVehicle(id string) *redis.CachedVehicle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles[id]
}

// CachedBooking returns the cached booking by ID (for test assertions).
func (m *MockCacheStore) CachedBooking(id string) *redis.CachedBooking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockFailingGateway is a payment gateway that can be configured to fail.
type MockFailingGateway struct {
	mu sync.Mutex

	// Control behavior
	FailError error

	// Counters
	ChargeCallCount int32

	// Last request, for assertions.
	LastRequest service.ChargeRequest
}

// NewMockFailingGateway creates a new configurable gateway mock.
func NewMockFailingGateway() *MockFailingGateway {
	return &MockFailingGateway{}
}

func (m *MockFailingGateway) Charge(ctx context.Context, req service.ChargeRequest) (*service.ChargeResult, error) {
	atomic.AddInt32(&m.ChargeCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRequest = req
	if m.FailError != nil {
		return nil, m.FailError
	}
	return &service.ChargeResult{
		TransactionID:    "txn_test",
		GatewayReference: "gw_test",
		Approved:         true,
		Message:          "Payment processed successfully",
		ProcessedAt:      time.Now(),
	}, nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var (
	ErrMockDBConstraint = errors.New("mock: unique constraint violation")
	ErrMockTimeout      = errors.New("mock: operation timeout")
)
