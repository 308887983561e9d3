package domain

import "time"

// UserType distinguishes customers from vendor staff.
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeVendor   UserType = "vendor"
	UserTypeDriver   UserType = "driver"
)

// User represents an account in the system. PasswordHash is a bcrypt hash
// and must never be serialized in responses.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	UserType     UserType
	CreatedAt    time.Time
}
