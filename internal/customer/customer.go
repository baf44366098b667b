package customer

import "fmt"

// Role identifies the account role.
type Role string

// Known roles.
const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
)

// Status identifies the account lifecycle state.
type Status string

// Known statuses.
const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusPending   Status = "pending"
)

// Customer is the account slice the pricing flow needs. It is supplied by the
// caller per request and never persisted here.
type Customer struct {
	ID           int64
	Email        string
	Name         string
	Role         Role
	Status       Status
	DiscountTier int
}

// IsActive reports whether the account may transact.
func (c Customer) IsActive() bool {
	return c.Status == StatusActive
}

// IsAdmin reports whether the account has the admin role.
func (c Customer) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// DisplayName renders the customer for human-readable output.
func (c Customer) DisplayName() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Email)
}
