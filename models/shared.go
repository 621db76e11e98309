package models

// Actor roles.
const (
	RoleCustomer = "customer"
	RoleProvider = "provider"
	RoleAdmin    = "admin"
)

// Actor identifies the authenticated caller of a state-machine operation.
// It is built from the JWT session by the auth middleware and passed
// explicitly into every mutating service call.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
