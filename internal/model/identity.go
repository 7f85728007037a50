package model

// RoleOwner marks an identity as a restaurant operator. Any other role value
// is treated as a regular customer.
const RoleOwner = "OWNER"

// Identity is the authenticated caller resolved from the session token. It
// is referenced by restaurants (owner) and orders (customer) but never
// stored by this service.
type Identity struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsOwner reports whether the identity carries the restaurant operator role.
func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}
