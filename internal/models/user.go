package models

// RoleAdmin is the only user role; authorization is single-tier.
const RoleAdmin = "admin"

// UserIdentity is the principal attached to a request that passed the user
// gate.
type UserIdentity struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
