package domain

import "time"

type StaffRole string

const (
	StaffRoleAdmin        StaffRole = "ADMIN"
	StaffRoleReceptionist StaffRole = "RECEPTIONIST"
)

func (r StaffRole) Valid() bool {
	switch r {
	case StaffRoleAdmin, StaffRoleReceptionist:
		return true
	}
	return false
}

// CanViewRevenue is false for receptionists: they never see financial aggregates.
func (r StaffRole) CanViewRevenue() bool {
	switch r {
	case StaffRoleAdmin:
		return true
	case StaffRoleReceptionist:
		return false
	}
	return false
}

// StaffUser is the acting user threaded through every lifecycle operation.
type StaffUser struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Role      StaffRole `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// SystemUser acts for scheduled jobs.
var SystemUser = StaffUser{Username: "system", Role: StaffRoleAdmin, Active: true}
