package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleUser           Role = "user"
	RoleBookingManager Role = "booking_manager"
	RoleAdmin          Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleBookingManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Action enumerates the operations gated by role rather than ownership.
type Action string

const (
	ActionManageServices   Action = "manage_services"
	ActionManageSlots      Action = "manage_slots"
	ActionManageAnyBooking Action = "manage_any_booking"
	ActionListAllBookings  Action = "list_all_bookings"
	ActionModerateRates    Action = "moderate_rates"
)

// Can reports whether a role is allowed to perform an action.
// Ownership checks (a user mutating their own booking or rating) are
// handled by the usecases, not here.
func Can(role Role, action Action) bool {
	switch action {
	case ActionManageServices, ActionManageSlots, ActionManageAnyBooking, ActionListAllBookings, ActionModerateRates:
		return role == RoleAdmin || role == RoleBookingManager
	default:
		return false
	}
}
