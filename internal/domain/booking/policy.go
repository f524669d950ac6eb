package booking

import (
	"vehicle-rental/internal/domain/user"

	"github.com/google/uuid"
)

// CanChangeStatus is the pure authorization rule for booking mutations.
// Admins may request any transition on any booking. Customers may only
// cancel, and only bookings they own.
//
// Ownership is checked here even though the HTTP layer also scopes reads:
// relying on role alone would let any customer cancel any booking by ID.
func CanChangeStatus(role user.Role, callerID, ownerID uuid.UUID, target Status) error {
	if role.IsAdmin() {
		return nil
	}

	if target != StatusCancelled {
		return ErrForbiddenTransition
	}
	if callerID != ownerID {
		return ErrForbiddenTransition
	}
	return nil
}
