package order

import "hangwa-be/internal/user"

var transitions = map[Status][]Status{
	StatusPending:       {StatusScheduled, StatusSellerShipped},
	StatusScheduled:     {StatusPending, StatusSellerShipped},
	StatusSellerShipped: {StatusDelivered},
	StatusDelivered:     {},
}

// CanTransition checks a fulfillment status change for the given operator role.
// Re-applying the current status is allowed and treated as a no-op by callers.
func CanTransition(from, to Status, role user.Role) error {
	if !to.Valid() {
		return ErrInvalidStatus
	}
	if from == to {
		return nil
	}

	allowed := false
	for _, next := range transitions[from] {
		if next == to {
			allowed = true
			break
		}
	}
	if !allowed {
		return ErrInvalidTransition
	}

	if to == StatusDelivered && role != user.RoleManager {
		return ErrForbiddenTransition
	}
	return nil
}
