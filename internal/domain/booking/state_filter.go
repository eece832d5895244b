package booking

import (
	"fmt"

	"github.com/Kir-Mi/shareit/internal/domain"
)

// StateFilter is the six-way temporal/status classification used to scope
// booking listings. CURRENT, PAST and FUTURE are evaluated against wall-clock
// "now" at query time; WAITING and REJECTED match the stored status.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter converts a state token to a StateFilter. The match is
// case-sensitive and exact; anything else is a caller error.
func ParseStateFilter(s string) (StateFilter, error) {
	filter := StateFilter(s)
	switch filter {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return filter, nil
	}
	return "", domain.NewValidationError(fmt.Sprintf("Unknown state: %s", s))
}

// Role selects which side of a booking the listing subject is on.
type Role string

const (
	// RoleBooker filters bookings created by the subject.
	RoleBooker Role = "BOOKER"
	// RoleOwner filters bookings on items owned by the subject.
	RoleOwner Role = "OWNER"
)
