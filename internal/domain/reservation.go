package domain

import "time"

// ReservationStatus tracks a reservation through its lifecycle:
//
//	pending -> confirmed -> completed
//	pending | confirmed -> cancelled
//
// completed and cancelled are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. All legal transitions are centralized here; callers and the store
// consult this rather than trusting arbitrary status overwrites. A no-op
// transition (s == next) is always allowed.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case ReservationPending:
		return next == ReservationConfirmed || next == ReservationCancelled
	case ReservationConfirmed:
		return next == ReservationCompleted || next == ReservationCancelled
	default:
		// completed and cancelled are terminal
		return false
	}
}

// ContactInfo holds the contact details attached to a reservation.
// Updates replace the whole struct; sub-fields are never merged individually.
type ContactInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// Reservation is a request to hold a vehicle ahead of purchase. Product is a
// by-value snapshot taken at creation time; later catalog edits do not reach
// stored reservations. ID is caller-generated (UUID) and immutable.
type Reservation struct {
	ID          string            `json:"id"`
	Product     Product           `json:"product"`
	Date        time.Time         `json:"date"`
	Fee         float64           `json:"fee"`
	Status      ReservationStatus `json:"status"`
	ContactInfo ContactInfo       `json:"contactInfo"`
}

// ReservationPatch is a partial update applied to a reservation by id.
// Nil fields are left untouched. ContactInfo, when set, replaces the nested
// struct wholesale.
type ReservationPatch struct {
	Date        *time.Time
	Fee         *float64
	Status      *ReservationStatus
	ContactInfo *ContactInfo
}

// ReservationFeeRate is the fraction of the product price charged to hold a
// vehicle. The fee is deducted from the final purchase price.
const ReservationFeeRate = 0.10
