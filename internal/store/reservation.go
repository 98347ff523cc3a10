package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/harlansk/sleipnir/internal/domain"
)

const reservationSchemaVersion = 1

// isoLayout is the wire format for reservation dates, matching the
// millisecond ISO-8601 form emitted by the web clients this state originated
// from (YYYY-MM-DDTHH:mm:ss.sssZ).
const isoLayout = "2006-01-02T15:04:05.000Z"

// isoTime is the typed date codec for persisted reservations. Dates are the
// one non-JSON-native value in the payload, so they get a dedicated per-field
// codec keyed by the known schema rather than a pattern match over every
// string in the blob.
type isoTime struct {
	time.Time
}

func (t isoTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(isoLayout))
}

func (t *isoTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("reservation date is not a string: %w", err)
	}

	parsed, err := time.Parse(isoLayout, s)
	if err != nil {
		// Accept the broader RFC 3339 forms so blobs written by other
		// serializers still rehydrate.
		parsed, err = time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("reservation date %q is not an ISO-8601 timestamp: %w", s, err)
		}
	}

	t.Time = parsed
	return nil
}

// reservationRecord is the persisted shape of a reservation. It mirrors
// domain.Reservation field for field with the date routed through isoTime.
type reservationRecord struct {
	ID          string                   `json:"id"`
	Product     domain.Product           `json:"product"`
	Date        isoTime                  `json:"date"`
	Fee         float64                  `json:"fee"`
	Status      domain.ReservationStatus `json:"status"`
	ContactInfo domain.ContactInfo       `json:"contactInfo"`
}

func toRecord(r domain.Reservation) reservationRecord {
	return reservationRecord{
		ID:          r.ID,
		Product:     r.Product,
		Date:        isoTime{r.Date},
		Fee:         r.Fee,
		Status:      r.Status,
		ContactInfo: r.ContactInfo,
	}
}

func (r reservationRecord) toDomain() domain.Reservation {
	return domain.Reservation{
		ID:          r.ID,
		Product:     r.Product,
		Date:        r.Date.Time,
		Fee:         r.Fee,
		Status:      r.Status,
		ContactInfo: r.ContactInfo,
	}
}

// ReservationStore tracks vehicle reservation requests through their status
// lifecycle. Like the cart store it is write-through, rehydrates once at
// startup, and absorbs all persistence failures; mutations on a missing id
// are no-ops.
type ReservationStore struct {
	mu           sync.Mutex
	reservations []domain.Reservation
	adapter      Adapter
	logger       *slog.Logger
}

// NewReservationStore creates a reservation store bound to the given
// adapter. Call Initialize before first use.
func NewReservationStore(adapter Adapter, logger *slog.Logger) *ReservationStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReservationStore{
		adapter: adapter,
		logger:  logger.With("store", "reservations"),
	}
}

// Initialize rehydrates reservations from the durable medium. Fail-open:
// any load or decode problem leaves the store empty rather than failing
// startup. After decoding, every record's date is re-verified to be a real
// timestamp; records whose date did not survive the round trip are dropped.
func (s *ReservationStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := loadState(ctx, s.adapter, ReservationKey, reservationSchemaVersion, s.logger)
	if raw == nil {
		return
	}

	var records []reservationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		s.logger.Warn("persisted reservation state is malformed, starting empty", "error", err)
		return
	}

	reservations := make([]domain.Reservation, 0, len(records))
	for _, rec := range records {
		if rec.Date.IsZero() {
			s.logger.Warn("dropping persisted reservation with unparseable date", "id", rec.ID)
			continue
		}
		reservations = append(reservations, rec.toDomain())
	}
	s.reservations = reservations
}

// Add appends a fully-formed reservation. The caller supplies the id and all
// required fields. There is deliberately no dedup check: re-reserving the
// same product after a cancellation is allowed.
func (s *ReservationStore) Add(ctx context.Context, r domain.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations = append(s.reservations, r)
	s.persist(ctx)
}

// Update merges patch into the reservation with the given id. No-op if the
// id is absent. A patch whose status is not a legal transition from the
// current status is rejected as a whole and logged; the store never lets a
// caller move a reservation backwards through its lifecycle.
func (s *ReservationStore) Update(ctx context.Context, id string, patch domain.ReservationPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reservations {
		if s.reservations[i].ID != id {
			continue
		}

		if patch.Status != nil && !s.reservations[i].Status.CanTransitionTo(*patch.Status) {
			s.logger.Warn("ignoring illegal reservation status transition",
				"id", id, "from", s.reservations[i].Status, "to", *patch.Status)
			return
		}

		if patch.Date != nil {
			s.reservations[i].Date = *patch.Date
		}
		if patch.Fee != nil {
			s.reservations[i].Fee = *patch.Fee
		}
		if patch.Status != nil {
			s.reservations[i].Status = *patch.Status
		}
		if patch.ContactInfo != nil {
			// Full replacement of the nested struct, not a deep merge.
			s.reservations[i].ContactInfo = *patch.ContactInfo
		}

		s.persist(ctx)
		return
	}
}

// Remove deletes the reservation with the given id. No-op if absent.
func (s *ReservationStore) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reservations {
		if s.reservations[i].ID == id {
			s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the collection unconditionally.
func (s *ReservationStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reservations = nil
	s.persist(ctx)
}

// Get returns the reservation with the given id, if present.
func (s *ReservationStore) Get(id string) (domain.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reservations {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Reservation{}, false
}

// Reservations returns a snapshot of all reservations in insertion order.
func (s *ReservationStore) Reservations() []domain.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Reservation, len(s.reservations))
	copy(out, s.reservations)
	return out
}

// Count returns the number of reservations, recomputed on each call.
func (s *ReservationStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.reservations)
}

// persist writes the full reservation state through the adapter.
// Callers must hold s.mu.
func (s *ReservationStore) persist(ctx context.Context) {
	records := make([]reservationRecord, len(s.reservations))
	for i, r := range s.reservations {
		records[i] = toRecord(r)
	}
	saveState(ctx, s.adapter, ReservationKey, reservationSchemaVersion, records, s.logger)
}
