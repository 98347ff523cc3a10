package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harlansk/sleipnir/internal/domain"
)

func testReservation(id string) domain.Reservation {
	return domain.Reservation{
		ID:      id,
		Product: testProduct("car-9", 25000),
		Date:    time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC),
		Fee:     2500,
		Status:  domain.ReservationPending,
		ContactInfo: domain.ContactInfo{
			Name:  "Ingrid Holm",
			Email: "ingrid@example.com",
			Phone: "555-0142",
		},
	}
}

func newTestReservations(t *testing.T) (*ReservationStore, *MemoryAdapter) {
	t.Helper()
	adapter := NewMemoryAdapter()
	s := NewReservationStore(adapter, nil)
	s.Initialize(context.Background())
	return s, adapter
}

func TestReservationStore_AddAndCount(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)

	assert.Equal(t, 0, s.Count())

	s.Add(ctx, testReservation("r1"))
	s.Add(ctx, testReservation("r2"))

	assert.Equal(t, 2, s.Count())
}

func TestReservationStore_NoDedupOnAdd(t *testing.T) {
	// Re-reserving the same product is allowed, e.g. after a cancellation.
	ctx := context.Background()
	s, _ := newTestReservations(t)

	s.Add(ctx, testReservation("r1"))
	s.Add(ctx, testReservation("r2"))

	rs := s.Reservations()
	require.Len(t, rs, 2)
	assert.Equal(t, rs[0].Product.ID, rs[1].Product.ID)
}

func TestReservationStore_PartialUpdateLeavesOtherFieldsIntact(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)
	original := testReservation("r1")
	s.Add(ctx, original)

	status := domain.ReservationConfirmed
	s.Update(ctx, "r1", domain.ReservationPatch{Status: &status})

	got, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, domain.ReservationConfirmed, got.Status)
	assert.Equal(t, original.Product, got.Product)
	assert.Equal(t, original.Date, got.Date)
	assert.Equal(t, original.Fee, got.Fee)
	assert.Equal(t, original.ContactInfo, got.ContactInfo)
}

func TestReservationStore_CancellationKeepsFee(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)

	r := testReservation("r1")
	r.Fee = 50
	s.Add(ctx, r)

	status := domain.ReservationCancelled
	s.Update(ctx, "r1", domain.ReservationPatch{Status: &status})

	assert.Equal(t, 1, s.Count(), "cancellation must not remove the record")
	got, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, domain.ReservationCancelled, got.Status)
	assert.Equal(t, 50.0, got.Fee)
}

func TestReservationStore_ContactInfoReplacedWholesale(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)

	r := testReservation("r1")
	r.ContactInfo.Message = "call after 5pm"
	s.Add(ctx, r)

	s.Update(ctx, "r1", domain.ReservationPatch{
		ContactInfo: &domain.ContactInfo{
			Name:  "Ingrid Holm",
			Email: "ingrid.holm@example.com",
			Phone: "555-0199",
		},
	})

	got, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, "555-0199", got.ContactInfo.Phone)
	assert.Empty(t, got.ContactInfo.Message, "nested struct is replaced, not merged")
}

func TestReservationStore_StatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.ReservationStatus
		to      domain.ReservationStatus
		applied bool
	}{
		{name: "pending to confirmed", from: domain.ReservationPending, to: domain.ReservationConfirmed, applied: true},
		{name: "pending to cancelled", from: domain.ReservationPending, to: domain.ReservationCancelled, applied: true},
		{name: "confirmed to completed", from: domain.ReservationConfirmed, to: domain.ReservationCompleted, applied: true},
		{name: "confirmed to cancelled", from: domain.ReservationConfirmed, to: domain.ReservationCancelled, applied: true},
		{name: "pending to completed skips confirmation", from: domain.ReservationPending, to: domain.ReservationCompleted, applied: false},
		{name: "cancelled is terminal", from: domain.ReservationCancelled, to: domain.ReservationPending, applied: false},
		{name: "completed is terminal", from: domain.ReservationCompleted, to: domain.ReservationCancelled, applied: false},
		{name: "same status is idempotent", from: domain.ReservationPending, to: domain.ReservationPending, applied: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s, _ := newTestReservations(t)

			r := testReservation("r1")
			r.Status = tt.from
			s.Add(ctx, r)

			s.Update(ctx, "r1", domain.ReservationPatch{Status: &tt.to})

			got, ok := s.Get("r1")
			require.True(t, ok)
			if tt.applied {
				assert.Equal(t, tt.to, got.Status)
			} else {
				assert.Equal(t, tt.from, got.Status, "illegal transition must be ignored")
			}
		})
	}
}

func TestReservationStore_IllegalTransitionRejectsWholePatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)
	s.Add(ctx, testReservation("r1"))

	status := domain.ReservationCompleted // illegal from pending
	fee := 999.0
	s.Update(ctx, "r1", domain.ReservationPatch{Status: &status, Fee: &fee})

	got, ok := s.Get("r1")
	require.True(t, ok)
	assert.Equal(t, domain.ReservationPending, got.Status)
	assert.Equal(t, 2500.0, got.Fee, "a rejected patch must not apply partially")
}

func TestReservationStore_MissingIDMutationsAreNoOps(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)
	s.Add(ctx, testReservation("r1"))

	status := domain.ReservationConfirmed
	s.Update(ctx, "missing", domain.ReservationPatch{Status: &status})
	s.Remove(ctx, "missing")

	assert.Equal(t, 1, s.Count())
}

func TestReservationStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestReservations(t)

	s.Add(ctx, testReservation("r1"))
	s.Add(ctx, testReservation("r2"))

	s.Remove(ctx, "r1")
	assert.Equal(t, 1, s.Count())

	s.Clear(ctx)
	assert.Equal(t, 0, s.Count())
}

func TestReservationStore_RoundTripPreservesDates(t *testing.T) {
	ctx := context.Background()
	s, adapter := newTestReservations(t)

	r := testReservation("r1")
	r.Date = time.Date(2026, 3, 7, 14, 15, 9, 250*int(time.Millisecond), time.UTC)
	s.Add(ctx, r)

	restored := NewReservationStore(adapter, nil)
	restored.Initialize(ctx)

	got, ok := restored.Get("r1")
	require.True(t, ok)
	assert.True(t, r.Date.Equal(got.Date), "date must survive the round trip as a timestamp")
	assert.Equal(t, r.Product, got.Product)
	assert.Equal(t, r.ContactInfo, got.ContactInfo)
	assert.Equal(t, r.Status, got.Status)
}

func TestReservationStore_PersistedDateIsISO8601(t *testing.T) {
	ctx := context.Background()
	s, adapter := newTestReservations(t)
	s.Add(ctx, testReservation("r1"))

	blob, err := adapter.Load(ctx, ReservationKey)
	require.NoError(t, err)

	var env struct {
		State []struct {
			Date string `json:"date"`
		} `json:"state"`
	}
	require.NoError(t, json.Unmarshal(blob, &env))
	require.Len(t, env.State, 1)
	assert.Equal(t, "2026-09-14T10:30:00.000Z", env.State[0].Date)
}

func TestReservationStore_FailOpenOnBadState(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "not json", blob: "%%%"},
		{name: "version mismatch", blob: `{"version":42,"state":[]}`},
		{name: "date is not a timestamp", blob: `{"version":1,"state":[{"id":"r1","date":"tomorrow-ish"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			adapter := NewMemoryAdapter()
			require.NoError(t, adapter.Save(ctx, ReservationKey, []byte(tt.blob)))

			s := NewReservationStore(adapter, nil)
			s.Initialize(ctx)

			assert.Equal(t, 0, s.Count(), "corrupt state must rehydrate as empty")

			s.Add(ctx, testReservation("r1"))
			assert.Equal(t, 1, s.Count())
		})
	}
}

func TestISOTimeAcceptsRFC3339Fallback(t *testing.T) {
	var ts isoTime
	require.NoError(t, ts.UnmarshalJSON([]byte(`"2026-03-07T14:15:09Z"`)))
	assert.Equal(t, time.Date(2026, 3, 7, 14, 15, 9, 0, time.UTC), ts.Time)

	require.Error(t, (&isoTime{}).UnmarshalJSON([]byte(`"not a date"`)))
	require.Error(t, (&isoTime{}).UnmarshalJSON([]byte(`12345`)))
}
