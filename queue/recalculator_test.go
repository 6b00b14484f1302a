package queue

import (
	"testing"

	"queueflow-backend/models"

	"github.com/google/uuid"
)

func bookAll(t *testing.T, issuer *Issuer, service models.Service, count int) []BookingResult {
	t.Helper()
	results := make([]BookingResult, 0, count)
	for i := 0; i < count; i++ {
		result, err := issuer.Book(bookingFor(service))
		if err != nil {
			t.Fatalf("Book: %v", err)
		}
		results = append(results, result)
	}
	return results
}

func assertWaiting(t *testing.T, store *fakeStore, id uuid.UUID, position, estimate int) {
	t.Helper()
	token := store.token(id)
	if token.PositionInQueue != position {
		t.Errorf("token %s: position = %d, want %d", token.TokenNumber, token.PositionInQueue, position)
	}
	if token.EstimatedWaitTime != estimate {
		t.Errorf("token %s: estimate = %d, want %d", token.TokenNumber, token.EstimatedWaitTime, estimate)
	}
}

func TestRunAssignsContiguousPositions(t *testing.T) {
	store := newFakeStore()
	general := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	passport := store.addService(models.Service{
		Name: "Passport Renewal", EstimatedDuration: 20, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	// Interleave bookings across the two services; partitions must rank
	// independently.
	g1, _ := issuer.Book(bookingFor(general))
	p1, _ := issuer.Book(bookingFor(passport))
	g2, _ := issuer.Book(bookingFor(general))
	p2, _ := issuer.Book(bookingFor(passport))
	g3, _ := issuer.Book(bookingFor(general))

	result, err := recalc.Run(Scope{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Updated != 5 || result.Skipped != 0 {
		t.Fatalf("Run = %+v, want 5 updated, 0 skipped", result)
	}

	assertWaiting(t, store, g1.ID, 1, 15)
	assertWaiting(t, store, g2.ID, 2, 30)
	assertWaiting(t, store, g3.ID, 3, 45)
	assertWaiting(t, store, p1.ID, 1, 20)
	assertWaiting(t, store, p2.ID, 2, 40)
}

func TestRunIsIdempotent(t *testing.T) {
	store := newFakeStore()
	service := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	bookings := bookAll(t, issuer, service, 4)

	if _, err := recalc.Run(Scope{}); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	before := make([]models.Token, 0, len(bookings))
	for _, booking := range bookings {
		before = append(before, store.token(booking.ID))
	}

	if _, err := recalc.Run(Scope{}); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	for i, booking := range bookings {
		after := store.token(booking.ID)
		if after.PositionInQueue != before[i].PositionInQueue ||
			after.EstimatedWaitTime != before[i].EstimatedWaitTime {
			t.Errorf("token %s changed on redundant run: %+v -> %+v",
				after.TokenNumber, before[i], after)
		}
	}
}

func TestCancellationCompactsPositions(t *testing.T) {
	store := newFakeStore()
	service := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	bookings := bookAll(t, issuer, service, 3)
	if _, err := recalc.Run(Scope{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Cancel GE002; the remaining waiting tokens close the gap.
	store.setStatus(bookings[1].ID, models.StatusCancelled)
	if _, err := recalc.Run(Scope{}); err != nil {
		t.Fatalf("Run after cancel: %v", err)
	}

	assertWaiting(t, store, bookings[0].ID, 1, 15)
	assertWaiting(t, store, bookings[2].ID, 2, 30)
	if got := store.token(bookings[1].ID).Status; got != models.StatusCancelled {
		t.Errorf("cancelled token status = %q", got)
	}
}

func TestStartedTokenLeavesWaitingPartition(t *testing.T) {
	store := newFakeStore()
	service := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	bookings := bookAll(t, issuer, service, 3)
	if _, err := recalc.Run(Scope{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	store.setStatus(bookings[0].ID, models.StatusInProgress)
	result, err := recalc.Run(Scope{})
	if err != nil {
		t.Fatalf("Run after start: %v", err)
	}
	if result.Updated != 2 {
		t.Fatalf("Updated = %d, want 2", result.Updated)
	}

	assertWaiting(t, store, bookings[1].ID, 1, 15)
	assertWaiting(t, store, bookings[2].ID, 2, 30)
}

func TestRunSkipsDanglingService(t *testing.T) {
	store := newFakeStore()
	service := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	healthy := bookAll(t, issuer, service, 2)

	// Two tokens whose service was deleted mid-flight.
	orphanService := uuid.New()
	for i := 0; i < 2; i++ {
		result, err := issuer.Book(bookingFor(service))
		if err != nil {
			t.Fatalf("Book: %v", err)
		}
		store.mu.Lock()
		for _, token := range store.tokens {
			if token.ID == result.ID {
				token.ServiceID = orphanService
			}
		}
		store.mu.Unlock()
	}

	result, err := recalc.Run(Scope{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Updated != 2 || result.Skipped != 2 {
		t.Fatalf("Run = %+v, want 2 updated, 2 skipped", result)
	}
	assertWaiting(t, store, healthy[0].ID, 1, 15)
	assertWaiting(t, store, healthy[1].ID, 2, 30)
}

func TestRunSkipsFailedRowUpdate(t *testing.T) {
	store := newFakeStore()
	service := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	bookings := bookAll(t, issuer, service, 3)
	store.failUpdates[bookings[1].ID] = true

	result, err := recalc.Run(Scope{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Updated != 2 || result.Skipped != 1 {
		t.Fatalf("Run = %+v, want 2 updated, 1 skipped", result)
	}
	// The failed row keeps its rank in the ordering; later tokens are not
	// renumbered around it.
	assertWaiting(t, store, bookings[0].ID, 1, 15)
	assertWaiting(t, store, bookings[2].ID, 3, 45)
}

func TestRunScopedToService(t *testing.T) {
	store := newFakeStore()
	general := store.addService(models.Service{
		Name: "General Enquiry", EstimatedDuration: 15, IsActive: true,
	})
	passport := store.addService(models.Service{
		Name: "Passport Renewal", EstimatedDuration: 20, IsActive: true,
	})
	issuer := newTestIssuer(store)
	recalc := NewRecalculator(store)

	g := bookAll(t, issuer, general, 2)
	p := bookAll(t, issuer, passport, 2)

	result, err := recalc.Run(Scope{BranchID: general.BranchID, ServiceID: general.ID})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Updated != 2 {
		t.Fatalf("Updated = %d, want 2", result.Updated)
	}
	assertWaiting(t, store, g[0].ID, 1, 15)
	assertWaiting(t, store, g[1].ID, 2, 30)
	// Out-of-scope tokens untouched.
	if token := store.token(p[0].ID); token.PositionInQueue != 0 {
		t.Errorf("out-of-scope token %s got position %d", token.TokenNumber, token.PositionInQueue)
	}
}
