package queue

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"queueflow-backend/models"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for issuer and recalculator tests. The
// sequence bump is mutex-guarded, mirroring the atomicity the SQL upsert
// provides.
type fakeStore struct {
	mu       sync.Mutex
	services map[uuid.UUID]models.Service
	tokens   []*models.Token
	seqs     map[string]int

	// conflictsLeft makes the next N CreateToken calls report a number
	// collision before touching the sequence.
	conflictsLeft int
	// failUpdates makes UpdatePositionAndEstimate fail for these ids.
	failUpdates map[uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		services:    make(map[uuid.UUID]models.Service),
		seqs:        make(map[string]int),
		failUpdates: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) addService(service models.Service) models.Service {
	if service.ID == uuid.Nil {
		service.ID = uuid.New()
	}
	if service.BranchID == uuid.Nil {
		service.BranchID = uuid.New()
	}
	f.services[service.ID] = service
	return service
}

func (f *fakeStore) FindActiveService(branchID, serviceID uuid.UUID) (models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	service, ok := f.services[serviceID]
	if !ok || !service.IsActive || service.BranchID != branchID {
		return models.Service{}, ErrNotFound
	}
	return service, nil
}

func (f *fakeStore) CountActiveTokens(branchID, serviceID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, token := range f.tokens {
		if token.BranchID == branchID && token.ServiceID == serviceID &&
			(token.Status == models.StatusWaiting || token.Status == models.StatusInProgress) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) CreateToken(token *models.Token, prefix string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictsLeft > 0 {
		f.conflictsLeft--
		return ErrNumberConflict
	}
	key := fmt.Sprintf("%s|%s|%s", token.BranchID, token.ServiceID, token.Day)
	f.seqs[key]++
	token.TokenNumber = FormatTokenNumber(prefix, f.seqs[key])
	token.ID = uuid.New()
	stored := *token
	f.tokens = append(f.tokens, &stored)
	return nil
}

func (f *fakeStore) ListWaitingTokens(scope Scope) ([]models.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Token
	for _, token := range f.tokens {
		if token.Status != models.StatusWaiting {
			continue
		}
		if scope.BranchID != uuid.Nil && token.BranchID != scope.BranchID {
			continue
		}
		if scope.ServiceID != uuid.Nil && token.ServiceID != scope.ServiceID {
			continue
		}
		out = append(out, *token)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) UpdatePositionAndEstimate(id uuid.UUID, position, estimate int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates[id] {
		return errors.New("update failed")
	}
	for _, token := range f.tokens {
		if token.ID == id && token.Status == models.StatusWaiting {
			token.PositionInQueue = position
			token.EstimatedWaitTime = estimate
		}
	}
	return nil
}

func (f *fakeStore) ServiceDuration(serviceID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	service, ok := f.services[serviceID]
	if !ok {
		return 0, ErrNotFound
	}
	return service.EstimatedDuration, nil
}

func (f *fakeStore) setStatus(id uuid.UUID, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.ID == id {
			token.Status = status
		}
	}
}

func (f *fakeStore) token(id uuid.UUID) models.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, token := range f.tokens {
		if token.ID == id {
			return *token
		}
	}
	return models.Token{}
}
