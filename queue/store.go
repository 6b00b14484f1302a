package queue

import (
	"queueflow-backend/models"

	"github.com/google/uuid"
)

// Scope narrows an operation to a branch and/or service. The zero value
// means the whole waiting set.
type Scope struct {
	BranchID  uuid.UUID
	ServiceID uuid.UUID
}

// Store is the persistence contract the issuer and recalculator run
// against. The gorm implementation lives in gorm_store.go; tests use an
// in-memory fake.
type Store interface {
	// FindActiveService resolves an active service scoped to a branch.
	// Returns ErrNotFound for unknown or inactive services.
	FindActiveService(branchID, serviceID uuid.UUID) (models.Service, error)

	// CountActiveTokens counts waiting and in_progress tokens in the
	// (branch, service) scope.
	CountActiveTokens(branchID, serviceID uuid.UUID) (int64, error)

	// CreateToken allocates the next ordinal for the token's
	// (branch, service, day) scope, formats the token number with the
	// given prefix and inserts the row, all atomically. Returns
	// ErrNumberConflict if the unique index rejects the number.
	CreateToken(token *models.Token, prefix string) error

	// ListWaitingTokens returns waiting tokens in the scope ordered by
	// created_at ascending.
	ListWaitingTokens(scope Scope) ([]models.Token, error)

	// UpdatePositionAndEstimate writes a waiting token's queue position
	// and wait estimate. Tokens that have left the waiting state are
	// left untouched.
	UpdatePositionAndEstimate(id uuid.UUID, position, estimate int) error

	// ServiceDuration returns a service's estimated handling duration in
	// minutes. Returns ErrNotFound for dangling references.
	ServiceDuration(serviceID uuid.UUID) (int, error)
}
