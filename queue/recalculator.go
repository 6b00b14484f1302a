package queue

import (
	"log"

	"queueflow-backend/models"

	"github.com/google/uuid"
)

// Result reports a recalculation pass.
type Result struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Recalculator restores the waiting-set invariant: within each service,
// positions are 1..N by booking time and each estimate is
// position times the service duration. Running it is a pure re-derivation
// from created_at, so repeated runs with no intervening change are no-ops.
type Recalculator struct {
	store Store
}

func NewRecalculator(store Store) *Recalculator {
	return &Recalculator{store: store}
}

// Run recalculates every waiting token in the scope. A token whose service
// can no longer be resolved, or whose row update fails, is skipped and the
// pass continues; the run never aborts for a single bad row.
func (r *Recalculator) Run(scope Scope) (Result, error) {
	waiting, err := r.store.ListWaitingTokens(scope)
	if err != nil {
		return Result{}, err
	}

	// ListWaitingTokens orders by created_at, so per-service rank is just
	// arrival order within each partition.
	ranks := make(map[uuid.UUID]int)
	durations := make(map[uuid.UUID]int)

	var result Result
	for _, token := range waiting {
		duration, ok := durations[token.ServiceID]
		if !ok {
			duration, err = r.store.ServiceDuration(token.ServiceID)
			if err != nil {
				log.Printf("recalculate: skipping token %s: service %s lookup failed: %v",
					token.TokenNumber, token.ServiceID, err)
				duration = -1
			}
			durations[token.ServiceID] = duration
		}
		if duration < 0 {
			result.Skipped++
			continue
		}

		ranks[token.ServiceID]++
		position := ranks[token.ServiceID]

		if err := r.store.UpdatePositionAndEstimate(token.ID, position, position*duration); err != nil {
			log.Printf("recalculate: skipping token %s: update failed: %v", token.TokenNumber, err)
			result.Skipped++
			continue
		}
		result.Updated++
	}

	return result, nil
}

// RunForToken recalculates the partition a token belongs to. Controllers
// call this after a status transition so displays catch up without waiting
// for the next scheduled sweep.
func (r *Recalculator) RunForToken(token models.Token) {
	if _, err := r.Run(Scope{BranchID: token.BranchID, ServiceID: token.ServiceID}); err != nil {
		log.Printf("recalculate: scoped pass for service %s failed: %v", token.ServiceID, err)
	}
}
