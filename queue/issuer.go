package queue

import (
	"errors"
	"fmt"
	"time"

	"queueflow-backend/models"

	"github.com/google/uuid"
)

// BookingInput carries a customer's booking request.
type BookingInput struct {
	BranchID      uuid.UUID
	ServiceID     uuid.UUID
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
}

// BookingResult is what a freshly issued token looks like to the caller.
type BookingResult struct {
	ID                uuid.UUID `json:"id"`
	TokenNumber       string    `json:"token_number"`
	Status            string    `json:"status"`
	EstimatedWaitTime int       `json:"estimated_wait_time"`
}

// Issuer allocates tokens: a unique display number per
// (branch, service, day) scope plus a first-order wait estimate.
type Issuer struct {
	store Store
	now   func() time.Time
}

func NewIssuer(store Store) *Issuer {
	return &Issuer{store: store, now: time.Now}
}

// Book validates the request, derives the next token number for the scope
// and inserts the token in waiting state. The number allocation runs
// atomically in the store; if the unique-index backstop still reports a
// collision the booking is retried exactly once.
func (i *Issuer) Book(input BookingInput) (BookingResult, error) {
	if err := validateBooking(input); err != nil {
		return BookingResult{}, err
	}

	service, err := i.store.FindActiveService(input.BranchID, input.ServiceID)
	if err != nil {
		return BookingResult{}, err
	}

	// Booking-time estimate counts everyone ahead of the new token,
	// including tokens already being served. The recalculator refines
	// this to a rank-based figure on its next pass.
	active, err := i.store.CountActiveTokens(input.BranchID, input.ServiceID)
	if err != nil {
		return BookingResult{}, err
	}
	estimate := (int(active) + 1) * service.EstimatedDuration

	prefix := NumberPrefix(service)

	var token models.Token
	for attempt := 0; ; attempt++ {
		now := i.now()
		token = models.Token{
			BranchID:          input.BranchID,
			ServiceID:         input.ServiceID,
			Day:               DayKey(now),
			CustomerName:      input.CustomerName,
			CustomerPhone:     input.CustomerPhone,
			CustomerEmail:     input.CustomerEmail,
			Status:            models.StatusWaiting,
			EstimatedWaitTime: estimate,
			CreatedAt:         now,
		}
		err = i.store.CreateToken(&token, prefix)
		if err == nil {
			break
		}
		if errors.Is(err, ErrNumberConflict) && attempt == 0 {
			continue
		}
		return BookingResult{}, err
	}

	return BookingResult{
		ID:                token.ID,
		TokenNumber:       token.TokenNumber,
		Status:            token.Status,
		EstimatedWaitTime: token.EstimatedWaitTime,
	}, nil
}

func validateBooking(input BookingInput) error {
	switch {
	case input.BranchID == uuid.Nil:
		return fmt.Errorf("%w: branch is required", ErrValidation)
	case input.ServiceID == uuid.Nil:
		return fmt.Errorf("%w: service is required", ErrValidation)
	case input.CustomerName == "":
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	case input.CustomerPhone == "":
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	}
	return nil
}
