package queue

import (
	"errors"

	"queueflow-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormStore is the Postgres-backed Store.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindActiveService(branchID, serviceID uuid.UUID) (models.Service, error) {
	var service models.Service
	err := s.db.Where("branch_id = ? AND id = ? AND is_active = true", branchID, serviceID).
		First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Service{}, ErrNotFound
	}
	return service, err
}

func (s *GormStore) CountActiveTokens(branchID, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Token{}).
		Where("branch_id = ? AND service_id = ? AND status IN ?",
			branchID, serviceID, []string{models.StatusWaiting, models.StatusInProgress}).
		Count(&count).Error
	return count, err
}

// CreateToken bumps the per-scope sequence row and inserts the token in a
// single transaction. The upsert is the atomic read-increment-write that
// makes concurrent bookings in one scope impossible to collide; the unique
// index on the number is only a backstop.
func (s *GormStore) CreateToken(token *models.Token, prefix string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var seq int
		err := tx.Raw(`
			INSERT INTO token_sequences (branch_id, service_id, day, last_number)
			VALUES (?, ?, ?, 1)
			ON CONFLICT (branch_id, service_id, day)
			DO UPDATE SET last_number = token_sequences.last_number + 1
			RETURNING last_number
		`, token.BranchID, token.ServiceID, token.Day).Scan(&seq).Error
		if err != nil {
			return err
		}

		token.TokenNumber = FormatTokenNumber(prefix, seq)

		if err := tx.Create(token).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrNumberConflict
			}
			return err
		}
		return nil
	})
}

func (s *GormStore) ListWaitingTokens(scope Scope) ([]models.Token, error) {
	query := s.db.Where("status = ?", models.StatusWaiting)
	if scope.BranchID != uuid.Nil {
		query = query.Where("branch_id = ?", scope.BranchID)
	}
	if scope.ServiceID != uuid.Nil {
		query = query.Where("service_id = ?", scope.ServiceID)
	}

	var tokens []models.Token
	err := query.Order("created_at ASC").Find(&tokens).Error
	return tokens, err
}

// The status guard keeps a pass that races with a transition from writing
// a position onto a token that already left the waiting set.
func (s *GormStore) UpdatePositionAndEstimate(id uuid.UUID, position, estimate int) error {
	return s.db.Model(&models.Token{}).
		Where("id = ? AND status = ?", id, models.StatusWaiting).
		Updates(map[string]interface{}{
			"position_in_queue":   position,
			"estimated_wait_time": estimate,
		}).Error
}

func (s *GormStore) ServiceDuration(serviceID uuid.UUID) (int, error) {
	var service models.Service
	err := s.db.Select("estimated_duration").Where("id = ?", serviceID).First(&service).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	return service.EstimatedDuration, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
