package postgres

import (
	"context"

	"skatehubba/internal/domain/entity"
	"skatehubba/internal/domain/repository"
	"skatehubba/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type signupRepository struct {
	db *gorm.DB
}

// NewSignupRepository creates a GORM-backed SignupRepository.
func NewSignupRepository(db *gorm.DB) repository.SignupRepository {
	return &signupRepository{db: db}
}

// Create inserts with ON CONFLICT (email) DO NOTHING; zero affected rows
// means the email was already on record.
func (r *signupRepository) Create(ctx context.Context, signup *entity.Signup) error {
	row := toSignupModel(signup)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(row)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(result.Error, "failed to insert signup")
	}
	if result.RowsAffected == 0 {
		return repository.ErrDuplicateEmail
	}

	return nil
}

func toSignupModel(s *entity.Signup) *model.SignupModel {
	return &model.SignupModel{
		ID:        s.ID,
		Email:     s.Email,
		Source:    s.Source,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		Verified:  s.Verified,
		CreatedAt: s.CreatedAt,
	}
}
