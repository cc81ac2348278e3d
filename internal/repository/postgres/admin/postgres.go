package admin

import (
	"context"
	"errors"
	"time"

	admindomain "church-app-go/internal/domain/admin"
	"church-app-go/internal/repository/postgres/ids"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create maps a unique index hit on email to ErrEmailTaken, which covers two
// concurrent create-admin calls passing the service-level check.
func (r *PostgresRepository) Create(ctx context.Context, account *admindomain.Account) error {
	err := r.db.WithContext(ctx).Create(account).Error
	if isUniqueViolation(err) {
		return admindomain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*admindomain.Account, error) {
	if !ids.Valid(id) {
		return nil, admindomain.ErrAccountNotFound
	}
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*admindomain.Account, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", email))
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*admindomain.Account, error) {
	return r.first(r.db.WithContext(ctx).
		Where("reset_password_token = ? AND reset_password_expires > ?", tokenHash, now))
}

func (r *PostgresRepository) Save(ctx context.Context, account *admindomain.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *PostgresRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&admindomain.Account{}).
		Where("reset_password_token IS NOT NULL AND reset_password_expires <= ?", now).
		Updates(map[string]any{"reset_password_token": nil, "reset_password_expires": nil})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) first(query *gorm.DB) (*admindomain.Account, error) {
	var account admindomain.Account
	if err := query.First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, admindomain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
