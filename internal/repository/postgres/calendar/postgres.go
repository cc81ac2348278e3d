package calendar

import (
	"context"
	"errors"

	calendardomain "church-app-go/internal/domain/calendar"
	"church-app-go/internal/repository/postgres/ids"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *calendardomain.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*calendardomain.Event, error) {
	if !ids.Valid(id) {
		return nil, calendardomain.ErrEventNotFound
	}
	var event calendardomain.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, calendardomain.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]calendardomain.Event, error) {
	events := []calendardomain.Event{}
	if err := r.db.WithContext(ctx).Order("date asc").Order("time asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PostgresRepository) Save(ctx context.Context, event *calendardomain.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return calendardomain.ErrEventNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&calendardomain.Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return calendardomain.ErrEventNotFound
	}
	return nil
}
