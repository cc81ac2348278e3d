package group

import (
	"context"
	"errors"

	groupdomain "church-app-go/internal/domain/group"
	"church-app-go/internal/repository/postgres/ids"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, group *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*groupdomain.Group, error) {
	if !ids.Valid(id) {
		return nil, groupdomain.ErrGroupNotFound
	}
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	if !ids.Valid(id) {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&groupdomain.Group{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListWithStats(ctx context.Context) ([]groupdomain.GroupWithStats, error) {
	var rows []groupdomain.GroupWithStats
	if err := r.db.WithContext(ctx).
		Table("church_groups").
		Select("church_groups.*, (SELECT COUNT(*) FROM families WHERE families.group_id = church_groups.id) AS total_families").
		Order("church_groups.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) (*groupdomain.Group, error) {
	if !ids.Valid(id) {
		return nil, groupdomain.ErrGroupNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&groupdomain.Group{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, groupdomain.ErrGroupNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return groupdomain.ErrGroupNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&groupdomain.Group{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrGroupNotFound
	}
	return nil
}

// PublicIDs returns every non-empty group image id.
func (r *PostgresRepository) PublicIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&groupdomain.Group{}).
		Where("public_id <> ''").
		Pluck("public_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
