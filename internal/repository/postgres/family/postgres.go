package family

import (
	"context"
	"errors"

	familydomain "church-app-go/internal/domain/family"
	"church-app-go/internal/repository/postgres/ids"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*familydomain.Family, error) {
	if !ids.Valid(id) {
		return nil, familydomain.ErrFamilyNotFound
	}
	var family familydomain.Family
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	if !ids.Valid(id) {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) ListWithStats(ctx context.Context) ([]familydomain.FamilyWithStats, error) {
	var rows []familydomain.FamilyWithStats
	if err := r.db.WithContext(ctx).
		Table("families").
		Select("families.*, (SELECT COUNT(*) FROM members WHERE members.family_id = families.id) AS total_members").
		Order("families.created_at asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListByGroup(ctx context.Context, groupID string) ([]familydomain.Family, error) {
	families := []familydomain.Family{}
	if !ids.Valid(groupID) {
		return families, nil
	}
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("family_name asc").
		Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) (*familydomain.Family, error) {
	if !ids.Valid(id) {
		return nil, familydomain.ErrFamilyNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, familydomain.ErrFamilyNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return familydomain.ErrFamilyNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&familydomain.Family{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return familydomain.ErrFamilyNotFound
	}
	return nil
}

// PublicIDsByGroup and DeleteByGroup serve the group cascade.
func (r *PostgresRepository) PublicIDsByGroup(ctx context.Context, groupID string) ([]string, error) {
	var publicIDs []string
	if !ids.Valid(groupID) {
		return publicIDs, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("group_id = ? AND public_id <> ''", groupID).
		Pluck("public_id", &publicIDs).Error; err != nil {
		return nil, err
	}
	return publicIDs, nil
}

func (r *PostgresRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	if !ids.Valid(groupID) {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("group_id = ?", groupID).Delete(&familydomain.Family{})
	return result.RowsAffected, result.Error
}

func (r *PostgresRepository) PublicIDs(ctx context.Context) ([]string, error) {
	var publicIDs []string
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Where("public_id <> ''").
		Pluck("public_id", &publicIDs).Error; err != nil {
		return nil, err
	}
	return publicIDs, nil
}
