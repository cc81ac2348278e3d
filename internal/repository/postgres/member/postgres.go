package member

import (
	"context"
	"errors"

	familydomain "church-app-go/internal/domain/family"
	memberdomain "church-app-go/internal/domain/member"
	"church-app-go/internal/repository/postgres/ids"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	if !ids.Valid(id) {
		return nil, memberdomain.ErrMemberNotFound
	}
	var member memberdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) GetWithFamily(ctx context.Context, id string) (*memberdomain.MemberWithFamily, error) {
	member, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := r.attachFamilies(ctx, []memberdomain.Member{*member})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (r *PostgresRepository) ListWithFamily(ctx context.Context) ([]memberdomain.MemberWithFamily, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&members).Error; err != nil {
		return nil, err
	}
	return r.attachFamilies(ctx, members)
}

func (r *PostgresRepository) ListByFamily(ctx context.Context, familyID string) ([]memberdomain.Member, error) {
	members := []memberdomain.Member{}
	if !ids.Valid(familyID) {
		return members, nil
	}
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("name asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) ListWithBirthday(ctx context.Context) ([]memberdomain.MemberWithFamily, error) {
	var members []memberdomain.Member
	if err := r.db.WithContext(ctx).
		Where("date_of_birth IS NOT NULL").
		Order("date_of_birth asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return r.attachFamilies(ctx, members)
}

func (r *PostgresRepository) ListByRoles(ctx context.Context, roles []memberdomain.Role) ([]memberdomain.Member, error) {
	members := []memberdomain.Member{}
	if len(roles) == 0 {
		return members, nil
	}
	if err := r.db.WithContext(ctx).
		Where("role IN ?", roles).
		Order("role asc").
		Order("name asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) error {
	if !ids.Valid(id) {
		return memberdomain.ErrMemberNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("id = ?", id).
		Updates(changes)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if !ids.Valid(id) {
		return memberdomain.ErrMemberNotFound
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&memberdomain.Member{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return memberdomain.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresRepository) PublicIDsByGroup(ctx context.Context, groupID string) ([]string, error) {
	return r.publicIDsWhere(ctx, "group_id", groupID)
}

func (r *PostgresRepository) DeleteByGroup(ctx context.Context, groupID string) (int64, error) {
	return r.deleteWhere(ctx, "group_id", groupID)
}

func (r *PostgresRepository) PublicIDsByFamily(ctx context.Context, familyID string) ([]string, error) {
	return r.publicIDsWhere(ctx, "family_id", familyID)
}

func (r *PostgresRepository) DeleteByFamily(ctx context.Context, familyID string) (int64, error) {
	return r.deleteWhere(ctx, "family_id", familyID)
}

func (r *PostgresRepository) PublicIDs(ctx context.Context) ([]string, error) {
	var publicIDs []string
	if err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where("public_id <> ''").
		Pluck("public_id", &publicIDs).Error; err != nil {
		return nil, err
	}
	return publicIDs, nil
}

func (r *PostgresRepository) publicIDsWhere(ctx context.Context, column, value string) ([]string, error) {
	var publicIDs []string
	if !ids.Valid(value) {
		return publicIDs, nil
	}
	if err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Where(column+" = ? AND public_id <> ''", value).
		Pluck("public_id", &publicIDs).Error; err != nil {
		return nil, err
	}
	return publicIDs, nil
}

func (r *PostgresRepository) deleteWhere(ctx context.Context, column, value string) (int64, error) {
	if !ids.Valid(value) {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where(column+" = ?", value).Delete(&memberdomain.Member{})
	return result.RowsAffected, result.Error
}

// attachFamilies loads the referenced families in one query. Dangling
// references leave Family nil.
func (r *PostgresRepository) attachFamilies(ctx context.Context, members []memberdomain.Member) ([]memberdomain.MemberWithFamily, error) {
	familyIDs := lo.Uniq(lo.FilterMap(members, func(m memberdomain.Member, _ int) (string, bool) {
		if m.FamilyID == nil || !ids.Valid(*m.FamilyID) {
			return "", false
		}
		return *m.FamilyID, true
	}))

	byID := map[string]familydomain.Family{}
	if len(familyIDs) > 0 {
		var families []familydomain.Family
		if err := r.db.WithContext(ctx).Where("id IN ?", familyIDs).Find(&families).Error; err != nil {
			return nil, err
		}
		byID = lo.KeyBy(families, func(f familydomain.Family) string { return f.ID })
	}

	out := make([]memberdomain.MemberWithFamily, 0, len(members))
	for _, m := range members {
		row := memberdomain.MemberWithFamily{Member: m}
		if m.FamilyID != nil {
			if fam, ok := byID[*m.FamilyID]; ok {
				row.Family = &fam
			}
		}
		out = append(out, row)
	}
	return out, nil
}
