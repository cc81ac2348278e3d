package stats

import (
	"context"
	"time"

	statsdomain "church-app-go/internal/domain/stats"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const countsQuery = `SELECT
	(SELECT COUNT(*) FROM church_groups) AS total_groups,
	(SELECT COUNT(*) FROM families) AS total_families,
	(SELECT COUNT(*) FROM members) AS total_members,
	(SELECT COUNT(*) FROM members WHERE is_active = ?) AS active_members,
	(SELECT COUNT(*) FROM calendar_events WHERE date >= ?) AS upcoming_events`

const integrityQuery = `SELECT
	(SELECT COUNT(*) FROM members WHERE family_id IS NULL) AS members_without_family,
	(SELECT COUNT(*) FROM members m WHERE m.family_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM families f WHERE f.id = m.family_id)) AS members_dangling_family,
	(SELECT COUNT(*) FROM families f WHERE
		NOT EXISTS (SELECT 1 FROM church_groups g WHERE g.id = f.group_id)) AS families_dangling_group,
	(SELECT COUNT(*) FROM members m WHERE m.group_id IS NOT NULL
		AND NOT EXISTS (SELECT 1 FROM church_groups g WHERE g.id = m.group_id)) AS members_dangling_group`

func (r *PostgresRepository) Counts(ctx context.Context, eventsFrom time.Time) (statsdomain.Summary, error) {
	var row struct {
		Groups         int64 `gorm:"column:total_groups"`
		Families       int64 `gorm:"column:total_families"`
		Members        int64 `gorm:"column:total_members"`
		ActiveMembers  int64 `gorm:"column:active_members"`
		UpcomingEvents int64 `gorm:"column:upcoming_events"`
	}
	if err := r.db.WithContext(ctx).Raw(countsQuery, true, eventsFrom).Scan(&row).Error; err != nil {
		return statsdomain.Summary{}, err
	}
	return statsdomain.Summary{
		Groups:         row.Groups,
		Families:       row.Families,
		Members:        row.Members,
		ActiveMembers:  row.ActiveMembers,
		UpcomingEvents: row.UpcomingEvents,
	}, nil
}

func (r *PostgresRepository) Integrity(ctx context.Context) (statsdomain.Integrity, error) {
	var row statsdomain.Integrity
	if err := r.db.WithContext(ctx).Raw(integrityQuery).Scan(&row).Error; err != nil {
		return statsdomain.Integrity{}, err
	}
	return row, nil
}
