package group

import "context"

type Repository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListWithStats(ctx context.Context) ([]GroupWithStats, error)
	Update(ctx context.Context, id string, changes map[string]any) (*Group, error)
	Delete(ctx context.Context, id string) error
}

// Dependents are rows that reference a group and go away with it.
type Dependents interface {
	PublicIDsByGroup(ctx context.Context, groupID string) ([]string, error)
	DeleteByGroup(ctx context.Context, groupID string) (int64, error)
}
