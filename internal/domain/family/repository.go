package family

import "context"

type Repository interface {
	Create(ctx context.Context, family *Family) error
	GetByID(ctx context.Context, id string) (*Family, error)
	Exists(ctx context.Context, id string) (bool, error)
	ListWithStats(ctx context.Context) ([]FamilyWithStats, error)
	ListByGroup(ctx context.Context, groupID string) ([]Family, error)
	Update(ctx context.Context, id string, changes map[string]any) (*Family, error)
	Delete(ctx context.Context, id string) error
}

// GroupLookup answers whether a referenced group exists.
type GroupLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Dependents are rows that reference a family and go away with it.
type Dependents interface {
	PublicIDsByFamily(ctx context.Context, familyID string) ([]string, error)
	DeleteByFamily(ctx context.Context, familyID string) (int64, error)
}
