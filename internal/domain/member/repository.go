package member

import (
	"context"

	"church-app-go/internal/domain/family"
)

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetWithFamily(ctx context.Context, id string) (*MemberWithFamily, error)
	ListWithFamily(ctx context.Context) ([]MemberWithFamily, error)
	ListByFamily(ctx context.Context, familyID string) ([]Member, error)
	ListWithBirthday(ctx context.Context) ([]MemberWithFamily, error)
	ListByRoles(ctx context.Context, roles []Role) ([]Member, error)
	Update(ctx context.Context, id string, changes map[string]any) error
	Delete(ctx context.Context, id string) error
}

type FamilyLookup interface {
	GetByID(ctx context.Context, id string) (*family.Family, error)
}

type GroupLookup interface {
	Exists(ctx context.Context, id string) (bool, error)
}
