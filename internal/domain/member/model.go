package member

import (
	"time"

	"church-app-go/internal/domain/family"
)

type Member struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Name         string `gorm:"not null"`
	Sex          string `gorm:"not null"`
	BaptismName  string `gorm:"not null"`
	BaptismDate  *time.Time
	DateOfBirth  *time.Time
	Married      *bool
	MarriageDate *time.Time
	DateOfDeath  *time.Time
	IsActive     bool      `gorm:"not null"`
	Role         Role      `gorm:"not null;default:member"`
	FamilyID     *string   `gorm:"type:uuid;index"`
	GroupID      *string   `gorm:"type:uuid;index"`
	ImageURL     string    `gorm:"not null;default:''"`
	PublicID     string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// MemberWithFamily carries the referenced family, nil when the member has
// none or the reference dangles.
type MemberWithFamily struct {
	Member
	Family *family.Family
}

// Nullable distinguishes an absent field from an explicit clear. Set with a
// nil Value clears the column.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

type CreateInput struct {
	Name         string `json:"name" validate:"required"`
	Sex          string `json:"sex" validate:"required"`
	BaptismName  string `json:"baptismName" validate:"required"`
	IsActive     *bool  `json:"isActive" validate:"required"`
	Role         string `json:"role" validate:"required"`
	Married      *bool
	BaptismDate  *time.Time
	DateOfBirth  *time.Time
	MarriageDate *time.Time
	DateOfDeath  *time.Time
	FamilyID     string
	GroupID      string
	ImageURL     string
	PublicID     string
}

type UpdateInput struct {
	Name         *string `json:"name" validate:"omitnil,min=1"`
	Sex          *string `json:"sex" validate:"omitnil,min=1"`
	BaptismName  *string `json:"baptismName" validate:"omitnil,min=1"`
	IsActive     *bool
	Role         *string
	Married      Nullable[bool]
	BaptismDate  Nullable[time.Time]
	DateOfBirth  Nullable[time.Time]
	MarriageDate Nullable[time.Time]
	DateOfDeath  Nullable[time.Time]
	FamilyID     Nullable[string]
	GroupID      Nullable[string]
	ImageURL     *string
	PublicID     *string
}
