package family

import (
	"fmt"
	"time"
)

type Family struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	FamilyName   string    `gorm:"not null"`
	HeadOfFamily string    `gorm:"not null"`
	ContactNo    string    `gorm:"not null"`
	Location     string    `gorm:"not null"`
	Address      string    `gorm:"size:500;not null"`
	ImageURL     string    `gorm:"not null;default:''"`
	PublicID     string    `gorm:"not null;default:''"`
	GroupID      string    `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type FamilyWithStats struct {
	Family
	TotalMembers int64
}

// DisplayName is how families are labelled in pickers.
func (f Family) DisplayName() string {
	return fmt.Sprintf("%s (%s)", f.FamilyName, f.HeadOfFamily)
}

type CreateInput struct {
	FamilyName   string `json:"familyName" validate:"required"`
	HeadOfFamily string `json:"headOfFamily" validate:"required"`
	ContactNo    string `json:"contactNo" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Address      string `json:"address" validate:"required,min=10,max=500"`
	GroupID      string `json:"group" validate:"required"`
	ImageURL     string `json:"imageUrl"`
	PublicID     string `json:"publicId"`
}

type UpdateInput struct {
	FamilyName   *string `json:"familyName" validate:"omitnil,min=1"`
	HeadOfFamily *string `json:"headOfFamily" validate:"omitnil,min=1"`
	ContactNo    *string `json:"contactNo" validate:"omitnil,min=1"`
	Location     *string `json:"location" validate:"omitnil,min=1"`
	Address      *string `json:"address" validate:"omitnil,min=10,max=500"`
	GroupID      *string `json:"group" validate:"omitnil,min=1"`
	ImageURL     *string `json:"imageUrl"`
	PublicID     *string `json:"publicId"`
}
