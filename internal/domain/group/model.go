package group

import "time"

type Group struct {
	ID            string    `gorm:"type:uuid;primaryKey"`
	GroupName     string    `gorm:"not null"`
	LeaderName    string    `gorm:"not null"`
	SecretaryName string    `gorm:"not null"`
	Location      string    `gorm:"not null"`
	ImageURL      string    `gorm:"not null;default:''"`
	PublicID      string    `gorm:"not null;default:''"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Group) TableName() string {
	return "church_groups"
}

type GroupWithStats struct {
	Group
	TotalFamilies int64
}

type CreateInput struct {
	GroupName     string `json:"groupName" validate:"required"`
	LeaderName    string `json:"leaderName" validate:"required"`
	SecretaryName string `json:"secretaryName" validate:"required"`
	Location      string `json:"location" validate:"required"`
	ImageURL      string `json:"imageUrl"`
	PublicID      string `json:"publicId"`
}

// UpdateInput carries only the submitted fields; nil means unchanged.
type UpdateInput struct {
	GroupName     *string `json:"groupName" validate:"omitnil,min=1"`
	LeaderName    *string `json:"leaderName" validate:"omitnil,min=1"`
	SecretaryName *string `json:"secretaryName" validate:"omitnil,min=1"`
	Location      *string `json:"location" validate:"omitnil,min=1"`
	ImageURL      *string `json:"imageUrl"`
	PublicID      *string `json:"publicId"`
}
