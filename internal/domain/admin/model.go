package admin

import "time"

const RoleAdmin = "admin"

type Account struct {
	ID                   string  `gorm:"type:uuid;primaryKey"`
	UserName             string  `gorm:"not null"`
	Email                string  `gorm:"not null;uniqueIndex"`
	PasswordHash         string  `gorm:"not null"`
	Role                 string  `gorm:"not null"`
	ResetPasswordToken   *string `gorm:"index"`
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (Account) TableName() string {
	return "admin_accounts"
}

func (a Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Session is the outcome of a successful login.
type Session struct {
	Account   *Account
	Token     string
	ExpiresAt time.Time
}

type CreateInput struct {
	UserName string `json:"userName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}
