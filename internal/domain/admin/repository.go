package admin

import (
	"context"
	"time"

	"church-app-go/pkg/email"
	"church-app-go/pkg/token"
)

type Repository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*Account, error)
	Save(ctx context.Context, account *Account) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type Tokens interface {
	Generate(accountID, role string) (string, time.Time, error)
	Validate(raw string) (*token.Claims, error)
}

type Mailer interface {
	Send(ctx context.Context, msg email.Message) error
}
