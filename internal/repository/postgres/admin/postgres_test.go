package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	admindomain "church-app-go/internal/domain/admin"
	"church-app-go/internal/repository/postgres/testdb"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

func TestResetTokenLookupAndPurge(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fresh := &admindomain.Account{
		ID:                   uuid.NewString(),
		UserName:             "fresh",
		Email:                "fresh@church.example",
		PasswordHash:         "hash",
		Role:                 admindomain.RoleAdmin,
		ResetPasswordToken:   lo.ToPtr("fresh-hash"),
		ResetPasswordExpires: lo.ToPtr(now.Add(time.Hour)),
	}
	stale := &admindomain.Account{
		ID:                   uuid.NewString(),
		UserName:             "stale",
		Email:                "stale@church.example",
		PasswordHash:         "hash",
		Role:                 admindomain.RoleAdmin,
		ResetPasswordToken:   lo.ToPtr("stale-hash"),
		ResetPasswordExpires: lo.ToPtr(now.Add(-time.Hour)),
	}
	for _, a := range []*admindomain.Account{fresh, stale} {
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("create account: %v", err)
		}
	}

	got, err := repo.GetByResetToken(context.Background(), "fresh-hash", now)
	if err != nil || got.ID != fresh.ID {
		t.Fatalf("expected fresh account, got %+v, %v", got, err)
	}
	if _, err := repo.GetByResetToken(context.Background(), "stale-hash", now); !errors.Is(err, admindomain.ErrAccountNotFound) {
		t.Fatalf("expected expired token rejected, got %v", err)
	}

	n, err := repo.ClearExpiredResetTokens(context.Background(), now)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 token cleared, got %d, %v", n, err)
	}
	cleared, _ := repo.GetByEmail(context.Background(), "stale@church.example")
	if cleared.ResetPasswordToken != nil {
		t.Fatalf("expected stale token cleared")
	}
}

func TestEmailIsUnique(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	first := &admindomain.Account{ID: uuid.NewString(), UserName: "a", Email: "a@church.example", PasswordHash: "h", Role: "admin"}
	dup := &admindomain.Account{ID: uuid.NewString(), UserName: "b", Email: "a@church.example", PasswordHash: "h", Role: "admin"}

	if err := repo.Create(context.Background(), first); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Fatalf("expected unique violation")
	}
	if _, err := repo.GetByID(context.Background(), "nope"); !errors.Is(err, admindomain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
