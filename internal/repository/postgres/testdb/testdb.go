// Package testdb opens an in-memory SQLite database with the church schema
// for repository tests.
package testdb

import (
	"testing"

	"church-app-go/internal/domain/admin"
	"church-app-go/internal/domain/calendar"
	"church-app-go/internal/domain/family"
	"church-app-go/internal/domain/group"
	"church-app-go/internal/domain/member"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// each pooled connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := gormDB.AutoMigrate(
		&group.Group{},
		&family.Family{},
		&member.Member{},
		&calendar.Event{},
		&admin.Account{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return gormDB
}
