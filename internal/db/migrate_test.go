package db

import (
	"testing"
	"testing/fstest"

	"church-app-go/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gormDB
}

func TestMigrateAppliesInOrderOnce(t *testing.T) {
	gormDB := openTestDB(t)
	migrations := fstest.MapFS{
		"0002_members.sql": {Data: []byte("CREATE TABLE members (id TEXT PRIMARY KEY, group_id TEXT);")},
		"0001_groups.sql":  {Data: []byte("CREATE TABLE church_groups (id TEXT PRIMARY KEY);")},
		"README.md":        {Data: []byte("not a migration")},
	}

	if err := Migrate(gormDB, migrations, logger.Discard()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := Migrate(gormDB, migrations, logger.Discard()); err != nil {
		t.Fatalf("expected rerun to be a no-op, got %v", err)
	}

	var names []string
	if err := gormDB.Table("schema_migrations").Order("filename").Pluck("filename", &names).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(names) != 2 || names[0] != "0001_groups.sql" || names[1] != "0002_members.sql" {
		t.Fatalf("unexpected applied migrations %v", names)
	}
	if !gormDB.Migrator().HasTable("members") {
		t.Fatalf("expected members table")
	}
}

func TestMigrateReportsFailingFile(t *testing.T) {
	gormDB := openTestDB(t)
	migrations := fstest.MapFS{
		"0001_broken.sql": {Data: []byte("CREATE TABLE (")},
	}

	err := Migrate(gormDB, migrations, logger.Discard())
	if err == nil {
		t.Fatalf("expected error")
	}

	var count int64
	gormDB.Raw("SELECT COUNT(1) FROM schema_migrations").Scan(&count)
	if count != 0 {
		t.Fatalf("expected failed migration not recorded, got %d", count)
	}
}
