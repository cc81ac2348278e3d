package group

import (
	"context"
	"errors"
	"testing"

	groupdomain "church-app-go/internal/domain/group"
	"church-app-go/internal/repository/postgres/testdb"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func seedGroup(t *testing.T, repo *PostgresRepository, name, publicID string) *groupdomain.Group {
	t.Helper()
	g := &groupdomain.Group{
		ID:            uuid.NewString(),
		GroupName:     name,
		LeaderName:    "Leader",
		SecretaryName: "Secretary",
		Location:      "Hall",
		PublicID:      publicID,
	}
	if err := repo.Create(context.Background(), g); err != nil {
		t.Fatalf("create group: %v", err)
	}
	return g
}

func insertFamily(t *testing.T, db *gorm.DB, groupID string) {
	t.Helper()
	err := db.Exec(
		"INSERT INTO families (id, family_name, head_of_family, contact_no, location, address, group_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
		uuid.NewString(), "Smith", "John", "0123", "Kochi", "12 Church Road", groupID,
	).Error
	if err != nil {
		t.Fatalf("insert family: %v", err)
	}
}

func TestListWithStatsCountsFamilies(t *testing.T) {
	db := testdb.Open(t)
	repo := NewPostgres(db)
	youth := seedGroup(t, repo, "Youth", "")
	seedGroup(t, repo, "Choir", "")
	insertFamily(t, db, youth.ID)
	insertFamily(t, db, youth.ID)

	rows, err := repo.ListWithStats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(rows))
	}
	counts := map[string]int64{}
	for _, row := range rows {
		counts[row.GroupName] = row.TotalFamilies
	}
	if counts["Youth"] != 2 || counts["Choir"] != 0 {
		t.Fatalf("unexpected family counts %v", counts)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	g := seedGroup(t, repo, "Youth", "")

	updated, err := repo.Update(context.Background(), g.ID, map[string]any{"location": "South Hall"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Location != "South Hall" || updated.GroupName != "Youth" {
		t.Fatalf("unexpected update result %+v", updated)
	}

	if err := repo.Delete(context.Background(), g.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := repo.Delete(context.Background(), g.ID); !errors.Is(err, groupdomain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
	if _, err := repo.Update(context.Background(), g.ID, map[string]any{"location": "x"}); !errors.Is(err, groupdomain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound on update, got %v", err)
	}
}

func TestMalformedIDIsNotFound(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))

	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, groupdomain.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
	ok, err := repo.Exists(context.Background(), "not-a-uuid")
	if err != nil || ok {
		t.Fatalf("expected false, got %v, %v", ok, err)
	}
}

func TestPublicIDsSkipsEmpty(t *testing.T) {
	repo := NewPostgres(testdb.Open(t))
	seedGroup(t, repo, "Youth", "church/youth")
	seedGroup(t, repo, "Choir", "")

	got, err := repo.PublicIDs(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[0] != "church/youth" {
		t.Fatalf("unexpected ids %v", got)
	}
}
