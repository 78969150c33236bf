package repositories

import (
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/domain/models"
)

func sampleFilter(name string) models.SavedFilter {
	criteria := models.DefaultCriteria()
	criteria.StatusFilter = string(models.OrderStatusPending)
	criteria.SearchTerm = "lego"
	return models.SavedFilter{Name: name, Filters: criteria}
}

func TestFileRepositorySaveListDelete(t *testing.T) {
	repo := NewFileSavedFilterRepository(filepath.Join(t.TempDir(), "filters.json"))

	saved, err := repo.Save(sampleFilter("pending lego"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("save must assign an id")
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "pending lego" {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list[0].Filters.StatusFilter != string(models.OrderStatusPending) {
		t.Fatalf("criteria not round-tripped: %+v", list[0].Filters)
	}

	if err := repo.Delete(saved.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	list, err = repo.List()
	if err != nil {
		t.Fatalf("list after delete failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %+v", list)
	}
}

func TestFileRepositorySaveUpdatesExisting(t *testing.T) {
	repo := NewFileSavedFilterRepository(filepath.Join(t.TempDir(), "filters.json"))

	saved, err := repo.Save(sampleFilter("first"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	saved.Name = "renamed"
	if _, err := repo.Save(saved); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	list, _ := repo.List()
	if len(list) != 1 || list[0].Name != "renamed" {
		t.Fatalf("expected in-place update, got %+v", list)
	}
}

func TestFileRepositoryRejectsEmptyName(t *testing.T) {
	repo := NewFileSavedFilterRepository(filepath.Join(t.TempDir(), "filters.json"))

	if _, err := repo.Save(models.SavedFilter{Name: "   "}); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestFileRepositoryDeleteMissing(t *testing.T) {
	repo := NewFileSavedFilterRepository(filepath.Join(t.TempDir(), "filters.json"))

	if err := repo.Delete("nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestMySQLRepositorySave(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO saved_filters").
		WithArgs(sqlmock.AnyArg(), "pending lego", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewMySQLSavedFilterRepository(db)
	saved, err := repo.Save(sampleFilter("pending lego"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("save must assign an id")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMySQLRepositoryListDecodesCriteria(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "filters"}).
		AddRow("f1", "pending lego", []byte(`{"searchTerm":"lego","statusFilter":"pending","sortBy":"recent","sortOrder":"desc"}`))
	mock.ExpectQuery("SELECT id, name, filters FROM saved_filters").WillReturnRows(rows)

	repo := NewMySQLSavedFilterRepository(db)
	list, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(list))
	}
	if list[0].Filters.SearchTerm != "lego" || list[0].Filters.StatusFilter != "pending" {
		t.Fatalf("criteria not decoded: %+v", list[0].Filters)
	}
}

func TestMySQLRepositoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM saved_filters").
		WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLSavedFilterRepository(db)
	if err := repo.Delete("nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
