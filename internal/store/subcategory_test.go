package store

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// Subcategory creation auto-creates the parent category in the same
// transaction. The upsert carries the raw category name and the same owner.
func TestSubcategoryStoreCreate(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertCategorySQL)).
		WithArgs("go", "Go", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSubcategorySQL)).
		WithArgs("generics", "Generics", "go", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	slug, err := s.Create(" Generics ", "Go", "alice")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if slug != "generics" {
		t.Errorf("slug: got %q, want generics", slug)
	}
}

func TestSubcategoryStoreCreateConflict(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(upsertCategorySQL)).
		WithArgs("go", "Go", "alice").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertSubcategorySQL)).
		WithArgs("generics", "Generics", "go", "alice").
		WillReturnError(uniqueViolationErr())
	mock.ExpectRollback()

	if _, err := s.Create("Generics", "Go", "alice"); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestSubcategoryStoreList(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(listSubcategoriesSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"slug", "name"}).
			AddRow("generics", "Generics"))

	items, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "generics" {
		t.Errorf("unexpected items: %+v", items)
	}
}

// Deleting a subcategory removes its join rows and the row itself, and
// nothing else. No post update statement may run.
func TestSubcategoryStoreDelete(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSubcategoryOwnerSQL)).
		WithArgs("generics").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSubcategoryLinksSQL)).
		WithArgs("generics").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(deleteSubcategorySQL)).
		WithArgs("generics").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.Delete("generics", "alice"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestSubcategoryStoreDeleteNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSubcategoryOwnerSQL)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"username"}))

	if err := s.Delete("missing", "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubcategoryStoreDeleteForbidden(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSubcategoryOwnerSQL)).
		WithArgs("generics").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("bob"))

	if err := s.Delete("generics", "alice"); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestSubcategoryStoreDeleteRollsBackOnFailure(t *testing.T) {
	db, mock := newMock(t)
	s := NewSubcategoryStore(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectSubcategoryOwnerSQL)).
		WithArgs("generics").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("alice"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(deleteSubcategoryLinksSQL)).
		WithArgs("generics").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := s.Delete("generics", "alice"); err == nil {
		t.Fatal("expected error")
	}
}
