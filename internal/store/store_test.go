// store_test.go provides shared sqlmock helpers for the store unit tests.
// The mocks enforce statement order, so cascade ordering and transaction
// boundaries are asserted without a running PostgreSQL.
package store

import (
	"database/sql"
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

// passthroughConverter accepts every argument type as-is. The pgx driver
// supports richer bind types than database/sql's default converter (slices
// for ANY($1), nil for NULL columns), and the mock has to accept them too.
type passthroughConverter struct{}

func (passthroughConverter) ConvertValue(v any) (driver.Value, error) {
	return driver.Value(v), nil
}

// newMock creates an order-enforcing sqlmock database. Expectations are
// verified on cleanup.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthroughConverter{}))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sqlmock expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// uniqueViolationErr mimics the Postgres duplicate-key error surfaced by pgx.
func uniqueViolationErr() error {
	return &pgconn.PgError{Code: uniqueViolation, Message: "duplicate key value violates unique constraint"}
}
