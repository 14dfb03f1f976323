package testutil

import (
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shiftboard/shiftboard-backend/pkg/database"
	"github.com/shiftboard/shiftboard-backend/pkg/logger"
)

// MockDB is a sqlmock-backed handle for repository unit tests.
// Query expectations are matched literally, not as regular expressions.
//
//	mockDB := testutil.NewMockDB(t)
//	mockDB.ExpectQuery("SELECT COUNT(*) FROM user_records").WillReturnRows(...)
//	repo := repository.NewUserRepository(mockDB.Database())
//	...
//	mockDB.ExpectationsWereMet(t)
type MockDB struct {
	DB   *sqlx.DB
	Mock sqlmock.Sqlmock
}

// NewMockDB opens a mock connection that is closed when the test ends
func NewMockDB(t *testing.T) *MockDB {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	m := &MockDB{DB: sqlx.NewDb(db, "postgres"), Mock: mock}
	t.Cleanup(func() { m.Close() })
	return m
}

// Database wraps the mock the way database.New wraps a real connection
func (m *MockDB) Database() *database.DB {
	return database.Wrap(m.DB, logger.Nop())
}

func (m *MockDB) Close() error { return m.DB.Close() }

func (m *MockDB) ExpectQuery(query string) *sqlmock.ExpectedQuery {
	return m.Mock.ExpectQuery(regexp.QuoteMeta(query))
}

func (m *MockDB) ExpectExec(query string) *sqlmock.ExpectedExec {
	return m.Mock.ExpectExec(regexp.QuoteMeta(query))
}

func (m *MockDB) ExpectBegin() *sqlmock.ExpectedBegin       { return m.Mock.ExpectBegin() }
func (m *MockDB) ExpectCommit() *sqlmock.ExpectedCommit     { return m.Mock.ExpectCommit() }
func (m *MockDB) ExpectRollback() *sqlmock.ExpectedRollback { return m.Mock.ExpectRollback() }

// ExpectationsWereMet fails the test if any expectation went unused
func (m *MockDB) ExpectationsWereMet(t *testing.T) {
	t.Helper()
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// ExpectAdvisoryLock expects the sync lock probe and answers with acquired
func (m *MockDB) ExpectAdvisoryLock(key int64, acquired bool) {
	m.ExpectQuery("SELECT pg_try_advisory_xact_lock($1)").
		WithArgs(key).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_xact_lock"}).AddRow(acquired))
}

// ExpectCopy expects a pq.CopyIn bulk load: one exec per row, then the flushing exec
//
//	mockDB.ExpectCopy("user_records", []string{"user_id", "created_at"},
//	    []driver.Value{"u1", testutil.AnyTime{}},
//	)
func (m *MockDB) ExpectCopy(table string, columns []string, rows ...[]driver.Value) {
	stmt := m.Mock.ExpectPrepare(regexp.QuoteMeta(pq.CopyIn(table, columns...)))
	for _, row := range rows {
		stmt.ExpectExec().WithArgs(row...).WillReturnResult(sqlmock.NewResult(0, 1))
	}
	stmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, int64(len(rows))))
}

// MockRows starts a result set with the given columns
func MockRows(columns ...string) *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

// AnyTime matches any time.Time argument
type AnyTime struct{}

// Match implements sqlmock.Argument
func (AnyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}
