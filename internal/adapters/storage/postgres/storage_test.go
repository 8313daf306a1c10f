package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	pg "github.com/celebrityscoop868/sunpowerabc/internal/platform/db/postgres"
)

var (
	selectQuery = regexp.QuoteMeta(`
        SELECT value
          FROM kv_items
         WHERE key = $1
    `)
	upsertQuery = regexp.QuoteMeta(`
        INSERT INTO kv_items (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE
           SET value = EXCLUDED.value,
               updated_at = now()
    `)
	deleteQuery = regexp.QuoteMeta(`DELETE FROM kv_items WHERE key = $1`)
)

func TestStorage_GetItem_Found(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("spabc_mock_user").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`{"email":"demo@sunpowerabc.com"}`))

	v, ok, err := NewStorage(mock).GetItem(context.Background(), "spabc_mock_user")
	if err != nil {
		t.Fatalf("GetItem returned error: %v", err)
	}
	if !ok || v != `{"email":"demo@sunpowerabc.com"}` {
		t.Fatalf("unexpected result %q %t", v, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStorage_GetItem_Missing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(selectQuery).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := NewStorage(mock).GetItem(context.Background(), "missing")
	if err != nil {
		t.Fatalf("expected no error for missing key, got %v", err)
	}
	if ok {
		t.Fatalf("expected missing key")
	}
}

func TestStorage_GetItem_Error(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(selectQuery).
		WithArgs("k").
		WillReturnError(boom)

	if _, _, err := NewStorage(mock).GetItem(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestStorage_SetAndRemove(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(upsertQuery).
		WithArgs("k", `[]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(deleteQuery).
		WithArgs("k").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	s := NewStorage(mock)
	if err := s.SetItem(context.Background(), "k", `[]`); err != nil {
		t.Fatalf("SetItem returned error: %v", err)
	}
	if err := s.RemoveItem(context.Background(), "k"); err != nil {
		t.Fatalf("RemoveItem returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStorage_UsesTransactionFromContext(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectExec(upsertQuery).
		WithArgs("k", `{}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	s := NewStorage(mock)
	tm := pg.NewTransactionManager(mock)
	err = tm.WithinReadWrite(context.Background(), func(ctx context.Context) error {
		return s.SetItem(ctx, "k", `{}`)
	})
	if err != nil {
		t.Fatalf("WithinReadWrite returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
