package postgres

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastropos/internal/domain"
	"gastropos/internal/store/kv"
)

func newMockKV(t *testing.T) (*KV, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestGetMissingKey(t *testing.T) {
	store, mock := newMockKV(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE key = $1`)).
		WithArgs(kv.KeySales).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	val, ok, err := store.Get(context.Background(), kv.KeySales)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExistingKey(t *testing.T) {
	store, mock := newMockKV(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_entries WHERE key = $1`)).
		WithArgs(kv.KeyConfig).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`{"app_name":"Local"}`)))

	val, ok, err := store.Get(context.Background(), kv.KeyConfig)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"app_name":"Local"}`, string(val))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetUpserts(t *testing.T) {
	store, mock := newMockKV(t)
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`)).
		WithArgs(kv.KeySales, `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.Set(context.Background(), kv.KeySales, []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAndErrors(t *testing.T) {
	store, mock := newMockKV(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_entries WHERE key = $1`)).
		WithArgs(kv.KeyProducts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_entries`)).
		WillReturnError(errors.New("connection reset"))

	require.NoError(t, store.Delete(context.Background(), kv.KeyProducts))
	_, _, err := store.Get(context.Background(), kv.KeySales)
	assert.ErrorContains(t, err, "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMockKV(t)
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS kv_entries`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPersistentStoreAgainstDatabase(t *testing.T) {
	databaseURL := os.Getenv("GASTROPOS_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("set GASTROPOS_TEST_DATABASE_URL to run postgres integration test")
	}

	ctx := context.Background()
	backend, err := New(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = backend.Delete(ctx, kv.KeyConfig)
		_ = backend.Close()
	})

	s, err := kv.Open(ctx, backend, nil)
	require.NoError(t, err)
	_, err = s.UpdateSettings(ctx, domain.AppConfig{AppName: "Integración"})
	require.NoError(t, err)

	reopened, err := kv.Open(ctx, backend, nil)
	require.NoError(t, err)
	cfg, err := reopened.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Integración", cfg.AppName)
}
