// AngelaMos | 2026
// repository_test.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/inventory-api/internal/core"
)

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

var tokenColumns = []string{"id", "user_id", "token_hash", "expires_at", "created_at"}

func expectReplacePrelude(mock sqlmock.Sqlmock, userID uuid.UUID) {
	mock.ExpectBegin()
	mock.ExpectExec(`SELECT\s+id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+UPDATE`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+api_tokens\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestRepositoryReplaceLocksUserThenSwapsToken(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	token := &Token{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: "abc",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	expectReplacePrelude(mock, token.UserID)
	mock.ExpectQuery(`INSERT\s+INTO\s+api_tokens`).
		WithArgs(token.ID.String(), token.UserID.String(), "abc", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))
	mock.ExpectCommit()

	require.NoError(t, repo.Replace(context.Background(), token))
	assert.Equal(t, created, token.CreatedAt)
}

func TestRepositoryReplaceInsertFailureRollsBack(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	token := &Token{ID: uuid.New(), UserID: uuid.New(), TokenHash: "abc"}

	expectReplacePrelude(mock, token.UserID)
	mock.ExpectQuery(`INSERT\s+INTO\s+api_tokens`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.Replace(context.Background(), token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replace api token")
}

func TestRepositoryFindByHash(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id, userID := uuid.New(), uuid.New()
	expires := time.Now().Add(time.Hour).UTC()

	q := `(?s)SELECT\s+id,\s*user_id,\s*token_hash,\s*expires_at,\s*created_at\s+FROM\s+api_tokens\s+WHERE\s+token_hash\s*=\s*\$1`
	mock.ExpectQuery(q).
		WithArgs("hash").
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow(id.String(), userID.String(), "hash", expires, time.Now()))

	token, err := repo.FindByHash(context.Background(), "hash")
	require.NoError(t, err)
	assert.Equal(t, id, token.ID)
	assert.Equal(t, userID, token.UserID)
	assert.Equal(t, expires, token.ExpiresAt)
}

func TestRepositoryFindByHashNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+api_tokens`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByHash(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepositoryFindByIDDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id := uuid.New()

	mock.ExpectQuery(`WHERE\s+id\s*=\s*\$1`).
		WithArgs(id.String()).
		WillReturnError(errors.New("db down"))

	_, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "find api token: db down")
	assert.False(t, errors.Is(err, core.ErrNotFound))
}

func TestRepositoryDeletes(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	id, userID := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE\s+FROM\s+api_tokens\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+api_tokens\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs(userID.String()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteByID(context.Background(), id))
	require.NoError(t, repo.DeleteAllForUser(context.Background(), userID))
}
