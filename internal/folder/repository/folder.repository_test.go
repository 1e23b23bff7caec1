package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"noteful/internal/folder/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*FolderRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewFolderRepository(db, 0), mock
}

func TestGetAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, folder_name FROM folders ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_name"}).
			AddRow(1, "Important").
			AddRow(2, "Super"))

	folders, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Folder{{ID: 1, FolderName: "Important"}, {ID: 2, FolderName: "Super"}}, folders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT id, folder_name FROM folders").WillReturnError(errors.New("connection reset"))

	_, err := repo.GetAll(context.Background())
	assert.ErrorContains(t, err, "connection reset")
}

func TestGetByIDMissing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_name"}))

	f, err := repo.GetByID(context.Background(), 9)
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestInsertWithClientID(t *testing.T) {
	repo, mock := newRepo(t)
	id := int64(123456)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO folders (id, folder_name) VALUES ($1, $2) RETURNING id, folder_name")).
		WithArgs(id, "new folder name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_name"}).AddRow(id, "new folder name"))
	mock.ExpectExec(regexp.QuoteMeta("SELECT setval(pg_get_serial_sequence('folders', 'id'), (SELECT MAX(id) FROM folders))")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	f, err := repo.Insert(context.Background(), model.NewFolder{ID: &id, FolderName: "new folder name"})
	require.NoError(t, err)
	assert.Equal(t, &model.Folder{ID: id, FolderName: "new folder name"}, f)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertWithClientIDDuplicate(t *testing.T) {
	repo, mock := newRepo(t)
	id := int64(1)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO folders (id, folder_name)")).
		WithArgs(id, "again").
		WillReturnError(errors.New(`duplicate key value violates unique constraint "folders_pkey"`))
	mock.ExpectRollback()

	_, err := repo.Insert(context.Background(), model.NewFolder{ID: &id, FolderName: "again"})
	assert.ErrorContains(t, err, "duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertGeneratedID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO folders (folder_name) VALUES ($1) RETURNING id, folder_name")).
		WithArgs("Spam").
		WillReturnRows(sqlmock.NewRows([]string{"id", "folder_name"}).AddRow(4, "Spam"))

	f, err := repo.Insert(context.Background(), model.NewFolder{FolderName: "Spam"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), f.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock := newRepo(t)
	name := "renamed"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE folders SET folder_name = COALESCE($1, folder_name) WHERE id = $2")).
		WithArgs(name, int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM folders WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Update(context.Background(), 2, model.FolderPatch{FolderName: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
