package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noteful/internal/folder/model"
	"noteful/pkg/logger"
)

type FolderRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewFolderRepository(db *sql.DB, timeout time.Duration) *FolderRepository {
	return &FolderRepository{DB: db, Timeout: timeout}
}

func (r *FolderRepository) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, r.Timeout)
}

func (r *FolderRepository) GetAll(ctx context.Context) ([]model.Folder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, "SELECT id, folder_name FROM folders ORDER BY id")
	if err != nil {
		logger.Sugar.Errorf("Failed to list folders: %v", err)
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := []model.Folder{}
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.FolderName); err != nil {
			logger.Sugar.Errorf("Failed to scan folder: %v", err)
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		logger.Sugar.Errorf("Failed to iterate folders: %v", err)
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// GetByID returns nil without error when no folder has the id.
func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var f model.Folder
	err := r.DB.QueryRowContext(ctx, "SELECT id, folder_name FROM folders WHERE id = $1", id).Scan(&f.ID, &f.FolderName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get folder %d: %v", id, err)
		return nil, fmt.Errorf("get folder %d: %w", id, err)
	}
	return &f, nil
}

// Insert stores a folder. A caller supplied ID is used verbatim; otherwise
// the database assigns one.
func (r *FolderRepository) Insert(ctx context.Context, newFolder model.NewFolder) (*model.Folder, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	if newFolder.ID != nil {
		return r.insertWithID(ctx, *newFolder.ID, newFolder.FolderName)
	}

	var f model.Folder
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO folders (folder_name) VALUES ($1) RETURNING id, folder_name",
		newFolder.FolderName).Scan(&f.ID, &f.FolderName)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert folder: %v", err)
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	return &f, nil
}

// insertWithID moves folders_id_seq past the explicit id in the same
// transaction so later generated ids do not collide with it.
func (r *FolderRepository) insertWithID(ctx context.Context, id int64, name string) (*model.Folder, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Sugar.Errorf("Failed to begin folder insert: %v", err)
		return nil, fmt.Errorf("insert folder: %w", err)
	}
	defer tx.Rollback()

	var f model.Folder
	err = tx.QueryRowContext(ctx,
		"INSERT INTO folders (id, folder_name) VALUES ($1, $2) RETURNING id, folder_name",
		id, name).Scan(&f.ID, &f.FolderName)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert folder %d: %v", id, err)
		return nil, fmt.Errorf("insert folder %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx,
		"SELECT setval(pg_get_serial_sequence('folders', 'id'), (SELECT MAX(id) FROM folders))"); err != nil {
		logger.Sugar.Errorf("Failed to advance folder id sequence: %v", err)
		return nil, fmt.Errorf("advance folder id sequence: %w", err)
	}

	if err := tx.Commit(); err != nil {
		logger.Sugar.Errorf("Failed to commit folder %d: %v", id, err)
		return nil, fmt.Errorf("insert folder %d: %w", id, err)
	}
	return &f, nil
}

func (r *FolderRepository) Update(ctx context.Context, id int64, patch model.FolderPatch) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var name sql.NullString
	if patch.FolderName != nil {
		name = sql.NullString{String: *patch.FolderName, Valid: true}
	}
	result, err := r.DB.ExecContext(ctx,
		"UPDATE folders SET folder_name = COALESCE($1, folder_name) WHERE id = $2", name, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to update folder %d: %v", id, err)
		return 0, fmt.Errorf("update folder %d: %w", id, err)
	}
	return result.RowsAffected()
}

func (r *FolderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM folders WHERE id = $1", id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete folder %d: %v", id, err)
		return 0, fmt.Errorf("delete folder %d: %w", id, err)
	}
	return result.RowsAffected()
}
