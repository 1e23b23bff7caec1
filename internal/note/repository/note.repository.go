package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"noteful/internal/note/model"
	"noteful/pkg/logger"
)

const noteColumns = "id, name, content, date_created, folder"

type NoteRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewNoteRepository(db *sql.DB, timeout time.Duration) *NoteRepository {
	return &NoteRepository{DB: db, Timeout: timeout}
}

func (r *NoteRepository) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if r.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, r.Timeout)
}

func (r *NoteRepository) GetAll(ctx context.Context) ([]model.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
	if err != nil {
		logger.Sugar.Errorf("Failed to list notes: %v", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			logger.Sugar.Errorf("Failed to scan note: %v", err)
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		logger.Sugar.Errorf("Failed to iterate notes: %v", err)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// GetByID returns nil without error when no note has the id.
func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*model.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, "SELECT "+noteColumns+" FROM notes WHERE id = $1", id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get note %d: %v", id, err)
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return &n, nil
}

func (r *NoteRepository) Insert(ctx context.Context, newNote model.NewNote) (*model.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	created := time.Now().UTC()
	if newNote.DateCreated != nil {
		created = newNote.DateCreated.UTC()
	}

	row := r.DB.QueryRowContext(ctx,
		`INSERT INTO notes (name, content, folder, date_created) VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns,
		newNote.Name, newNote.Content, nullInt64(newNote.Folder), created,
	)
	n, err := scanNote(row)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert note: %v", err)
		return nil, fmt.Errorf("insert note: %w", err)
	}
	return &n, nil
}

// Update changes only the non-nil fields of patch and reports rows affected.
func (r *NoteRepository) Update(ctx context.Context, id int64, patch model.NotePatch) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx,
		"UPDATE notes SET name = COALESCE($1, name), content = COALESCE($2, content) WHERE id = $3",
		nullString(patch.Name), nullString(patch.Content), id,
	)
	if err != nil {
		logger.Sugar.Errorf("Failed to update note %d: %v", id, err)
		return 0, fmt.Errorf("update note %d: %w", id, err)
	}
	return result.RowsAffected()
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete note %d: %v", id, err)
		return 0, fmt.Errorf("delete note %d: %w", id, err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (model.Note, error) {
	var n model.Note
	var folder sql.NullInt64
	if err := s.Scan(&n.ID, &n.Name, &n.Content, &n.DateCreated, &folder); err != nil {
		return model.Note{}, err
	}
	if folder.Valid {
		n.Folder = &folder.Int64
	}
	return n, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
