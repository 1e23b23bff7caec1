package service

import (
	"context"

	"noteful/internal/note/model"
	"noteful/internal/note/repository"
	"noteful/socket"
)

type NoteService struct {
	Repo *repository.NoteRepository
	Hub  *socket.Hub
}

func NewNoteService(repo *repository.NoteRepository, hub *socket.Hub) *NoteService {
	return &NoteService{Repo: repo, Hub: hub}
}

func (s *NoteService) GetNotes(ctx context.Context) ([]model.Note, error) {
	return s.Repo.GetAll(ctx)
}

func (s *NoteService) GetNote(ctx context.Context, id int64) (*model.Note, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *NoteService) CreateNote(ctx context.Context, req model.CreateNoteRequest) (*model.Note, error) {
	note, err := s.Repo.Insert(ctx, model.NewNote{
		Name:    req.Name,
		Content: req.Content,
		Folder:  req.Folder,
	})
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.NoteCreatedType, socket.ResourceNotes, note.ID, note)
	return note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id int64, req model.UpdateNoteRequest) (int64, error) {
	affected, err := s.Repo.Update(ctx, id, model.NotePatch{Name: req.Name, Content: req.Content})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.Hub.Publish(socket.NoteUpdatedType, socket.ResourceNotes, id, nil)
	}
	return affected, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id int64) (int64, error) {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.Hub.Publish(socket.NoteDeletedType, socket.ResourceNotes, id, nil)
	}
	return affected, nil
}
