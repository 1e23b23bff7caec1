package service

import (
	"context"

	"noteful/internal/folder/model"
	"noteful/internal/folder/repository"
	"noteful/socket"
)

type FolderService struct {
	Repo *repository.FolderRepository
	Hub  *socket.Hub
}

func NewFolderService(repo *repository.FolderRepository, hub *socket.Hub) *FolderService {
	return &FolderService{Repo: repo, Hub: hub}
}

func (s *FolderService) GetFolders(ctx context.Context) ([]model.Folder, error) {
	return s.Repo.GetAll(ctx)
}

func (s *FolderService) GetFolder(ctx context.Context, id int64) (*model.Folder, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *FolderService) CreateFolder(ctx context.Context, req model.CreateFolderRequest) (*model.Folder, error) {
	folder, err := s.Repo.Insert(ctx, model.NewFolder{ID: req.ID, FolderName: req.FolderName})
	if err != nil {
		return nil, err
	}
	s.Hub.Publish(socket.FolderCreatedType, socket.ResourceFolders, folder.ID, folder)
	return folder, nil
}

func (s *FolderService) UpdateFolder(ctx context.Context, id int64, req model.UpdateFolderRequest) (int64, error) {
	affected, err := s.Repo.Update(ctx, id, model.FolderPatch{FolderName: req.FolderName})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.Hub.Publish(socket.FolderUpdatedType, socket.ResourceFolders, id, nil)
	}
	return affected, nil
}

// DeleteFolder removes the folder; notes inside it go with it through the
// schema's ON DELETE CASCADE.
func (s *FolderService) DeleteFolder(ctx context.Context, id int64) (int64, error) {
	affected, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.Hub.Publish(socket.FolderDeletedType, socket.ResourceFolders, id, nil)
	}
	return affected, nil
}
