package handler

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"noteful/internal/folder/model"
	"noteful/internal/folder/service"
	"noteful/middleware"
	"noteful/pkg/response"
	"noteful/pkg/sanitize"
	"noteful/pkg/validate"
)

type FolderHandler struct {
	Service *service.FolderService
}

func NewFolderHandler(service *service.FolderService) *FolderHandler {
	return &FolderHandler{Service: service}
}

func (h *FolderHandler) GetFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Service.GetFolders(r.Context())
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, folders)
}

func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	body := middleware.RequestBody(r)
	if field := validate.MissingField(body.Fields, "folder_name"); field != "" {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Missing '%s' in request body", field))
		return
	}

	var req model.CreateFolderRequest
	if err := body.Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.Service.CreateFolder(r.Context(), req)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(folder.ID, 10)))
	response.JSON(w, http.StatusCreated, folder)
}

func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folder := *middleware.Resource[model.Folder](r)
	folder.FolderName = sanitize.Text(folder.FolderName)
	response.JSON(w, http.StatusOK, folder)
}

func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	folder := middleware.Resource[model.Folder](r)
	body := middleware.RequestBody(r)
	if !validate.HasTruthyField(body.Fields, "folder_name") {
		response.Error(w, http.StatusBadRequest, "Request body must contain 'folder_name'")
		return
	}

	var req model.UpdateFolderRequest
	if err := body.Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Service.UpdateFolder(r.Context(), folder.ID, req); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folder := middleware.Resource[model.Folder](r)
	if _, err := h.Service.DeleteFolder(r.Context(), folder.ID); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w)
}
