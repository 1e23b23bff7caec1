package handler

import (
	"fmt"
	"net/http"
	"path"
	"strconv"

	"noteful/internal/note/model"
	"noteful/internal/note/service"
	"noteful/middleware"
	"noteful/pkg/response"
	"noteful/pkg/sanitize"
	"noteful/pkg/validate"
)

type NoteHandler struct {
	Service *service.NoteService
}

func NewNoteHandler(service *service.NoteService) *NoteHandler {
	return &NoteHandler{Service: service}
}

// GetNotes lists every note as stored, without sanitizing.
func (h *NoteHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Service.GetNotes(r.Context())
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	body := middleware.RequestBody(r)
	if field := validate.MissingField(body.Fields, "name", "content"); field != "" {
		response.Error(w, http.StatusBadRequest, fmt.Sprintf("Missing '%s' in request body", field))
		return
	}

	var req model.CreateNoteRequest
	if err := body.Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.Service.CreateNote(r.Context(), req)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	w.Header().Set("Location", path.Join(r.URL.Path, strconv.FormatInt(note.ID, 10)))
	response.JSON(w, http.StatusCreated, note)
}

// GetNote expects the note loaded by the existence check.
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	note := middleware.Resource[model.Note](r)
	response.JSON(w, http.StatusOK, sanitizeNote(*note))
}

func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	note := middleware.Resource[model.Note](r)
	body := middleware.RequestBody(r)
	if !validate.HasTruthyField(body.Fields, "name", "content") {
		response.Error(w, http.StatusBadRequest, "Request body must contain 'name' and 'content'")
		return
	}

	var req model.UpdateNoteRequest
	if err := body.Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.Service.UpdateNote(r.Context(), note.ID, req); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	note := middleware.Resource[model.Note](r)
	if _, err := h.Service.DeleteNote(r.Context(), note.ID); err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w)
}

func sanitizeNote(n model.Note) model.Note {
	n.Name = sanitize.Text(n.Name)
	n.Content = sanitize.Text(n.Content)
	return n
}
