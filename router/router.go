package router

import (
	"database/sql"
	"net/http"

	"noteful/config"
	folderHandler "noteful/internal/folder"
	folderModel "noteful/internal/folder/model"
	folderRepository "noteful/internal/folder/repository"
	folderService "noteful/internal/folder/service"
	noteHandler "noteful/internal/note"
	noteModel "noteful/internal/note/model"
	noteRepository "noteful/internal/note/repository"
	noteService "noteful/internal/note/service"
	"noteful/middleware"
	"noteful/pkg/response"
	"noteful/socket"
)

// Setup wires repositories, services and handlers onto one mux. hub may be
// nil, in which case no change feed is exposed.
func Setup(db *sql.DB, hub *socket.Hub, cfg config.Config) http.Handler {
	mux := http.NewServeMux()
	timeout := cfg.Database.OperationTimeout

	// Notes
	noteRepo := noteRepository.NewNoteRepository(db, timeout)
	noteSvc := noteService.NewNoteService(noteRepo, hub)
	notes := noteHandler.NewNoteHandler(noteSvc)
	noteExists := middleware.Exists[noteModel.Note](noteSvc.GetNote, "Note doesn't exist")

	mux.HandleFunc("GET /api/notes", notes.GetNotes)
	mux.Handle("POST /api/notes", middleware.JSONBody(http.HandlerFunc(notes.CreateNote)))
	mux.Handle("GET /api/notes/{id}", noteExists(http.HandlerFunc(notes.GetNote)))
	mux.Handle("PATCH /api/notes/{id}", noteExists(middleware.JSONBody(http.HandlerFunc(notes.UpdateNote))))
	mux.Handle("DELETE /api/notes/{id}", noteExists(http.HandlerFunc(notes.DeleteNote)))

	// Folders
	folderRepo := folderRepository.NewFolderRepository(db, timeout)
	folderSvc := folderService.NewFolderService(folderRepo, hub)
	folders := folderHandler.NewFolderHandler(folderSvc)
	folderExists := middleware.Exists[folderModel.Folder](folderSvc.GetFolder, "Folder doesn't exist")

	mux.HandleFunc("GET /api/folders", folders.GetFolders)
	mux.Handle("POST /api/folders", middleware.JSONBody(http.HandlerFunc(folders.CreateFolder)))
	mux.Handle("GET /api/folders/{id}", folderExists(http.HandlerFunc(folders.GetFolder)))
	mux.Handle("PATCH /api/folders/{id}", folderExists(middleware.JSONBody(http.HandlerFunc(folders.UpdateFolder))))
	mux.Handle("DELETE /api/folders/{id}", folderExists(http.HandlerFunc(folders.DeleteFolder)))

	// Health
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Change feed
	if hub != nil {
		mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
			socket.ServeWs(hub, w, r)
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "Not found")
	})

	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.AccessLog,
		middleware.Recover,
		middleware.CORSMiddleware(cfg.CORSOrigin),
	)
}
