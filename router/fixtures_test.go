package router

import (
	"database/sql/driver"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"noteful/config"
	folderModel "noteful/internal/folder/model"
	noteModel "noteful/internal/note/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var (
	noteColumns   = []string{"id", "name", "content", "date_created", "folder"}
	folderColumns = []string{"id", "folder_name"}
)

func makeFoldersArray() []folderModel.Folder {
	return []folderModel.Folder{
		{ID: 1, FolderName: "Important"},
		{ID: 2, FolderName: "Super"},
		{ID: 3, FolderName: "Spangley"},
	}
}

func makeNotesArray() []noteModel.Note {
	at := func(s string) time.Time {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			panic(err)
		}
		return t
	}
	folder := func(id int64) *int64 { return &id }

	return []noteModel.Note{
		{ID: 1, Name: "Dogs", DateCreated: at("2019-01-03T00:00:00Z"), Folder: folder(1), Content: "Corporis accusamus placeat quas non voluptas."},
		{ID: 2, Name: "Cats", DateCreated: at("2018-08-15T23:00:00Z"), Folder: folder(2), Content: "Eos laudantium quia ab blanditiis temporibus."},
		{ID: 3, Name: "Pigs", DateCreated: at("2018-03-01T00:00:00Z"), Folder: folder(2), Content: "Occaecati dignissimos quam qui facere deserunt."},
		{ID: 4, Name: "Birds", DateCreated: at("2019-01-04T00:00:00Z"), Folder: folder(1), Content: "Eum culpa odit."},
	}
}

func noteRows(notes ...noteModel.Note) *sqlmock.Rows {
	rows := sqlmock.NewRows(noteColumns)
	for _, n := range notes {
		var folder driver.Value
		if n.Folder != nil {
			folder = *n.Folder
		}
		rows.AddRow(n.ID, n.Name, n.Content, n.DateCreated, folder)
	}
	return rows
}

func folderRows(folders ...folderModel.Folder) *sqlmock.Rows {
	rows := sqlmock.NewRows(folderColumns)
	for _, f := range folders {
		rows.AddRow(f.ID, f.FolderName)
	}
	return rows
}

type testApp struct {
	handler http.Handler
	mock    sqlmock.Sqlmock
}

func newTestApp(t *testing.T) *testApp {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})

	return &testApp{handler: Setup(db, nil, testConfig()), mock: mock}
}

func testConfig() config.Config {
	return config.Config{
		CORSOrigin: "*",
		Database:   config.DatabaseConfig{OperationTimeout: time.Second},
	}
}

func (a *testApp) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.handler.ServeHTTP(w, req)
	return w
}

func mustJSON(t *testing.T, v any) string {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
