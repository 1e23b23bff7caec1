package model

import (
	"encoding/json"
	"time"
)

// TimeLayout matches the ISO strings clients already parse, e.g.
// 2019-01-03T00:00:00.000Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

type Note struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Content     string    `json:"content"`
	DateCreated time.Time `json:"date_created"`
	Folder      *int64    `json:"folder"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	type alias Note
	return json.Marshal(struct {
		alias
		DateCreated string `json:"date_created"`
	}{
		alias:       alias(n),
		DateCreated: n.DateCreated.UTC().Format(TimeLayout),
	})
}

// CreateNoteRequest is the POST body. Presence of name and content is
// checked before decoding.
type CreateNoteRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Folder  *int64 `json:"folder"`
}

// UpdateNoteRequest is the PATCH body; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Name    *string `json:"name"`
	Content *string `json:"content"`
}

type NewNote struct {
	Name        string
	Content     string
	Folder      *int64
	DateCreated *time.Time
}

type NotePatch struct {
	Name    *string
	Content *string
}
