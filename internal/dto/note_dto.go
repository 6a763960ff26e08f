package dto

// NoteRequest is the body of both create and update calls.
type NoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type CreateNoteRequest struct {
	NoteRequest
}

type UpdateNoteRequest struct {
	Id int
	NoteRequest
}

type NoteResponse struct {
	Id      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteEventMessage travels on the event bus after every mutation.
type NoteEventMessage struct {
	Type    string `json:"type"`
	NoteId  int    `json:"note_id"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}
