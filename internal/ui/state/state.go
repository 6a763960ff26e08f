// Package state is the client-side mirror of the notes list plus the
// add/edit form buffer. It holds no I/O: the view applies API results to it.
package state

import (
	"notes-app/pkg/notesclient"
)

type FormMode int

const (
	// Idle: empty buffer, nothing selected.
	Idle FormMode = iota
	// EditingNew: buffer has input, nothing selected.
	EditingNew
	// EditingExisting: buffer holds a selected note's fields.
	EditingExisting
)

func (m FormMode) String() string {
	switch m {
	case EditingNew:
		return "new"
	case EditingExisting:
		return "editing"
	default:
		return "idle"
	}
}

type State struct {
	// Notes is in insertion order, newest created first.
	Notes   []notesclient.Note
	Title   string
	Content string
	// Selected is the id being edited, nil when creating.
	Selected *int
	// FlyAway is the id playing its delete animation.
	FlyAway *int
}

func New() *State {
	return &State{Notes: []notesclient.Note{}}
}

func (s *State) Mode() FormMode {
	switch {
	case s.Selected != nil:
		return EditingExisting
	case s.Title != "" || s.Content != "":
		return EditingNew
	default:
		return Idle
	}
}

// ReplaceNotes applies a full list fetch.
func (s *State) ReplaceNotes(notes []notesclient.Note) {
	if notes == nil {
		notes = []notesclient.Note{}
	}
	s.Notes = notes
}

// Select copies a note into the form buffer without touching the list.
func (s *State) Select(note notesclient.Note) {
	id := note.Id
	s.Selected = &id
	s.Title = note.Title
	s.Content = note.Content
}

func (s *State) SetTitle(title string) {
	s.Title = title
}

func (s *State) SetContent(content string) {
	s.Content = content
}

// Submission is what a submit of the current buffer sends.
type Submission struct {
	Update  bool
	NoteId  int
	Title   string
	Content string
}

// Submission reports false while a required field is empty.
func (s *State) Submission() (Submission, bool) {
	if s.Title == "" || s.Content == "" {
		return Submission{}, false
	}

	sub := Submission{Title: s.Title, Content: s.Content}
	if s.Selected != nil {
		sub.Update = true
		sub.NoteId = *s.Selected
	}
	return sub, true
}

// CreateSucceeded prepends the created note and clears the buffer.
func (s *State) CreateSucceeded(note notesclient.Note) {
	s.Notes = append([]notesclient.Note{note}, s.Notes...)
	s.clearForm()
}

// UpdateSucceeded swaps the note with the same id and leaves edit mode.
func (s *State) UpdateSucceeded(note notesclient.Note) {
	for i := range s.Notes {
		if s.Notes[i].Id == note.Id {
			s.Notes[i] = note
		}
	}
	s.clearForm()
	s.Selected = nil
}

func (s *State) Cancel() {
	s.clearForm()
	s.Selected = nil
}

func (s *State) MarkFlyAway(id int) {
	s.FlyAway = &id
}

func (s *State) IsFlyingAway(id int) bool {
	return s.FlyAway != nil && *s.FlyAway == id
}

// Remove drops the id from the list and ends any fly-away animation,
// even one started for a different note.
func (s *State) Remove(id int) {
	kept := s.Notes[:0]
	for _, n := range s.Notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	s.Notes = kept
	s.FlyAway = nil
}

func (s *State) clearForm() {
	s.Title = ""
	s.Content = ""
}
