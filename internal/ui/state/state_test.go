package state

import (
	"testing"

	"notes-app/pkg/notesclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(id int, title string) notesclient.Note {
	return notesclient.Note{Id: id, Title: title, Content: title + " body"}
}

func TestFormStateMachine(t *testing.T) {
	s := New()
	assert.Equal(t, Idle, s.Mode())

	s.SetTitle("A")
	assert.Equal(t, EditingNew, s.Mode())

	s.Select(note(3, "C"))
	assert.Equal(t, EditingExisting, s.Mode())
	assert.Equal(t, "C", s.Title)
	assert.Equal(t, "C body", s.Content)

	s.Cancel()
	assert.Equal(t, Idle, s.Mode())
	assert.Nil(t, s.Selected)
}

func TestSelectDoesNotMutateList(t *testing.T) {
	s := New()
	s.ReplaceNotes([]notesclient.Note{note(1, "A"), note(2, "B")})

	s.Select(s.Notes[1])
	s.SetTitle("changed")

	assert.Equal(t, "B", s.Notes[1].Title)
}

func TestSubmissionRequiresBothFields(t *testing.T) {
	s := New()
	s.SetTitle("A")

	_, ok := s.Submission()
	assert.False(t, ok)

	s.SetContent("B")
	sub, ok := s.Submission()
	require.True(t, ok)
	assert.Equal(t, Submission{Title: "A", Content: "B"}, sub)

	s.Select(note(9, "X"))
	sub, ok = s.Submission()
	require.True(t, ok)
	assert.True(t, sub.Update)
	assert.Equal(t, 9, sub.NoteId)
}

func TestCreateSucceededPrependsAndClears(t *testing.T) {
	s := New()
	s.ReplaceNotes([]notesclient.Note{note(1, "old")})
	s.SetTitle("new")
	s.SetContent("new body")

	s.CreateSucceeded(note(2, "new"))

	assert.Equal(t, []int{2, 1}, ids(s))
	assert.Equal(t, Idle, s.Mode())
}

func TestUpdateSucceededReplacesById(t *testing.T) {
	s := New()
	s.ReplaceNotes([]notesclient.Note{note(1, "a"), note(2, "b"), note(3, "c")})
	s.Select(s.Notes[1])

	s.UpdateSucceeded(notesclient.Note{Id: 2, Title: "b2", Content: "b2 body"})

	assert.Equal(t, []int{1, 2, 3}, ids(s))
	assert.Equal(t, "b2", s.Notes[1].Title)
	assert.Nil(t, s.Selected)
	assert.Equal(t, Idle, s.Mode())
}

func TestFlyAwayThenRemove(t *testing.T) {
	s := New()
	s.ReplaceNotes([]notesclient.Note{note(1, "a"), note(2, "b")})

	s.MarkFlyAway(2)
	assert.True(t, s.IsFlyingAway(2))
	assert.False(t, s.IsFlyingAway(1))

	s.Remove(2)
	assert.Equal(t, []int{1}, ids(s))
	assert.Nil(t, s.FlyAway)
}

func TestRemoveUnknownIdOnlyClearsFlyAway(t *testing.T) {
	s := New()
	s.ReplaceNotes([]notesclient.Note{note(1, "a")})
	s.MarkFlyAway(1)

	s.Remove(42)

	assert.Equal(t, []int{1}, ids(s))
	assert.Nil(t, s.FlyAway)
}

func TestReplaceNotesNil(t *testing.T) {
	s := New()
	s.ReplaceNotes(nil)
	assert.NotNil(t, s.Notes)
	assert.Empty(t, s.Notes)
}

func ids(s *State) []int {
	out := make([]int, 0, len(s.Notes))
	for _, n := range s.Notes {
		out = append(out, n.Id)
	}
	return out
}
