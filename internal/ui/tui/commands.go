package tui

import (
	"context"
	"time"

	"notes-app/internal/ui/state"
	"notes-app/pkg/notesclient"

	tea "github.com/charmbracelet/bubbletea"
)

type notesLoadedMsg struct {
	notes []notesclient.Note
	err   error
}

type noteCreatedMsg struct {
	note *notesclient.Note
	err  error
}

type noteUpdatedMsg struct {
	note *notesclient.Note
	err  error
}

type noteDeletedMsg struct {
	id  int
	err error
}

type removalDueMsg struct {
	id int
}

func (m Model) loadNotes() tea.Cmd {
	ctx, api, timeout := m.ctx, m.api, m.cfg.RequestTimeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		notes, err := api.List(reqCtx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m Model) submitNote(sub state.Submission) tea.Cmd {
	ctx, api, timeout := m.ctx, m.api, m.cfg.RequestTimeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if sub.Update {
			note, err := api.Update(reqCtx, sub.NoteId, sub.Title, sub.Content)
			return noteUpdatedMsg{note: note, err: err}
		}
		note, err := api.Create(reqCtx, sub.Title, sub.Content)
		return noteCreatedMsg{note: note, err: err}
	}
}

func (m Model) deleteNote(id int) tea.Cmd {
	ctx, api, timeout := m.ctx, m.api, m.cfg.RequestTimeout
	return func() tea.Msg {
		reqCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return noteDeletedMsg{id: id, err: api.Delete(reqCtx, id)}
	}
}

// removeAfter yields nothing once ctx is cancelled, so a torn-down view
// never applies a stale removal.
func removeAfter(ctx context.Context, id int, delay time.Duration) tea.Cmd {
	return func() tea.Msg {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return removalDueMsg{id: id}
		}
	}
}
