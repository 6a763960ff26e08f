// Package tui is the terminal notes view: an add/edit form above the list
// of notes, backed by the REST API.
//
// The model runs inside the bubbletea event loop. API calls and the delete
// animation timer run as tea.Cmds and report back through messages, so the
// state is only ever touched from Update.
package tui

import (
	"context"
	"strings"
	"time"

	"notes-app/internal/pkg/logger"
	"notes-app/internal/ui/state"
	"notes-app/pkg/notesclient"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotesAPI is the subset of the REST client the view calls.
type NotesAPI interface {
	List(ctx context.Context) ([]notesclient.Note, error)
	Create(ctx context.Context, title, content string) (*notesclient.Note, error)
	Update(ctx context.Context, id int, title, content string) (*notesclient.Note, error)
	Delete(ctx context.Context, id int) error
}

type Config struct {
	// RemovalDelay is how long a deleted note animates before it leaves the list.
	RemovalDelay   time.Duration
	RequestTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RemovalDelay:   300 * time.Millisecond,
		RequestTimeout: 10 * time.Second,
	}
}

type focus int

const (
	focusTitle focus = iota
	focusContent
	focusList
)

type Model struct {
	cfg   Config
	api   NotesAPI
	log   logger.ILogger
	state *state.State

	// cancelled on teardown; stops in-flight requests and pending removals
	ctx    context.Context
	cancel context.CancelFunc

	focus   focus
	cursor  int
	title   textinput.Model
	content textarea.Model

	width    int
	quitting bool
}

func New(parent context.Context, api NotesAPI, log logger.ILogger, cfg Config) Model {
	if cfg.RemovalDelay <= 0 {
		cfg.RemovalDelay = DefaultConfig().RemovalDelay
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}

	ctx, cancel := context.WithCancel(parent)

	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.Focus()

	content := textarea.New()
	content.Placeholder = "Content"
	content.ShowLineNumbers = false
	content.SetHeight(4)

	return Model{
		cfg:     cfg,
		api:     api,
		log:     log,
		state:   state.New(),
		ctx:     ctx,
		cancel:  cancel,
		focus:   focusTitle,
		title:   title,
		content: content,
	}
}

// State exposes the underlying client state, mostly for callers that
// render a summary after the program exits.
func (m Model) State() *state.State {
	return m.state
}

// Close tears the view down. Pending removals are dropped.
func (m Model) Close() {
	m.cancel()
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadNotes(), textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 8 {
			m.title.Width = msg.Width - 8
			m.content.SetWidth(msg.Width - 6)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case notesLoadedMsg:
		if msg.err != nil {
			m.log.Error("NotesView", "failed to load notes", map[string]interface{}{"error": msg.err})
			return m, nil
		}
		m.state.ReplaceNotes(msg.notes)
		m.clampCursor()
		return m, nil

	case noteCreatedMsg:
		if msg.err != nil {
			m.log.Error("NotesView", "failed to create note", map[string]interface{}{"error": msg.err})
			return m, nil
		}
		m.state.CreateSucceeded(*msg.note)
		m.syncInputs()
		return m, nil

	case noteUpdatedMsg:
		if msg.err != nil {
			m.log.Error("NotesView", "failed to update note", map[string]interface{}{"error": msg.err})
			return m, nil
		}
		m.state.UpdateSucceeded(*msg.note)
		m.syncInputs()
		return m, nil

	case noteDeletedMsg:
		if msg.err != nil {
			m.log.Error("NotesView", "failed to delete note", map[string]interface{}{
				"error":   msg.err,
				"note_id": msg.id,
			})
		}
		// the note leaves the list whether or not the server agreed
		m.state.MarkFlyAway(msg.id)
		return m, removeAfter(m.ctx, msg.id, m.cfg.RemovalDelay)

	case removalDueMsg:
		if m.ctx.Err() != nil {
			return m, nil
		}
		m.state.Remove(msg.id)
		m.clampCursor()
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab":
		return m, m.setFocus((m.focus + 1) % 3)
	case "shift+tab":
		return m, m.setFocus((m.focus + 2) % 3)
	case "ctrl+s":
		return m.submit()
	case "esc":
		if m.state.Mode() == state.EditingExisting {
			m.state.Cancel()
			m.syncInputs()
			return m, m.setFocus(focusTitle)
		}
		if m.focus != focusList {
			return m, m.setFocus(focusList)
		}
		return m, nil
	}

	if m.focus == focusList {
		return m.handleListKey(msg)
	}

	if m.focus == focusTitle && msg.Type == tea.KeyEnter {
		return m, m.setFocus(focusContent)
	}
	return m.updateInputs(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Notes)-1 {
			m.cursor++
		}
	case "n":
		return m, m.setFocus(focusTitle)
	case "enter", "e":
		if note, ok := m.noteAtCursor(); ok {
			m.state.Select(note)
			m.syncInputs()
			return m, m.setFocus(focusTitle)
		}
	case "d", "x", "delete":
		if note, ok := m.noteAtCursor(); ok {
			return m, m.deleteNote(note.Id)
		}
	case "r":
		return m, m.loadNotes()
	}
	return m, nil
}

// submit is a no-op until both fields are filled in.
func (m Model) submit() (tea.Model, tea.Cmd) {
	sub, ok := m.state.Submission()
	if !ok {
		return m, nil
	}
	return m, m.submitNote(sub)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
	default:
		return m, nil
	}

	m.state.SetTitle(m.title.Value())
	m.state.SetContent(m.content.Value())
	return m, cmd
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.content.Blur()

	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusContent:
		return m.content.Focus()
	}
	return nil
}

func (m *Model) syncInputs() {
	m.title.SetValue(m.state.Title)
	m.content.SetValue(m.state.Content)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Notes) {
		m.cursor = len(m.state.Notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) noteAtCursor() (notesclient.Note, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Notes) {
		return notesclient.Note{}, false
	}
	return m.state.Notes[m.cursor], true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Notes"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")

	if len(m.state.Notes) == 0 {
		b.WriteString(helpStyle.Render("No notes yet."))
		b.WriteString("\n")
	}
	for i, note := range m.state.Notes {
		b.WriteString(m.renderCard(i, note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderForm() string {
	mode := m.state.Mode()

	var b strings.Builder
	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Content"))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")

	switch mode {
	case state.EditingExisting:
		b.WriteString(modeStyle.Render("ctrl+s save  esc cancel"))
	default:
		b.WriteString(modeStyle.Render("ctrl+s add note"))
	}
	return formStyle.Render(b.String())
}

func (m Model) renderCard(i int, note notesclient.Note) string {
	style := cardStyle
	switch {
	case m.state.IsFlyingAway(note.Id):
		style = flyAwayCardStyle
	case m.state.Selected != nil && *m.state.Selected == note.Id:
		style = editingCardStyle
	case m.focus == focusList && i == m.cursor:
		style = cursorCardStyle
	}

	if m.width > 4 {
		style = style.Width(m.width - 4)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		noteTitleStyle.Render(note.Title),
		note.Content,
	)
	return style.Render(body)
}

func (m Model) helpLine() string {
	if m.focus == focusList {
		return "j/k move  enter edit  x delete  n new  r reload  tab form  q quit"
	}
	return "tab next field  ctrl+s submit  esc list  ctrl+c quit"
}
