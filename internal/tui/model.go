// Package tui is the terminal block editor. It drives an editor.Session and
// never touches the workspace directly; saving goes through Options.Save.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
)

// Mode is the screen being shown.
type Mode int

const (
	ModeBlocks Mode = iota
	ModePalette
	ModeFields
	ModeInput
	ModeIcons
	ModePrompt
	ModeConfirm
	ModePreview
)

// Options wires the model to the outside world.
type Options struct {
	// Save persists the committed session. Required for the save key.
	Save func(*editor.Session) error
	// Preview renders blocks as text for the preview screen. Optional.
	Preview func(blocks []block.Block) (string, error)
}

// Model is the bubbletea model of the editor.
type Model struct {
	session *editor.Session
	opts    Options

	mode        Mode
	blockCursor int
	palette     int
	fieldCursor int
	iconCursor  int

	// form is rebuilt whenever the item set of the open block changes.
	form    editor.Form
	rows    []row
	editing row

	input   textinput.Model
	spinner spinner.Model
	preview viewport.Model

	busy      bool
	cancelGen context.CancelFunc
	quitArmed bool
	status    string
	errMsg    string
	width     int
	height    int
	quitting  bool
}

// NewModel builds a model over session.
func NewModel(session *editor.Session, opts Options) Model {
	in := textinput.New()
	in.CharLimit = 0
	in.Prompt = "> "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		session: session,
		opts:    opts,
		input:   in,
		spinner: s,
		preview: viewport.New(80, 20),
		width:   80,
		height:  24,
	}
}

// Init starts the program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Mode returns the current screen.
func (m Model) Mode() Mode { return m.mode }

// Session returns the edited session.
func (m Model) Session() *editor.Session { return m.session }

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) selectedBlock() (block.Block, bool) {
	blocks := m.session.Blocks()
	if m.blockCursor < 0 || m.blockCursor >= len(blocks) {
		return block.Block{}, false
	}
	return blocks[m.blockCursor], true
}

// openForm loads the form of the selected block and keeps the cursor in range.
func (m *Model) openForm(blockID string) error {
	form, err := m.session.Form(blockID)
	if err != nil {
		return err
	}
	m.form = form
	m.rows = buildRows(form)
	m.fieldCursor = clamp(m.fieldCursor, len(m.rows))
	return nil
}

func (m *Model) fail(err error) {
	m.errMsg = err.Error()
	m.status = ""
}

func (m *Model) note(msg string) {
	m.status = msg
	m.errMsg = ""
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
