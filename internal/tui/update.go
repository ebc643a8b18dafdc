package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
)

// GeneratedMsg reports the end of a text generation request.
type GeneratedMsg struct {
	Key  string
	Text string
	Err  error
}

// SavedMsg reports the outcome of Options.Save.
type SavedMsg struct {
	Err error
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = msg.Width
		m.preview.Height = max(msg.Height-4, 1)
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GeneratedMsg:
		m.busy = false
		m.cancelGen = nil
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.note(fmt.Sprintf("generated %d characters into %s", len(msg.Text), msg.Key))
		}
		m.mode = ModeFields
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.fail(msg.Err)
		} else {
			m.note("saved")
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.cancelGen != nil {
				m.cancelGen()
			}
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeBlocks:
		return m.blocksKey(msg)
	case ModePalette:
		return m.paletteKey(msg)
	case ModeFields:
		return m.fieldsKey(msg)
	case ModeInput, ModePrompt:
		return m.inputKey(msg)
	case ModeIcons:
		return m.iconsKey(msg)
	case ModeConfirm:
		return m.confirmKey(msg)
	case ModePreview:
		return m.previewKey(msg)
	}
	return m, nil
}

func (m Model) blocksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.session.Blocks())
	key := msg.String()
	if key != "q" {
		m.quitArmed = false
	}

	switch key {
	case "up", "k":
		m.blockCursor = clamp(m.blockCursor-1, n)
	case "down", "j":
		m.blockCursor = clamp(m.blockCursor+1, n)
	case "enter":
		b, ok := m.selectedBlock()
		if !ok {
			return m, nil
		}
		m.fieldCursor = 0
		if err := m.openForm(b.ID()); err != nil {
			m.fail(err)
			return m, nil
		}
		m.fieldCursor = firstSelectable(m.rows)
		m.mode = ModeFields
	case "a":
		m.palette = 0
		m.mode = ModePalette
	case "d", "delete":
		if _, ok := m.selectedBlock(); ok {
			m.mode = ModeConfirm
		}
	case "v":
		if m.opts.Preview == nil {
			return m, nil
		}
		text, err := m.opts.Preview(m.session.Blocks())
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.preview.SetContent(text)
		m.preview.GotoTop()
		m.mode = ModePreview
	case "s", "ctrl+s":
		return m, m.save()
	case "q", "esc":
		if m.session.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.note("unsaved changes: press q again to discard, s to save")
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) paletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	variants := block.Variants()
	switch msg.String() {
	case "up", "k":
		m.palette = clamp(m.palette-1, len(variants))
	case "down", "j":
		m.palette = clamp(m.palette+1, len(variants))
	case "enter":
		b, err := m.session.AddBlock(variants[m.palette])
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.blockCursor = len(m.session.Blocks()) - 1
		m.note("added " + b.Variant().Label())
		m.mode = ModeBlocks
	case "esc", "q":
		m.mode = ModeBlocks
	}
	return m, nil
}

func (m Model) confirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		b, ok := m.selectedBlock()
		if ok {
			if err := m.session.DeleteBlock(b.ID()); err != nil {
				m.fail(err)
			} else {
				m.note("deleted " + b.Variant().Label())
			}
		}
		m.blockCursor = clamp(m.blockCursor, len(m.session.Blocks()))
	}
	m.mode = ModeBlocks
	return m, nil
}

func (m Model) fieldsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.rows) == 0 {
		if s := msg.String(); s == "esc" || s == "q" {
			m.mode = ModeBlocks
		}
		return m, nil
	}
	current := m.rows[m.fieldCursor]

	switch msg.String() {
	case "up", "k":
		m.fieldCursor = nextSelectable(m.rows, m.fieldCursor, -1)
	case "down", "j":
		m.fieldCursor = nextSelectable(m.rows, m.fieldCursor, 1)
	case "esc", "q":
		m.mode = ModeBlocks
	case "enter", " ":
		return m.activate(current)
	case "x":
		if current.kind == rowString {
			m.apply(current.strings.Remove(current.index), true)
		}
	case "g":
		if current.kind == rowField && current.field.Generative() {
			m.editing = current
			m.startInput("prompt for "+current.field.Label, "")
			m.mode = ModePrompt
		}
	}
	return m, nil
}

// activate performs the default action of a row.
func (m Model) activate(r row) (tea.Model, tea.Cmd) {
	switch r.kind {
	case rowField:
		switch r.field.Kind {
		case editor.KindBool:
			v, _ := strconv.ParseBool(r.field.Value())
			m.apply(r.field.Set(strconv.FormatBool(!v)), false)
		case editor.KindSelect:
			m.apply(r.field.Set(nextOption(r.field.Options, r.field.Value())), false)
		case editor.KindIcon:
			picker := m.session.Icons()
			if err := picker.OpenFor(r.field); err != nil {
				m.fail(err)
				return m, nil
			}
			m.iconCursor = indexOf(picker.Options(), r.field.Value())
			m.mode = ModeIcons
		default:
			m.editing = r
			m.startInput(r.field.Label, r.field.Value())
			m.mode = ModeInput
		}
	case rowString:
		m.editing = r
		m.startInput(r.label, r.value())
		m.mode = ModeInput
	case rowAddString:
		m.apply(r.strings.Add(""), true)
	case rowAddItem:
		_, err := r.list.Add()
		m.apply(err, true)
	case rowRemoveItem:
		m.apply(r.item.Remove(), true)
	}
	return m, nil
}

// apply reports err, or refreshes the form after a successful change.
func (m *Model) apply(err error, structural bool) {
	if err != nil {
		m.fail(err)
		return
	}
	m.errMsg = ""
	if structural {
		if err := m.openForm(m.form.BlockID); err != nil {
			m.fail(err)
			return
		}
		if len(m.rows) > 0 && !m.rows[m.fieldCursor].selectable() {
			m.fieldCursor = nextSelectable(m.rows, m.fieldCursor, -1)
		}
	}
}

func (m *Model) startInput(placeholder, value string) {
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m Model) inputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		m.mode = ModeFields
		return m, nil
	case tea.KeyEnter:
		m.input.Blur()
		value := m.input.Value()
		if m.mode == ModePrompt {
			return m.generate(value)
		}
		var err error
		if m.editing.kind == rowString {
			err = m.editing.strings.Set(m.editing.index, value)
		} else {
			err = m.editing.field.Set(value)
		}
		m.mode = ModeFields
		m.apply(err, false)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// generate runs the generator off the update loop. The session is not read
// or written by the model until GeneratedMsg arrives.
func (m Model) generate(prompt string) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(context.Background())
	m.busy = true
	m.cancelGen = cancel
	session := m.session
	blockID := m.form.BlockID
	key := m.editing.field.Key

	run := func() tea.Msg {
		defer cancel()
		text, err := session.Generate(ctx, blockID, key, prompt)
		return GeneratedMsg{Key: key, Text: text, Err: err}
	}
	return m, tea.Batch(m.spinner.Tick, run)
}

func (m Model) iconsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	picker := m.session.Icons()
	names := picker.Options()
	const columns = 4

	switch msg.String() {
	case "left", "h":
		m.iconCursor = clamp(m.iconCursor-1, len(names))
	case "right", "l":
		m.iconCursor = clamp(m.iconCursor+1, len(names))
	case "up", "k":
		m.iconCursor = clamp(m.iconCursor-columns, len(names))
	case "down", "j":
		m.iconCursor = clamp(m.iconCursor+columns, len(names))
	case "enter":
		if err := picker.Select(names[m.iconCursor]); err != nil {
			m.fail(err)
			return m, nil
		}
		m.mode = ModeFields
	case "esc", "q":
		picker.Close()
		m.mode = ModeFields
	}
	return m, nil
}

func (m Model) previewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "v":
		m.mode = ModeBlocks
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) save() tea.Cmd {
	if m.opts.Save == nil {
		return nil
	}
	session := m.session
	save := m.opts.Save
	// Saving is synchronous so the session is never shared with a goroutine.
	err := save(session)
	return func() tea.Msg { return SavedMsg{Err: err} }
}

func nextOption(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	return options[(indexOf(options, current)+1)%len(options)]
}

func indexOf(values []string, v string) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}
