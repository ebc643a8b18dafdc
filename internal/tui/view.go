package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/editor"
)

const maxValueWidth = 48

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.busy {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			fmt.Sprintf("%s generating text...", m.spinner.View()),
			footerStyle.Render("ctrl+c quit"))
	}

	var body, help string
	switch m.mode {
	case ModeBlocks:
		body, help = m.blocksView(), "↑/↓ move • enter edit • a add • d delete • v preview • s save • q quit"
	case ModePalette:
		body, help = m.paletteView(), "↑/↓ move • enter add • esc back"
	case ModeConfirm:
		body, help = m.blocksView(), "delete this block? y confirm • any other key cancels"
	case ModeFields:
		body, help = m.fieldsView(), "↑/↓ move • enter edit/toggle • g generate • x remove entry • esc back"
	case ModeInput, ModePrompt:
		body, help = m.fieldsView()+"\n\n"+m.input.View(), "enter accept • esc cancel"
	case ModeIcons:
		body, help = m.iconsView(), "arrows move • enter choose • esc cancel"
	case ModePreview:
		body, help = m.preview.View(), "↑/↓ scroll • esc back"
	}

	sections := []string{m.header(), body}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	} else if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, footerStyle.Render(help))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	title := m.session.Title()
	if strings.TrimSpace(title) == "" {
		title = "Untitled"
	}
	marker := ""
	if m.session.Dirty() {
		marker = " *"
	}
	return titleStyle.Render(fmt.Sprintf("Proposa • %s %s%s", m.session.Kind(), title, marker))
}

func (m Model) blocksView() string {
	blocks := m.session.Blocks()
	if len(blocks) == 0 {
		return itemStyle.Render("No blocks yet. Press a to add one.")
	}
	lines := make([]string, 0, len(blocks)+1)
	lines = append(lines, sectionStyle.Render("Blocks"))
	for i, b := range blocks {
		line := fmt.Sprintf("%2d. %s", i+1, b.Variant().Label())
		if summary := Summary(b); summary != "" {
			line += "  " + valueStyle.Render(truncate(summary, maxValueWidth))
		}
		lines = append(lines, m.styleLine(line, i == m.blockCursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) paletteView() string {
	variants := block.Variants()
	lines := make([]string, 0, len(variants)+1)
	lines = append(lines, sectionStyle.Render("Add block"))
	for i, v := range variants {
		lines = append(lines, m.styleLine(v.Label(), i == m.palette))
	}
	return strings.Join(lines, "\n")
}

func (m Model) fieldsView() string {
	lines := []string{sectionStyle.Render(m.form.Label)}
	if len(m.rows) == 0 {
		lines = append(lines, itemStyle.Render("This block has no editable fields."))
	}
	for i, r := range m.rows {
		indent := strings.Repeat("  ", r.depth)
		if r.kind == rowHeading {
			lines = append(lines, headingStyle.Render(indent+r.label))
			continue
		}
		line := indent + r.label
		if r.kind == rowField || r.kind == rowString {
			line += ": " + valueStyle.Render(truncate(displayValue(r), maxValueWidth))
		}
		lines = append(lines, m.styleLine(line, i == m.fieldCursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) iconsView() string {
	names := m.session.Icons().Options()
	const columns = 4
	var rows []string
	for start := 0; start < len(names); start += columns {
		cells := make([]string, 0, columns)
		for i := start; i < min(start+columns, len(names)); i++ {
			cell := fmt.Sprintf("%-16s", names[i])
			if i == m.iconCursor {
				cell = selectedStyle.Render(cell)
			} else {
				cell = itemStyle.Render(cell)
			}
			cells = append(cells, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return sectionStyle.Render("Choose icon") + "\n" + strings.Join(rows, "\n")
}

func (m Model) styleLine(line string, selected bool) string {
	if selected {
		return selectedStyle.Render(line)
	}
	return itemStyle.Render(line)
}

func displayValue(r row) string {
	v := r.value()
	if r.kind == rowField && r.field.Kind == editor.KindTextArea {
		v = strings.ReplaceAll(v, "\n", " ⏎ ")
	}
	if v == "" {
		return "(empty)"
	}
	return v
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

// Summary is a one-line description of a block for lists.
func Summary(b block.Block) string {
	switch c := b.Content().(type) {
	case block.Cover:
		return c.Title
	case block.SectionHeader:
		return c.Text
	case block.PlainText:
		return c.Text
	case block.PlainImage:
		return c.Caption
	case block.LineItems:
		return fmt.Sprintf("%d items", len(c.Items))
	case block.CallToAction:
		return c.Title
	case block.Post:
		return c.Title
	case block.IncludedItemsWithPrice:
		return c.PriceTitle
	case block.FooterLight:
		return c.Email
	case block.Unknown:
		return c.Text()
	}
	return ""
}
