package tui

import (
	"fmt"

	"github.com/alexisbeaulieu97/proposa/internal/editor"
)

type rowKind int

const (
	rowField rowKind = iota
	rowString
	rowAddString
	rowAddItem
	rowRemoveItem
	rowHeading
)

// row is one selectable line of the field screen.
type row struct {
	kind    rowKind
	label   string
	depth   int
	field   editor.Field
	strings editor.Strings
	index   int
	list    editor.List
	item    editor.Item
}

func (r row) selectable() bool { return r.kind != rowHeading }

func buildRows(form editor.Form) []row {
	var rows []row
	for _, f := range form.Fields {
		rows = append(rows, row{kind: rowField, label: f.Label, field: f})
	}
	for _, list := range form.Lists {
		rows = append(rows, row{kind: rowHeading, label: list.Label})
		for n, item := range list.Items {
			rows = append(rows, row{kind: rowHeading, label: fmt.Sprintf("#%d", n+1), depth: 1})
			for _, f := range item.Fields {
				rows = append(rows, row{kind: rowField, label: f.Label, depth: 2, field: f})
			}
			for _, s := range item.Strings {
				for i := range s.Values() {
					rows = append(rows, row{kind: rowString, label: fmt.Sprintf("%s %d", s.Label, i+1), depth: 2, strings: s, index: i})
				}
				rows = append(rows, row{kind: rowAddString, label: "+ add " + s.Label, depth: 2, strings: s})
			}
			rows = append(rows, row{kind: rowRemoveItem, label: "- remove item", depth: 2, item: item})
		}
		rows = append(rows, row{kind: rowAddItem, label: "+ add to " + list.Label, depth: 1, list: list})
	}
	return rows
}

func (r row) value() string {
	switch r.kind {
	case rowField:
		return r.field.Value()
	case rowString:
		values := r.strings.Values()
		if r.index < len(values) {
			return values[r.index]
		}
	}
	return ""
}

// nextSelectable moves from i by step, skipping headings.
func nextSelectable(rows []row, i, step int) int {
	for j := i + step; j >= 0 && j < len(rows); j += step {
		if rows[j].selectable() {
			return j
		}
	}
	return i
}

func firstSelectable(rows []row) int {
	for i, r := range rows {
		if r.selectable() {
			return i
		}
	}
	return 0
}
