package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/icons"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// FieldKind tells a front end which input to show.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextArea FieldKind = "textarea"
	KindURL      FieldKind = "url"
	KindNumber   FieldKind = "number"
	KindBool     FieldKind = "bool"
	KindIcon     FieldKind = "icon"
	KindSelect   FieldKind = "select"
)

// Field is one editable value of a block. Value and Set resolve the block and
// item by id against the session's working copy at call time.
type Field struct {
	Key     string
	Name    string
	Label   string
	Kind    FieldKind
	Options []string

	get func() string
	set func(string) error
}

// Value returns the current value formatted as text.
func (f Field) Value() string {
	if f.get == nil {
		return ""
	}
	return f.get()
}

// Set parses v for the field kind and writes it into the working copy.
func (f Field) Set(v string) error {
	if f.set == nil {
		return proposaerrors.NewValidationError(f.Key, "field is read only", nil)
	}
	return f.set(v)
}

// Generative reports whether the field accepts generated prose.
func (f Field) Generative() bool {
	return f.Kind == KindText || f.Kind == KindTextArea
}

// Strings edits a nested list of plain strings, such as feature bullets.
type Strings struct {
	Key   string
	Label string

	values func() []string
	update func(func([]string) ([]string, error)) error
}

// Values returns a copy of the current strings.
func (s Strings) Values() []string {
	return append([]string(nil), s.values()...)
}

// Add appends v.
func (s Strings) Add(v string) error {
	return s.update(func(cur []string) ([]string, error) {
		return block.AppendString(cur, v), nil
	})
}

// Set replaces the string at i.
func (s Strings) Set(i int, v string) error {
	return s.update(func(cur []string) ([]string, error) {
		if i < 0 || i >= len(cur) {
			return nil, s.rangeError(i, len(cur))
		}
		return block.SetString(cur, i, v), nil
	})
}

// Remove deletes the string at i.
func (s Strings) Remove(i int) error {
	return s.update(func(cur []string) ([]string, error) {
		if i < 0 || i >= len(cur) {
			return nil, s.rangeError(i, len(cur))
		}
		return block.RemoveString(cur, i), nil
	})
}

func (s Strings) rangeError(i, n int) error {
	return proposaerrors.NewValidationError(s.Key, fmt.Sprintf("index %d out of range (%d entries)", i, n), nil)
}

// codec converts between a field's stored type and its text form.
type codec[V any] struct {
	kind   FieldKind
	format func(V) string
	parse  func(string) (V, error)
}

func identity(s string) string { return s }

func textCodec(kind FieldKind) codec[string] {
	return codec[string]{
		kind:   kind,
		format: identity,
		parse:  func(s string) (string, error) { return s, nil },
	}
}

var (
	plainText = textCodec(KindText)
	longText  = textCodec(KindTextArea)
	urlText   = codec[string]{
		kind:   KindURL,
		format: identity,
		parse:  func(s string) (string, error) { return strings.TrimSpace(s), nil },
	}
	number = codec[float64]{
		kind:   KindNumber,
		format: func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		parse: func(s string) (float64, error) {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return 0, fmt.Errorf("%q is not a number", s)
			}
			if v < 0 {
				return 0, fmt.Errorf("%q must not be negative", s)
			}
			return v, nil
		},
	}
	flag = codec[bool]{
		kind:   KindBool,
		format: strconv.FormatBool,
		parse: func(s string) (bool, error) {
			v, err := strconv.ParseBool(strings.TrimSpace(s))
			if err != nil {
				return false, fmt.Errorf("%q is not true or false", s)
			}
			return v, nil
		},
	}
)

func iconCodec(reg *icons.Registry, optional bool) codec[string] {
	return codec[string]{
		kind:   KindIcon,
		format: identity,
		parse: func(s string) (string, error) {
			s = strings.TrimSpace(s)
			if s == "" && optional {
				return "", nil
			}
			if !reg.Has(s) {
				return "", fmt.Errorf("unknown icon %q", s)
			}
			return s, nil
		},
	}
}

func layoutCodec() codec[block.BannerLayout] {
	return codec[block.BannerLayout]{
		kind:   KindSelect,
		format: func(l block.BannerLayout) string { return string(l) },
		parse: func(s string) (block.BannerLayout, error) {
			l := block.BannerLayout(strings.TrimSpace(s))
			if !l.Valid() {
				return "", fmt.Errorf("layout must be left, center or right")
			}
			return l, nil
		},
	}
}

// scalar binds a top level content field. field points at the value inside
// the content.
func scalar[C block.Content, V any](s *Session, blockID, key, label string, cd codec[V], field func(*C) *V) Field {
	return Field{
		Key:   key,
		Name:  key,
		Label: label,
		Kind:  cd.kind,
		get: func() string {
			c, ok := content[C](s, blockID)
			if !ok {
				return ""
			}
			return cd.format(*field(&c))
		},
		set: func(raw string) error {
			v, err := cd.parse(raw)
			if err != nil {
				return proposaerrors.NewValidationError(key, err.Error(), err)
			}
			return s.editBlock(blockID, func(b *block.Block) error {
				return block.Edit(b, func(c *C) { *field(c) = v })
			})
		},
	}
}

// itemScalar binds a field of one list item, addressed by item id.
func itemScalar[C block.Content, T any, P block.Keyed[T], V any](s *Session, blockID string, list listRef[C, T], itemID, name, label string, cd codec[V], field func(P) *V) Field {
	key := itemKey(list.key, itemID, name)
	return Field{
		Key:   key,
		Name:  name,
		Label: label,
		Kind:  cd.kind,
		get: func() string {
			item, ok := listItem[C, T, P](s, blockID, list, itemID)
			if !ok {
				return ""
			}
			return cd.format(*field(P(&item)))
		},
		set: func(raw string) error {
			v, err := cd.parse(raw)
			if err != nil {
				return proposaerrors.NewValidationError(key, err.Error(), err)
			}
			return updateItem[C, T, P](s, blockID, list, itemID, func(p P) { *field(p) = v })
		},
	}
}

// itemStrings binds a nested string list of one list item.
func itemStrings[C block.Content, T any, P block.Keyed[T]](s *Session, blockID string, list listRef[C, T], itemID, name, label string, field func(P) *[]string) Strings {
	key := itemKey(list.key, itemID, name)
	return Strings{
		Key:   key,
		Label: label,
		values: func() []string {
			item, ok := listItem[C, T, P](s, blockID, list, itemID)
			if !ok {
				return nil
			}
			return *field(P(&item))
		},
		update: func(fn func([]string) ([]string, error)) error {
			item, ok := listItem[C, T, P](s, blockID, list, itemID)
			if !ok {
				return proposaerrors.NewNotFoundError("item", itemID)
			}
			next, err := fn(*field(P(&item)))
			if err != nil {
				return err
			}
			return updateItem[C, T, P](s, blockID, list, itemID, func(p P) { *field(p) = next })
		},
	}
}

// listRef names a list inside content C.
type listRef[C block.Content, T any] struct {
	key   string
	label string
	items func(*C) *[]T
}

func updateItem[C block.Content, T any, P block.Keyed[T]](s *Session, blockID string, list listRef[C, T], itemID string, fn func(P)) error {
	return s.editList(blockID, itemID, func(b *block.Block) (bool, error) {
		found := false
		err := block.Edit(b, func(c *C) {
			items := list.items(c)
			*items, found = block.UpdateByID[T, P](*items, itemID, fn)
		})
		return found, err
	})
}

func itemKey(listKey, itemID, name string) string {
	return listKey + "." + itemID + "." + name
}

func content[C block.Content](s *Session, blockID string) (C, bool) {
	var zero C
	b, ok := s.block(blockID)
	if !ok {
		return zero, false
	}
	return block.As[C](b)
}

func listItem[C block.Content, T any, P block.Keyed[T]](s *Session, blockID string, list listRef[C, T], itemID string) (T, bool) {
	var zero T
	c, ok := content[C](s, blockID)
	if !ok {
		return zero, false
	}
	items := *list.items(&c)
	i := block.IndexOf[T, P](items, itemID)
	if i < 0 {
		return zero, false
	}
	return items[i], true
}
