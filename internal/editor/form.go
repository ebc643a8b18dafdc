package editor

import (
	"github.com/alexisbeaulieu97/proposa/internal/block"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// Form projects one block's content into editable fields. The structure is a
// snapshot: after List.Add or Item.Remove, call Session.Form again to see the
// new item set. Field values are always read live.
type Form struct {
	BlockID string
	Variant block.Variant
	Label   string
	Fields  []Field
	Lists   []List
}

// List is an editable collection of items inside a block.
type List struct {
	Key   string
	Label string
	Items []Item

	add func() (string, error)
}

// Add appends an item with default values and returns its id.
func (l List) Add() (string, error) { return l.add() }

// Item is one entry of a List.
type Item struct {
	ID      string
	Fields  []Field
	Strings []Strings

	remove func() error
}

// Remove deletes the item from its list.
func (it Item) Remove() error { return it.remove() }

// Lookup finds a field by key, searching list items too.
func (f Form) Lookup(key string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Key == key {
			return field, true
		}
	}
	for _, list := range f.Lists {
		for _, item := range list.Items {
			for _, field := range item.Fields {
				if field.Key == key {
					return field, true
				}
			}
		}
	}
	return Field{}, false
}

// LookupStrings finds a nested string list by key.
func (f Form) LookupStrings(key string) (Strings, bool) {
	for _, list := range f.Lists {
		for _, item := range list.Items {
			for _, str := range item.Strings {
				if str.Key == key {
					return str, true
				}
			}
		}
	}
	return Strings{}, false
}

// List returns the list with the given key.
func (f Form) List(key string) (List, bool) {
	for _, list := range f.Lists {
		if list.Key == key {
			return list, true
		}
	}
	return List{}, false
}

// Form builds the edit form for a block of the working copy.
func (s *Session) Form(blockID string) (Form, error) {
	b, ok := s.block(blockID)
	if !ok {
		return Form{}, proposaerrors.NewNotFoundError("block", blockID)
	}
	build, ok := formBuilders[b.Variant()]
	if !ok {
		// Unknown tags get an empty form; their content is carried as is.
		return Form{BlockID: blockID, Variant: b.Variant(), Label: string(b.Variant())}, nil
	}
	form := Form{BlockID: blockID, Variant: b.Variant(), Label: b.Variant().Label()}
	build(s, blockID, &form)
	return form, nil
}

// bindList binds list to the form. blank yields the content of a new item.
func bindList[C block.Content, T any, P block.Keyed[T]](s *Session, blockID string, list listRef[C, T], blank func() T, fields func(itemID string) ([]Field, []Strings)) List {
	out := List{
		Key:   list.key,
		Label: list.label,
		add: func() (string, error) {
			var id string
			err := s.editBlock(blockID, func(b *block.Block) error {
				return block.Edit(b, func(c *C) {
					items := list.items(c)
					*items = block.AppendItem[T, P](*items, blank(), s.newID)
					id = P(&(*items)[len(*items)-1]).ItemID()
				})
			})
			return id, err
		},
	}

	c, ok := content[C](s, blockID)
	if !ok {
		return out
	}
	for _, item := range *list.items(&c) {
		itemID := P(&item).ItemID()
		fs, strs := fields(itemID)
		out.Items = append(out.Items, Item{
			ID:      itemID,
			Fields:  fs,
			Strings: strs,
			remove: func() error {
				return s.editList(blockID, itemID, func(b *block.Block) (bool, error) {
					found := false
					err := block.Edit(b, func(c *C) {
						items := list.items(c)
						*items, found = block.RemoveByID[T, P](*items, itemID)
					})
					return found, err
				})
			},
		})
	}
	return out
}
