package block

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrVariantMismatch is returned by Edit when the requested content type does
// not match the block's variant.
var ErrVariantMismatch = errors.New("block variant mismatch")

// IDFunc produces fresh identifiers for blocks and list items.
type IDFunc func() string

// NewID returns a random uuid string.
func NewID() string {
	return uuid.NewString()
}

// Block is one typed section of a document. The variant is fixed at
// construction; only the content fields may change afterwards.
type Block struct {
	id      string
	content Content
}

// New builds a block of the given variant with default content.
func New(v Variant) (Block, error) {
	return NewWithIDs(v, NewID)
}

// NewWithIDs is New with a caller supplied id generator.
func NewWithIDs(v Variant, ids IDFunc) (Block, error) {
	content, err := DefaultContent(v, ids)
	if err != nil {
		return Block{}, err
	}
	return Block{id: ids(), content: content}, nil
}

// FromContent wraps existing content, typically produced by a decoder or a
// test fixture.
func FromContent(id string, content Content) Block {
	return Block{id: id, content: content}
}

func (b Block) ID() string { return b.id }

// Content returns the block's content value. Slices inside it are shared with
// the block; use Edit or the list helpers to change them.
func (b Block) Content() Content { return b.content }

// Variant returns the tag of the block's content.
func (b Block) Variant() Variant {
	if b.content == nil {
		return ""
	}
	return b.content.Variant()
}

// Edit applies fn to the block's content when it has type C. The id and the
// variant are left untouched.
func Edit[C Content](b *Block, fn func(*C)) error {
	current, ok := b.content.(C)
	if !ok {
		var want C
		return fmt.Errorf("%w: block %s is %s, not %T", ErrVariantMismatch, b.id, b.Variant(), want)
	}
	fn(&current)
	b.content = current
	return nil
}

// As returns the block content as type C.
func As[C Content](b Block) (C, bool) {
	c, ok := b.content.(C)
	return c, ok
}

// Index returns the position of the block with the given id, or -1.
func Index(blocks []Block, id string) int {
	for i := range blocks {
		if blocks[i].id == id {
			return i
		}
	}
	return -1
}
