package block

import (
	"fmt"
	"slices"
)

// Keyed is satisfied by pointers to list item types. Only this package's
// item types can satisfy it.
type Keyed[T any] interface {
	*T
	ItemID() string
	setItemID(string)
}

// AppendItem returns a copy of items with item appended under a fresh id.
func AppendItem[T any, P Keyed[T]](items []T, item T, ids IDFunc) []T {
	P(&item).setItemID(ids())
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

// UpdateAt returns a copy of items with fn applied to the element at i. The
// element keeps its id whatever fn does. Panics when i is out of range.
func UpdateAt[T any, P Keyed[T]](items []T, i int, fn func(P)) []T {
	checkIndex("update", i, len(items))
	out := slices.Clone(items)
	target := P(&out[i])
	id := target.ItemID()
	fn(target)
	target.setItemID(id)
	return out
}

// RemoveAt returns a copy of items without the element at i. Panics when i is
// out of range.
func RemoveAt[T any](items []T, i int) []T {
	checkIndex("remove", i, len(items))
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

// IndexOf returns the position of the item with the given id, or -1.
func IndexOf[T any, P Keyed[T]](items []T, id string) int {
	for i := range items {
		if P(&items[i]).ItemID() == id {
			return i
		}
	}
	return -1
}

// UpdateByID is UpdateAt addressed by item id. It reports false when no item
// carries the id.
func UpdateByID[T any, P Keyed[T]](items []T, id string, fn func(P)) ([]T, bool) {
	i := IndexOf[T, P](items, id)
	if i < 0 {
		return items, false
	}
	return UpdateAt[T, P](items, i, fn), true
}

// RemoveByID is RemoveAt addressed by item id.
func RemoveByID[T any, P Keyed[T]](items []T, id string) ([]T, bool) {
	i := IndexOf[T, P](items, id)
	if i < 0 {
		return items, false
	}
	return RemoveAt(items, i), true
}

// AppendString returns a copy of values with s appended.
func AppendString(values []string, s string) []string {
	out := make([]string, len(values), len(values)+1)
	copy(out, values)
	return append(out, s)
}

// SetString returns a copy of values with position i replaced.
func SetString(values []string, i int, s string) []string {
	checkIndex("update", i, len(values))
	out := slices.Clone(values)
	out[i] = s
	return out
}

// RemoveString returns a copy of values without position i.
func RemoveString(values []string, i int) []string {
	return RemoveAt(values, i)
}

func checkIndex(op string, i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("block: %s index %d out of range [0:%d]", op, i, n))
	}
}
