package icons

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryNamesSorted(t *testing.T) {
	reg := Default()
	names := reg.Names()
	require.NotEmpty(t, names)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "Camera")
}

func TestLookupFallsBackForUnknownNames(t *testing.T) {
	reg := Default()

	glyph, ok := reg.Glyph("Camera")
	assert.True(t, ok)
	assert.Equal(t, "📷", glyph)

	assert.Equal(t, Fallback, reg.Lookup("NoSuchIcon"))
	assert.False(t, reg.Has("NoSuchIcon"))
}

func TestNamesReturnsCopy(t *testing.T) {
	reg := New(map[string]string{"A": "a", " ": "blank"})
	names := reg.Names()
	require.Equal(t, []string{"A"}, names)
	names[0] = "mutated"
	assert.Equal(t, []string{"A"}, reg.Names())
}

func TestNilRegistry(t *testing.T) {
	var reg *Registry
	assert.Equal(t, Fallback, reg.Lookup("Camera"))
	assert.Nil(t, reg.Names())
}
