package theme

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

func TestBuiltinIsValid(t *testing.T) {
	themes := Builtin()
	require.NoError(t, themes.Validate())

	def, ok := themes.Default()
	require.True(t, ok)
	assert.Equal(t, "professional", def.ID)
}

func TestResolveOrder(t *testing.T) {
	themes := Builtin()

	assert.Equal(t, "ocean", themes.Resolve("ocean").ID)
	assert.Equal(t, "professional", themes.Resolve("missing").ID)
	assert.Equal(t, "professional", themes.Resolve("").ID)

	noDefault := Collection{themes[0], themes[2]}
	noDefault[0].IsDefault = false
	assert.Equal(t, "dark", noDefault.Resolve("missing").ID)

	assert.Equal(t, Fallback(), Collection(nil).Resolve("anything"))
}

func TestSetDefaultClearsPrevious(t *testing.T) {
	themes := Builtin()

	require.NoError(t, themes.SetDefault("creative"))
	def, ok := themes.Default()
	require.True(t, ok)
	assert.Equal(t, "creative", def.ID)

	count := 0
	for _, th := range themes {
		if th.IsDefault {
			count++
		}
	}
	assert.Equal(t, 1, count)

	err := themes.SetDefault("nope")
	assert.True(t, proposaerrors.IsNotFound(err))
}

func TestUpsertDefaultTakesOver(t *testing.T) {
	themes := Builtin()
	custom := Fallback()
	custom.ID = "custom"
	custom.Name = "Custom"
	custom.IsDefault = true

	require.NoError(t, themes.Upsert(custom))
	assert.Len(t, themes, 6)
	def, _ := themes.Default()
	assert.Equal(t, "custom", def.ID)
	require.NoError(t, themes.Validate())

	custom.Name = "Renamed"
	require.NoError(t, themes.Upsert(custom))
	assert.Len(t, themes, 6)
	got, _ := themes.Get("custom")
	assert.Equal(t, "Renamed", got.Name)
}

func TestUpsertRejectsInvalidColor(t *testing.T) {
	themes := Builtin()
	bad := Fallback()
	bad.ID = "bad"
	bad.Colors.Primary = "not a color"

	err := themes.Upsert(bad)
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))
	assert.Len(t, themes, 5)
}

func TestRemove(t *testing.T) {
	themes := Builtin()
	require.NoError(t, themes.Remove("dark"))
	assert.Len(t, themes, 4)
	assert.True(t, proposaerrors.IsNotFound(themes.Remove("dark")))
}

func TestValidateRejectsTwoDefaults(t *testing.T) {
	themes := Builtin()
	themes[0].IsDefault = true
	err := themes.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than one default")
}

func TestVarsAndBackground(t *testing.T) {
	themes := Builtin()

	dark, _ := themes.Get("dark")
	vars := Vars(dark)
	require.Len(t, vars, 7)
	assert.Equal(t, Var{Name: "--primary-color", Value: "#FBBF24"}, vars[0])
	assert.Equal(t, "var(--bg-color)", Background(dark))
	assert.Contains(t, Declarations(dark), "--card-bg-color: #1f2937;")

	ocean, _ := themes.Get("ocean")
	assert.Equal(t, "linear-gradient(to right, #2193b0, #6dd5ed)", Background(ocean))

	ocean.Colors.BackgroundGradient = "  "
	assert.Equal(t, "var(--bg-color)", Background(ocean))

	solid := dark
	solid.Colors.BackgroundGradient = "linear-gradient(red, blue)"
	assert.Equal(t, "var(--bg-color)", Background(solid))

	blankFonts := dark
	blankFonts.Fonts = Fonts{}
	assert.Equal(t, DefaultFont, Vars(blankFonts)[6].Value)
}

func TestPresets(t *testing.T) {
	assert.Len(t, Presets(), 6)
	g, ok := PresetGradient("Ocean")
	require.True(t, ok)
	assert.Contains(t, g, "#2193b0")
	_, ok = PresetGradient("Plaid")
	assert.False(t, ok)

	g, ok = PresetGradient("deep-purple")
	require.True(t, ok)
	assert.Contains(t, g, "#8e2de2")
}

func TestDefaultUniquenessProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("any sequence of SetDefault leaves exactly one default", prop.ForAll(
		func(picks []int) bool {
			themes := Builtin()
			for _, p := range picks {
				if err := themes.SetDefault(themes[p%len(themes)].ID); err != nil {
					return false
				}
			}
			count := 0
			for _, th := range themes {
				if th.IsDefault {
					count++
				}
			}
			return count == 1
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t)
}
