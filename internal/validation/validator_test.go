package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

func TestIsColor(t *testing.T) {
	valid := []string{"#fff", "#4f46e5", "#4f46e5cc", "rgba(255, 255, 255, 0.1)", "hsl(210, 40%, 50%)", "white"}
	for _, value := range valid {
		assert.True(t, IsColor(value), value)
	}

	invalid := []string{"", "#12", "#zzzzzz", "rgb(", "Not A Color", "url(x)"}
	for _, value := range invalid {
		assert.False(t, IsColor(value), value)
	}
}

func TestIsGitURL(t *testing.T) {
	assert.True(t, IsGitURL("https://github.com/acme/templates.git"))
	assert.True(t, IsGitURL("git@github.com:acme/templates.git"))
	assert.True(t, IsGitURL("/srv/git/templates"))
	assert.True(t, IsGitURL("./templates"))
	assert.False(t, IsGitURL("templates"))
	assert.False(t, IsGitURL("https://"))
	assert.False(t, IsGitURL("   "))
}

type sample struct {
	Currency string `validate:"required,iso4217"`
	Locale   string `validate:"omitempty,locale"`
	Color    string `validate:"csscolor"`
	Gradient string `validate:"gradient"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	err := Struct(sample{
		Currency: "USD",
		Locale:   "es-MX",
		Color:    "#111827",
		Gradient: "linear-gradient(to right, #2193b0, #6dd5ed)",
	})
	require.NoError(t, err)
}

func TestStructReportsFirstFailure(t *testing.T) {
	err := Struct(sample{Currency: "DOLLARS", Color: "#fff"})
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))

	var ve *proposaerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "currency", ve.Field)
	assert.Contains(t, ve.Message, "iso4217")
}

func TestStructRejectsBadGradient(t *testing.T) {
	err := Struct(sample{Currency: "EUR", Color: "#fff", Gradient: "red"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gradient")
}

func TestConvertNil(t *testing.T) {
	assert.NoError(t, Convert(nil))
}
