package workspace

import (
	_ "embed"

	"github.com/alexisbeaulieu97/proposa/internal/theme"
)

//go:embed seed.yaml
var seedYAML []byte

// Seed returns the demo workspace: sample clients, templates and proposals
// plus the built-in themes.
func Seed() (File, error) {
	file, err := Decode("seed.yaml", seedYAML)
	if err != nil {
		return File{}, err
	}
	file.Themes = theme.Builtin()
	return file, file.Validate()
}
