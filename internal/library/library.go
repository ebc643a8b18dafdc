// Package library imports templates from a git repository. Every
// templates/*.yaml file in the repository holds one template.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/validation"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

// TemplateDir is the directory scanned inside the repository.
const TemplateDir = "templates"

// Source names the repository to pull.
type Source struct {
	URL   string `validate:"required,git_url"`
	Ref   string
	Depth int `validate:"min=0"`
}

// Result is what a pull found.
type Result struct {
	Commit    string
	Templates []document.Template
}

// Pull clones src into a temporary directory and decodes its
// templates. Nothing is written to the workspace.
func Pull(ctx context.Context, src Source) (*Result, error) {
	if err := validation.Struct(src); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "proposa-library-*")
	if err != nil {
		return nil, fmt.Errorf("create clone directory: %w", err)
	}
	defer os.RemoveAll(dir)

	opts := &git.CloneOptions{URL: src.URL, Depth: src.Depth}
	if src.Ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(src.Ref)
		opts.SingleBranch = true
	}
	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		return nil, proposaerrors.NewExternalError("git", fmt.Errorf("clone %s: %w", src.URL, err))
	}

	head, err := repo.Head()
	if err != nil {
		return nil, proposaerrors.NewExternalError("git", fmt.Errorf("resolve HEAD: %w", err))
	}

	templates, err := ReadDir(filepath.Join(dir, TemplateDir))
	if err != nil {
		return nil, err
	}
	return &Result{Commit: head.Hash().String(), Templates: templates}, nil
}

// ReadDir decodes every *.yaml and *.yml file in dir, in name order.
func ReadDir(dir string) ([]document.Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, proposaerrors.NewNotFoundError("template directory", TemplateDir)
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	templates := make([]document.Template, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var tpl document.Template
		if err := yaml.Unmarshal(data, &tpl); err != nil {
			return nil, proposaerrors.NewParseError(filepath.Join(TemplateDir, name), 0, err)
		}
		if tpl.ID == "" {
			tpl.ID = name[:len(name)-len(filepath.Ext(name))]
		}
		if err := tpl.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		templates = append(templates, tpl)
	}
	return templates, nil
}

// Fresh returns copies of templates with new template ids and new block ids,
// ready to add next to existing templates.
func Fresh(templates []document.Template, newID func() string) []document.Template {
	out := make([]document.Template, 0, len(templates))
	for _, tpl := range templates {
		copied := tpl.Clone()
		copied.ID = newID()
		for i, b := range copied.Blocks {
			copied.Blocks[i] = block.FromContent(newID(), b.Content())
		}
		out = append(out, copied)
	}
	return out
}
