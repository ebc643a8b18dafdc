package library

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

const launchTemplate = `id: launch
title: Product launch
description: Launch event pitch
category: Events
blocks:
  - id: b1
    type: SECTION_HEADER
    content:
      text: The plan
  - id: b2
    type: ITEMS
    content:
      tax_rate: 10
      items:
        - id: li1
          description: Venue
          quantity: 1
          unit_price: 500
          taxable: true
`

const retainerTemplate = `title: Retainer
description: Monthly support
category: Software
blocks: []
`

func initGitRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, body := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err = wt.Add(name)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestPullDecodesTemplates(t *testing.T) {
	dir := initGitRepo(t, map[string]string{
		"templates/launch.yaml":   launchTemplate,
		"templates/retainer.yml":  retainerTemplate,
		"templates/README.md":     "not a template",
		"docs/ignored/other.yaml": "id: nope",
	})

	result, err := Pull(context.Background(), Source{URL: dir})
	require.NoError(t, err)
	require.Len(t, result.Templates, 2)
	assert.Len(t, result.Commit, 40)

	launch := result.Templates[0]
	assert.Equal(t, "launch", launch.ID)
	require.Len(t, launch.Blocks, 2)
	items, ok := block.As[block.LineItems](launch.Blocks[1])
	require.True(t, ok)
	assert.InDelta(t, 550, items.Total(), 0.001)

	// The id falls back to the file name.
	assert.Equal(t, "retainer", result.Templates[1].ID)
}

func TestPullWithoutTemplateDirectory(t *testing.T) {
	dir := initGitRepo(t, map[string]string{"README.md": "empty"})

	_, err := Pull(context.Background(), Source{URL: dir})
	require.Error(t, err)
	assert.True(t, proposaerrors.IsNotFound(err))
}

func TestPullRejectsInvalidTemplates(t *testing.T) {
	dir := initGitRepo(t, map[string]string{
		"templates/broken.yaml": "title: [unclosed\n",
	})

	_, err := Pull(context.Background(), Source{URL: dir})
	var parseErr *proposaerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, filepath.Join(TemplateDir, "broken.yaml"), parseErr.Path)

	dir = initGitRepo(t, map[string]string{
		"templates/incomplete.yaml": "id: x\ntitle: Missing category\ndescription: d\n",
	})
	_, err = Pull(context.Background(), Source{URL: dir})
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))
}

func TestPullUnknownBranch(t *testing.T) {
	dir := initGitRepo(t, map[string]string{"templates/launch.yaml": launchTemplate})

	_, err := Pull(context.Background(), Source{URL: dir, Ref: "does-not-exist"})
	var external *proposaerrors.ExternalError
	require.ErrorAs(t, err, &external)
	assert.Equal(t, "git", external.Service)
}

func TestPullValidatesSource(t *testing.T) {
	_, err := Pull(context.Background(), Source{URL: "not a url"})
	require.Error(t, err)
	assert.True(t, proposaerrors.IsValidation(err))
}

func TestFreshAssignsNewIDs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "launch.yaml"), []byte(launchTemplate), 0o644))

	templates, err := ReadDir(dir)
	require.NoError(t, err)

	n := 0
	fresh := Fresh(templates, func() string {
		n++
		return "id-" + string(rune('a'+n-1))
	})
	require.Len(t, fresh, 1)
	assert.Equal(t, "id-a", fresh[0].ID)
	assert.Equal(t, "id-b", fresh[0].Blocks[0].ID())
	assert.Equal(t, "id-c", fresh[0].Blocks[1].ID())
	// The source keeps its ids.
	assert.Equal(t, "launch", templates[0].ID)
	assert.Equal(t, "b1", templates[0].Blocks[0].ID())
}
