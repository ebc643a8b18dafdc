package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/document"
	"github.com/alexisbeaulieu97/proposa/internal/theme"
	"github.com/alexisbeaulieu97/proposa/internal/workspace"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OPENAI_API_KEY", "")
	return home
}

func executeCommand(args ...string) (string, error) {
	return executeCommandWith(newAppContext(&rootFlags{}), args...)
}

func executeCommandWith(app *appContext, args ...string) (string, error) {
	root := newRootCmdFor(app)
	stdout := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), err
}

func seededHome(t *testing.T) string {
	t.Helper()
	home := setupHome(t)
	_, err := executeCommand("init", "--seed")
	require.NoError(t, err)
	return home
}

func openWorkspace(t *testing.T, home string) *workspace.Store {
	t.Helper()
	store, err := workspace.Open(filepath.Join(home, ".proposa", "workspace.yaml"))
	require.NoError(t, err)
	return store
}

func lastField(output string) string {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func TestVersionCommandOutputsBuildInfo(t *testing.T) {
	originalVersion, originalCommit, originalDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = originalVersion, originalCommit, originalDate
	})

	version = "1.2.3"
	commit = "abcdef1"
	date = "2025-10-03"

	output, err := executeCommand("version")
	require.NoError(t, err)
	require.Contains(t, output, "1.2.3")
	require.Contains(t, output, "abcdef1")
	require.Contains(t, output, "2025-10-03")
}

func TestInitCommand(t *testing.T) {
	home := setupHome(t)

	output, err := executeCommand("init", "--seed")
	require.NoError(t, err)
	require.Contains(t, output, "Workspace ready")
	require.Contains(t, output, "5 proposals")
	require.FileExists(t, filepath.Join(home, ".proposa", "config.yaml"))

	_, err = executeCommand("init")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to init")
	require.Contains(t, err.Error(), "--force")

	output, err = executeCommand("init", "--force")
	require.NoError(t, err)
	require.Contains(t, output, "0 proposals")
	assert.Empty(t, openWorkspace(t, home).Proposals())
}

func TestWorkspaceFlagOverridesSettings(t *testing.T) {
	setupHome(t)
	path := filepath.Join(t.TempDir(), "elsewhere.yaml")

	_, err := executeCommand("--workspace", path, "init", "--seed")
	require.NoError(t, err)
	require.FileExists(t, path)

	output, err := executeCommand("--workspace", path, "client", "list")
	require.NoError(t, err)
	require.Contains(t, output, "john-doe")
}

func TestProposalListFiltersByStatus(t *testing.T) {
	seededHome(t)

	output, err := executeCommand("proposal", "list")
	require.NoError(t, err)
	require.Contains(t, output, "Launch Proposal - Class of 2025")
	require.Contains(t, output, "Aragon")
	require.Contains(t, output, "15,000")

	output, err = executeCommand("proposal", "list", "--status", "draft", "--json")
	require.NoError(t, err)
	var proposals []document.Proposal
	require.NoError(t, json.Unmarshal([]byte(output), &proposals))
	require.Len(t, proposals, 1)
	assert.Equal(t, "creative-branding", proposals[0].ID)
}

func TestProposalLifecycleCommands(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("proposal", "new", "--title", "Spring Gala", "--client", "jane-smith", "--template", "event-launch", "--value", "4200")
	require.NoError(t, err)
	require.Contains(t, output, "Created proposal 'Spring Gala'")

	var created document.Proposal
	for _, p := range openWorkspace(t, home).Proposals() {
		if p.Title == "Spring Gala" {
			created = p
		}
	}
	require.NotEmpty(t, created.ID)
	require.Equal(t, document.StatusDraft, created.Status)
	require.NotEmpty(t, created.Blocks)

	tpl, err := openWorkspace(t, home).Template("event-launch")
	require.NoError(t, err)
	require.Len(t, created.Blocks, len(tpl.Blocks))
	assert.Equal(t, tpl.Blocks[0].ID(), created.Blocks[0].ID(), "instantiated blocks keep their template ids")

	shared, err := executeCommand("proposal", "share", created.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(shared, "http://127.0.0.1:8080/p/"))
	again, err := executeCommand("proposal", "share", created.ID)
	require.NoError(t, err)
	require.Equal(t, shared, again)

	output, err = executeCommand("proposal", "send", created.ID)
	require.NoError(t, err)
	require.Contains(t, output, "is now Sent")

	_, err = executeCommand("proposal", "send", created.ID)
	require.Error(t, err)

	output, err = executeCommand("proposal", "comment", created.ID, "Could we move the date?", "--author", "Jane")
	require.NoError(t, err)
	require.Contains(t, output, "is now Commented")

	output, err = executeCommand("proposal", "status", created.ID, "--json")
	require.NoError(t, err)
	var status proposalStatus
	require.NoError(t, json.Unmarshal([]byte(output), &status))
	assert.Equal(t, document.StatusCommented, status.Status)
	assert.False(t, status.Approved)
	assert.Equal(t, strings.TrimSpace(shared), status.PublicURL)

	output, err = executeCommand("proposal", "reject", created.ID)
	require.NoError(t, err)
	require.Contains(t, output, "is now Rejected")

	_, err = executeCommand("proposal", "comment", created.ID, "too late")
	require.Error(t, err)

	_, err = executeCommand("proposal", "delete", created.ID)
	require.NoError(t, err)
	_, err = openWorkspace(t, home).Proposal(created.ID)
	require.Error(t, err)
}

func TestProposalNewRequiresKnownClient(t *testing.T) {
	seededHome(t)

	_, err := executeCommand("proposal", "new", "--title", "Orphan", "--client", "nobody")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Failed to create proposal")
}

func TestProposalNewWithNewClient(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("proposal", "new", "--title", "Brand Refresh", "--new-client", "Acme Co")
	require.NoError(t, err)
	require.Contains(t, output, "Created proposal 'Brand Refresh'")

	ws := openWorkspace(t, home)
	var created document.Proposal
	for _, p := range ws.Proposals() {
		if p.Title == "Brand Refresh" {
			created = p
		}
	}
	require.NotEmpty(t, created.ID)
	client, err := ws.Client(created.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Co", client.Name)
	assert.True(t, strings.HasPrefix(client.ID, "acme-co-"))
	assert.Len(t, ws.Clients(), 5)

	_, err = executeCommand("proposal", "new", "--title", "Both", "--client", "john-doe", "--new-client", "Acme Co")
	require.Error(t, err)
	_, err = executeCommand("proposal", "new", "--title", "Neither")
	require.Error(t, err)
}

func TestProposalShowAndStatus(t *testing.T) {
	seededHome(t)

	output, err := executeCommand("proposal", "show", "solutions-campaign")
	require.NoError(t, err)
	require.Contains(t, output, "Marketing Campaign for Solutions Co.")
	require.Contains(t, output, "Ocean")
	require.Contains(t, output, "Comments (2)")
	require.Contains(t, output, "http://127.0.0.1:8080/p/def-456")

	output, err = executeCommand("proposal", "status", "launch-2025")
	require.NoError(t, err)
	require.Contains(t, output, "Sent (12 views)")
	require.Contains(t, output, "Not signed")

	_, err = executeCommand("proposal", "show", "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "proposal not found")
}

func TestClientCommands(t *testing.T) {
	home := setupHome(t)

	output, err := executeCommand("client", "add", "Acme Corp", "--email", "ops@acme.test", "--company", "Acme")
	require.NoError(t, err)
	require.Contains(t, output, "Added client Acme Corp")

	clients := openWorkspace(t, home).Clients()
	require.Len(t, clients, 1)
	assert.Equal(t, "ops@acme.test", clients[0].Email)

	_, err = executeCommand("client", "add", "Broken", "--email", "not-an-email")
	require.Error(t, err)

	output, err = executeCommand("client", "list")
	require.NoError(t, err)
	require.Contains(t, output, "Acme Corp")
}

func TestThemeCommands(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("theme", "list")
	require.NoError(t, err)
	require.Contains(t, output, "professional")
	require.Contains(t, output, "gradient")

	_, err = executeCommand("theme", "default", "ocean")
	require.NoError(t, err)
	assert.Equal(t, "ocean", openWorkspace(t, home).ResolveTheme("").ID)

	_, err = executeCommand("theme", "default", "neon")
	require.Error(t, err)
}

func TestThemeAddEditRemove(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("theme", "presets")
	require.NoError(t, err)
	require.Contains(t, output, "Deep Purple")

	output, err = executeCommand("theme", "add", "Night Shift", "--id", "night", "--from", "dark", "--preset", "deep-purple")
	require.NoError(t, err)
	require.Contains(t, output, "Created theme 'Night Shift' (night)")

	night, ok := openWorkspace(t, home).Themes().Get("night")
	require.True(t, ok)
	assert.Equal(t, theme.BackgroundGradient, night.Colors.BackgroundType)
	assert.Contains(t, night.Colors.BackgroundGradient, "#8e2de2")
	assert.Equal(t, "#FBBF24", night.Colors.Primary, "copied from the base theme")
	assert.False(t, night.IsDefault)

	_, err = executeCommand("theme", "add", "Night Shift", "--id", "night")
	require.Error(t, err, "ids are unique")
	_, err = executeCommand("theme", "add", "Plaid", "--preset", "plaid")
	require.Error(t, err)

	_, err = executeCommand("theme", "edit", "night", "--name", "Night", "--primary", "#22d3ee", "--solid", "--default")
	require.NoError(t, err)
	ws := openWorkspace(t, home)
	night, ok = ws.Themes().Get("night")
	require.True(t, ok)
	assert.Equal(t, "Night", night.Name)
	assert.Equal(t, "#22d3ee", night.Colors.Primary)
	assert.Equal(t, theme.BackgroundSolid, night.Colors.BackgroundType)
	assert.Equal(t, "night", ws.ResolveTheme("").ID)

	_, err = executeCommand("theme", "edit", "night", "--primary", "not-a-color")
	require.Error(t, err)

	output, err = executeCommand("theme", "rm", "night")
	require.NoError(t, err)
	require.Contains(t, output, "Removed theme night")
	_, ok = openWorkspace(t, home).Themes().Get("night")
	assert.False(t, ok)

	_, err = executeCommand("theme", "rm", "night")
	require.Error(t, err)
}

func TestBlockCommands(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("block", "add", "creative-branding", "text")
	require.NoError(t, err)
	textID := lastField(output)

	_, err = executeCommand("block", "set", "creative-branding", textID, "text", "Our branding approach")
	require.NoError(t, err)

	output, err = executeCommand("block", "add", "creative-branding", "items")
	require.NoError(t, err)
	itemsID := lastField(output)

	output, err = executeCommand("block", "item", "add", "creative-branding", itemsID, "items")
	require.NoError(t, err)
	itemID := lastField(output)

	_, err = executeCommand("block", "set", "creative-branding", itemsID, "items."+itemID+".unit_price", "250")
	require.NoError(t, err)
	_, err = executeCommand("block", "set", "creative-branding", itemsID, "items."+itemID+".quantity", "lots")
	require.Error(t, err)

	output, err = executeCommand("block", "fields", "creative-branding", itemsID)
	require.NoError(t, err)
	require.Contains(t, output, "items."+itemID+".unit_price")
	require.Contains(t, output, "250")

	output, err = executeCommand("block", "list", "creative-branding")
	require.NoError(t, err)
	require.Contains(t, output, "Our branding approach")
	require.Contains(t, output, "ITEMS")

	p, err := openWorkspace(t, home).Proposal("creative-branding")
	require.NoError(t, err)
	require.Len(t, p.Blocks, 2)

	_, err = executeCommand("block", "rm", "creative-branding", textID)
	require.NoError(t, err)
	p, err = openWorkspace(t, home).Proposal("creative-branding")
	require.NoError(t, err)
	require.Len(t, p.Blocks, 1)
	assert.Equal(t, itemsID, p.Blocks[0].ID())

	_, err = executeCommand("block", "add", "creative-branding", "hologram")
	require.Error(t, err)
	require.Contains(t, err.Error(), "block types")
}

func TestBlockCommandsOnTemplates(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("block", "list", "ecommerce", "--template")
	require.NoError(t, err)
	require.Contains(t, output, "PRICE_TABLE")

	output, err = executeCommand("block", "add", "ecommerce", "SECTION_HEADER", "--template")
	require.NoError(t, err)
	id := lastField(output)

	tpl, err := openWorkspace(t, home).Template("ecommerce")
	require.NoError(t, err)
	assert.Equal(t, id, tpl.Blocks[len(tpl.Blocks)-1].ID())
}

func TestBlockSetReplacesStrings(t *testing.T) {
	seededHome(t)

	output, err := executeCommand("block", "fields", "event-launch", "feat-1", "--template")
	require.NoError(t, err)
	require.Contains(t, output, "features.f1.bullets")

	_, err = executeCommand("block", "set", "event-launch", "feat-1", "features.f1.bullets", "Stage\nLighting", "--template")
	require.NoError(t, err)

	output, err = executeCommand("block", "fields", "event-launch", "feat-1", "--template")
	require.NoError(t, err)
	require.Contains(t, output, "Stage; Lighting")
}

func TestRenderAndExport(t *testing.T) {
	seededHome(t)

	page, err := executeCommand("render", "innovate-redesign")
	require.NoError(t, err)
	require.Contains(t, page, `data-theme="professional"`)
	require.Contains(t, page, "detailed breakdown of the project scope")

	page, err = executeCommand("render", "innovate-redesign", "--theme", "ocean")
	require.NoError(t, err)
	require.Contains(t, page, `data-theme="ocean"`)

	markdown, err := executeCommand("export", "innovate-redesign")
	require.NoError(t, err)
	require.Contains(t, markdown, "detailed breakdown of the project scope")
	require.NotContains(t, markdown, "<main")

	out := filepath.Join(t.TempDir(), "ecommerce.html")
	_, err = executeCommand("render", "ecommerce", "--template", "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "<main")
}

func TestTemplateSaveCommand(t *testing.T) {
	home := seededHome(t)

	_, err := executeCommand("template", "save", "innovate-redesign", "--category", "Web")
	require.Error(t, err)
	require.Contains(t, err.Error(), "description")

	output, err := executeCommand("template", "save", "innovate-redesign", "--description", "Redesign pitch", "--category", "Web")
	require.NoError(t, err)
	require.Contains(t, output, "Website Redesign for Innovate Inc. (Copy)")

	templates := openWorkspace(t, home).Templates()
	require.Len(t, templates, 4)

	output, err = executeCommand("template", "list")
	require.NoError(t, err)
	require.Contains(t, output, "Redesign pitch")
}

func TestTemplatePullCommand(t *testing.T) {
	home := setupHome(t)

	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(repoDir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repoDir, "templates", "launch.yaml"), []byte(`id: launch
title: Product launch
description: Launch event pitch
category: Events
blocks:
  - id: b1
    type: SECTION_HEADER
    content:
      text: The plan
`), 0o644))
	_, err = wt.Add("templates/launch.yaml")
	require.NoError(t, err)
	_, err = wt.Commit("add launch", &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	output, err := executeCommand("template", "pull", repoDir)
	require.NoError(t, err)
	require.Contains(t, output, "Imported 1 templates")

	_, err = executeCommand("template", "pull", repoDir)
	require.NoError(t, err)

	templates := openWorkspace(t, home).Templates()
	require.Len(t, templates, 2)
	assert.NotEqual(t, templates[0].ID, templates[1].ID)
	assert.NotEqual(t, templates[0].Blocks[0].ID(), templates[1].Blocks[0].ID())

	_, err = executeCommand("template", "pull")
	require.Error(t, err)
	require.Contains(t, err.Error(), "library.url")

	_, err = executeCommand("template", "delete", templates[0].ID)
	require.NoError(t, err)
	require.Len(t, openWorkspace(t, home).Templates(), 1)
}

type cannedBackend struct {
	prompt string
}

func (c *cannedBackend) Complete(_ context.Context, _, prompt string) (string, error) {
	c.prompt = prompt
	return "  A confident paragraph.  ", nil
}

func TestGenerateCommand(t *testing.T) {
	home := seededHome(t)

	backend := &cannedBackend{}
	app := newAppContext(&rootFlags{})
	app.backend = backend

	output, err := executeCommandWith(app, "generate", "innovate-redesign", "b2", "text", "--prompt", "Scope of a redesign")
	require.NoError(t, err)
	require.Contains(t, output, "A confident paragraph.")
	assert.Equal(t, "Scope of a redesign", backend.prompt)

	p, err := openWorkspace(t, home).Proposal("innovate-redesign")
	require.NoError(t, err)
	assert.Equal(t, "A confident paragraph.", mustText(t, p))

	_, err = executeCommand("generate", "innovate-redesign", "b2", "text")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--prompt")
}

func TestGenerateWithoutKeyWritesPlaceholder(t *testing.T) {
	home := seededHome(t)

	output, err := executeCommand("generate", "innovate-redesign", "b2", "text", "--prompt", "Anything")
	require.NoError(t, err)
	require.Contains(t, output, "no API key is configured")

	p, err := openWorkspace(t, home).Proposal("innovate-redesign")
	require.NoError(t, err)
	assert.Contains(t, mustText(t, p), "placeholder")
}

func mustText(t *testing.T, p document.Proposal) string {
	t.Helper()
	require.NotEmpty(t, p.Blocks)
	text, ok := block.As[block.PlainText](p.Blocks[0])
	require.True(t, ok)
	return text.Text
}

func TestEditRequiresTerminal(t *testing.T) {
	seededHome(t)

	_, err := executeCommand("edit", "innovate-redesign")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not a terminal")
}
