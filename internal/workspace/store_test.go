package workspace

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/proposa/internal/block"
	"github.com/alexisbeaulieu97/proposa/internal/document"
	proposaerrors "github.com/alexisbeaulieu97/proposa/pkg/errors"
)

func seeded(t *testing.T) *Store {
	t.Helper()
	file, err := Seed()
	require.NoError(t, err)
	return NewMemory(file)
}

func TestOpenMissingFileStartsWithBuiltinThemes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "workspace.yaml")

	store, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, store.Proposals())
	assert.Len(t, store.Themes(), 5)

	def, ok := store.Themes().Default()
	require.True(t, ok)
	assert.Equal(t, "professional", def.ID)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	file, err := Seed()
	require.NoError(t, err)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(file))
	require.NoError(t, store.Save())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary file is renamed away")

	reloaded, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, len(file.Proposals), len(reloaded.Proposals()))

	launch, err := reloaded.Proposal("launch-2025")
	require.NoError(t, err)
	assert.Equal(t, "DOP", launch.Currency)
	require.NotEmpty(t, launch.Blocks)
	features, ok := block.As[block.FourColumnFeatures](launch.Blocks[4])
	require.True(t, ok)
	assert.Equal(t, "Music", features.Features[0].Icon)
	assert.Len(t, features.Features[0].Bullets, 5)
}

func TestConcurrentSavesKeepNewestState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	file, err := Seed()
	require.NoError(t, err)
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Replace(file))

	const workers = 100
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.MutateProposal("launch-2025", func(p *document.Proposal) error {
				p.TotalViews++
				return nil
			})
			if err == nil {
				err = store.Save()
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	inMemory, err := store.Proposal("launch-2025")
	require.NoError(t, err)
	onDisk, err := Open(path)
	require.NoError(t, err)
	saved, err := onDisk.Proposal("launch-2025")
	require.NoError(t, err)
	assert.Equal(t, inMemory.TotalViews, saved.TotalViews)
	assert.Equal(t, file.Proposals[0].TotalViews+workers, saved.TotalViews)
}

func TestReloadSkipsOwnSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.AddClient(document.Client{ID: "acme", Name: "Acme"})
	require.NoError(t, err)
	require.NoError(t, store.Save())

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	other, err := Open(path)
	require.NoError(t, err)
	_, err = other.AddClient(document.Client{ID: "globex", Name: "Globex"})
	require.NoError(t, err)
	require.NoError(t, other.Save())

	changed, err = store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	_, err = store.Client("globex")
	assert.NoError(t, err)
}

func TestOpenReportsParseErrorsWithLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\nproposals:\n  - id: x\n    blocks:\n      - id: b1\n        content: {text: hi}\n"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var parseErr *proposaerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 5, parseErr.Line)
}

func TestOpenRejectsDuplicateDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	data := `version: "1"
themes:
  - id: a
    name: A
    is_default: true
    colors: {primary: "#000000", background: "#ffffff", text: "#000000", heading: "#000000", card_background: "#ffffff", background_type: solid}
  - id: b
    name: B
    is_default: true
    colors: {primary: "#000000", background: "#ffffff", text: "#000000", heading: "#000000", card_background: "#ffffff", background_type: solid}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	_, err := Open(path)
	assert.True(t, proposaerrors.IsValidation(err))
}

func TestSeedIsValid(t *testing.T) {
	file, err := Seed()
	require.NoError(t, err)
	assert.Len(t, file.Clients, 4)
	assert.Len(t, file.Templates, 3)
	for _, p := range file.Proposals {
		assert.NoError(t, p.Validate(), p.ID)
	}
	for _, tpl := range file.Templates {
		assert.NoError(t, tpl.Validate(), tpl.ID)
	}
}

func TestSeedKeepsPunctuatedComments(t *testing.T) {
	file, err := Seed()
	require.NoError(t, err)

	var contents []string
	for _, p := range file.Proposals {
		for _, c := range p.Comments {
			contents = append(contents, c.Content)
		}
	}
	assert.Contains(t, contents, "Can we adjust the social media budget? I would like more invested in video ads.")
	assert.Contains(t, contents, "I would like to add a clause about support response times. Can we discuss it?")
}

func TestProposalByLink(t *testing.T) {
	store := seeded(t)

	p, err := store.ProposalByLink("lanzamiento-2025")
	require.NoError(t, err)
	assert.Equal(t, "launch-2025", p.ID)

	_, err = store.ProposalByLink("nope")
	assert.True(t, proposaerrors.IsNotFound(err))
	_, err = store.ProposalByLink("")
	assert.True(t, proposaerrors.IsNotFound(err))
}

func TestReadsReturnCopies(t *testing.T) {
	store := seeded(t)

	p, err := store.Proposal("launch-2025")
	require.NoError(t, err)
	require.NoError(t, block.Edit(&p.Blocks[1], func(h *block.SectionHeader) { h.Text = "changed" }))
	p.Title = "changed"

	again, err := store.Proposal("launch-2025")
	require.NoError(t, err)
	assert.Equal(t, "Launch Proposal - Class of 2025", again.Title)
	header, _ := block.As[block.SectionHeader](again.Blocks[1])
	assert.Equal(t, "Setting", header.Text)

	tpl, err := store.Template("event-launch")
	require.NoError(t, err)
	header, _ = block.As[block.SectionHeader](tpl.Blocks[1])
	assert.Equal(t, "Setting", header.Text, "template and proposal do not share blocks")
}

func TestAddClient(t *testing.T) {
	store := seeded(t)

	c, err := store.AddClient(document.Client{Name: "Acme Corp", Email: "ops@acme.test"})
	require.NoError(t, err)
	assert.Regexp(t, `^acme-corp-[a-z0-9]{6}$`, c.ID)
	assert.Equal(t, "Acme Corp", store.ClientName(c.ID))
	assert.Equal(t, "John Doe (Innovate Inc.)", store.ClientName("john-doe"))

	_, err = store.AddClient(document.Client{ID: "john-doe", Name: "Again"})
	assert.True(t, proposaerrors.IsValidation(err))

	_, err = store.AddClient(document.Client{Name: ""})
	assert.True(t, proposaerrors.IsValidation(err))
}

func TestProposalCRUD(t *testing.T) {
	store := seeded(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	p := document.NewProposal(document.ProposalOptions{Title: "New", ClientID: "jane-smith", Now: now, NewID: func() string { return "new-1" }})
	require.NoError(t, store.AddProposal(p))
	assert.True(t, proposaerrors.IsValidation(store.AddProposal(p)))

	orphan := p
	orphan.ID = "orphan"
	orphan.ClientID = "ghost"
	assert.True(t, proposaerrors.IsNotFound(store.AddProposal(orphan)))

	p.Title = "Renamed"
	require.NoError(t, store.UpdateProposal(p))
	got, err := store.Proposal("new-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	p.PublicLink = "abc-123"
	assert.True(t, proposaerrors.IsValidation(store.UpdateProposal(p)), "links are unique")

	require.NoError(t, store.RemoveProposal("new-1"))
	_, err = store.Proposal("new-1")
	assert.True(t, proposaerrors.IsNotFound(err))
	assert.True(t, proposaerrors.IsNotFound(store.RemoveProposal("new-1")))
}

func TestMutateProposalKeepsStateOnError(t *testing.T) {
	store := seeded(t)
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	updated, err := store.MutateProposalByLink("def-456", func(p *document.Proposal) error {
		p.RecordView(now)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.TotalViews)

	_, err = store.MutateProposal("creative-branding", func(p *document.Proposal) error {
		p.TotalViews = 99
		return p.Approve("", document.Signer{}, now)
	})
	require.Error(t, err)
	p, err := store.Proposal("creative-branding")
	require.NoError(t, err)
	assert.Equal(t, 0, p.TotalViews)
}

func TestTemplatesAndThemes(t *testing.T) {
	store := seeded(t)

	tpl, err := store.Template("ecommerce")
	require.NoError(t, err)
	tpl.ID = "ecommerce-2"
	require.NoError(t, store.AddTemplate(tpl))
	assert.True(t, proposaerrors.IsValidation(store.AddTemplate(tpl)))

	tpl.Category = "Retail"
	require.NoError(t, store.UpdateTemplate(tpl))
	got, err := store.Template("ecommerce-2")
	require.NoError(t, err)
	assert.Equal(t, "Retail", got.Category)

	require.NoError(t, store.RemoveTemplate("ecommerce-2"))
	assert.True(t, proposaerrors.IsNotFound(store.RemoveTemplate("ecommerce-2")))

	require.NoError(t, store.SetDefaultTheme("dark"))
	assert.Equal(t, "dark", store.ResolveTheme("missing").ID)
	assert.Equal(t, "ocean", store.ResolveTheme("ocean").ID)
	assert.True(t, proposaerrors.IsNotFound(store.SetDefaultTheme("missing")))
}

func TestSlugAndIDs(t *testing.T) {
	assert.Equal(t, "innovate-inc", Slug("Innovate Inc."))
	assert.Equal(t, "", Slug("!!!"))
	assert.Regexp(t, `^client-[a-z0-9]{6}$`, NewSlugID("client", "***"))
	assert.NoError(t, ValidateID("abc-123"))
	assert.Error(t, ValidateID(""))
	assert.Error(t, ValidateID("Bad ID"))
}
