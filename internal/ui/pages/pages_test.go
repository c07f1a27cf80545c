package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentbrowser/internal/catalog"
	"contentbrowser/internal/domain"
	"contentbrowser/internal/eventbus"
	"contentbrowser/internal/router"
	"contentbrowser/internal/ui/services/navigation"
	"contentbrowser/internal/ui/services/selection"
)

// fakeRelated serves one record per blog and fails for the "bad" blog
type fakeRelated struct{}

func (fakeRelated) Supports(kind domain.Kind) bool { return kind == domain.KindBlog }

func (fakeRelated) FetchRelated(_ context.Context, it domain.Item) ([]domain.Related, error) {
	if it.ID == "bad" {
		return nil, errors.New("feed down")
	}
	return []domain.Related{{Title: "post of " + it.Title}}, nil
}

func testCatalog() *catalog.Catalog {
	c := catalog.New(nil)
	c.Append(domain.KindPerson, domain.Item{ID: "p1", Kind: domain.KindPerson, Title: "Dirk"})
	c.Append(domain.KindCompany, domain.Item{ID: "c1", Kind: domain.KindCompany, Title: "DLSC"})
	c.Append(domain.KindBlog,
		domain.Item{ID: "b1", Kind: domain.KindBlog, Title: "Dirk's blog", PersonIDs: []string{"p1", "ghost"}, CompanyID: "c1"},
		domain.Item{ID: "bad", Kind: domain.KindBlog, Title: "Broken blog"},
	)
	c.Append(domain.KindVideo, domain.Item{ID: "v1", Kind: domain.KindVideo, Title: "Talk", PersonIDs: []string{"p1"}})
	c.Append(domain.KindNews,
		domain.Item{ID: "n1", Kind: domain.KindNews, Title: "Old news", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		domain.Item{ID: "n2", Kind: domain.KindNews, Title: "Fresh news", Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	)
	return c
}

func entry(t *testing.T, v domain.View) router.Entry {
	t.Helper()
	e, ok := router.DefaultTable().Lookup(v)
	require.True(t, ok)
	return e
}

func blogPage(t *testing.T) *CatalogPage {
	t.Helper()
	return NewCatalogPage(entry(t, domain.ViewBlogs), Deps{Catalog: testCatalog(), Related: fakeRelated{}, PageSize: 10})
}

func TestFactory(t *testing.T) {
	f := Factory(Deps{Catalog: testCatalog()})

	home, err := f(entry(t, domain.ViewHome))
	require.NoError(t, err)
	assert.IsType(t, &HomePage{}, home)

	info, err := f(entry(t, domain.ViewOpenJFX))
	require.NoError(t, err)
	assert.IsType(t, &InfoPage{}, info)

	videos, err := f(entry(t, domain.ViewVideos))
	require.NoError(t, err)
	require.IsType(t, &CatalogPage{}, videos)
	assert.Equal(t, domain.KindVideo, videos.(*CatalogPage).Kind())
}

func TestSelectItemStartsLoadAndResolvesNames(t *testing.T) {
	p := blogPage(t)
	require.NoError(t, p.SelectItem("b1"))

	task := p.TakePending()
	require.NotNil(t, task)
	assert.Nil(t, p.TakePending())

	d := p.Detail("*")
	require.NotNil(t, d)
	assert.Equal(t, []string{"Dirk"}, d.People)
	assert.Equal(t, "DLSC", d.Company)
	assert.True(t, d.Related.Supported)
	assert.True(t, d.Related.Loading)

	require.True(t, p.ApplyRelated(task.Run()))
	d = p.Detail("*")
	assert.False(t, d.Related.Loading)
	require.Len(t, d.Related.Items, 1)
	assert.Equal(t, "post of Dirk's blog", d.Related.Items[0].Title)
}

func TestRelatedErrorShownInDetail(t *testing.T) {
	p := blogPage(t)
	require.NoError(t, p.SelectItem("bad"))
	require.True(t, p.ApplyRelated(p.TakePending().Run()))

	d := p.Detail("")
	assert.ErrorContains(t, d.Related.Err, "feed down")
}

func TestSelectItemRevealsFilteredItem(t *testing.T) {
	p := blogPage(t)
	p.Coordinator().SetQuery("broken")
	require.Equal(t, 1, len(p.Coordinator().Snapshot().Items))

	require.NoError(t, p.SelectItem("b1"))
	assert.Equal(t, "", p.Coordinator().Snapshot().Query)
	assert.Equal(t, "b1", p.Coordinator().Selection.SelectedID())

	assert.ErrorIs(t, p.SelectItem("nope"), selection.ErrNotInResult)
}

func TestDeactivateCancelsAndActivateReloads(t *testing.T) {
	p := blogPage(t)
	first := p.Coordinator().MoveCursor(navigation.DirectionDown)
	require.NotNil(t, first)

	p.Deactivate()
	assert.False(t, p.ApplyRelated(first.Run()), "load canceled by deactivation is dropped")

	p.Activate()
	again := p.TakePending()
	require.NotNil(t, again)
	assert.True(t, p.ApplyRelated(again.Run()))
	assert.Equal(t, "bad", p.Coordinator().Selection.SelectedID())
}

func TestActivateFollowsCatalogChanges(t *testing.T) {
	c := testCatalog()
	p := NewCatalogPage(entry(t, domain.ViewVideos), Deps{Catalog: c})
	assert.Len(t, p.Coordinator().Snapshot().Items, 1)

	c.Append(domain.KindVideo, domain.Item{ID: "v2", Kind: domain.KindVideo, Title: "Another talk"})
	p.Activate()
	assert.Len(t, p.Coordinator().Snapshot().Items, 2)
	assert.Nil(t, p.TakePending())
}

func TestSelectItemSeesChangesWhileHidden(t *testing.T) {
	c := testCatalog()
	p := NewCatalogPage(entry(t, domain.ViewVideos), Deps{Catalog: c})
	p.Deactivate()

	c.Append(domain.KindVideo, domain.Item{ID: "v2", Kind: domain.KindVideo, Title: "Another talk"})
	require.NoError(t, p.SelectItem("v2"))
	id, ok := p.SelectedID()
	assert.True(t, ok)
	assert.Equal(t, "v2", id)

	c.Remove(domain.KindVideo, "v1")
	assert.Error(t, p.SelectItem("v1"))
	id, _ = p.SelectedID()
	assert.NotEqual(t, "v1", id)
}

// recordingBus keeps published events in order
type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}
func (b *recordingBus) Close() {}

func (b *recordingBus) lastOpened(t *testing.T) eventbus.ItemOpenedEvent {
	t.Helper()
	for i := len(b.events) - 1; i >= 0; i-- {
		if e, ok := b.events[i].(eventbus.ItemOpenedEvent); ok {
			return e
		}
	}
	t.Fatal("no ItemOpenedEvent published")
	return eventbus.ItemOpenedEvent{}
}

func TestOpenItemOnCachedPage(t *testing.T) {
	c := testCatalog()
	bus := &recordingBus{}
	table := router.DefaultTable()
	table.Bind(Factory(Deps{Catalog: c}))
	r := router.New(table, router.Options{ReusePages: true, Bus: bus})

	require.NoError(t, r.SetView(domain.ViewVideos))
	require.NoError(t, r.SetView(domain.ViewHome))

	t.Run("appended while hidden", func(t *testing.T) {
		c.Append(domain.KindVideo, domain.Item{ID: "v2", Kind: domain.KindVideo, Title: "Another talk"})
		require.NoError(t, r.OpenItem(domain.ItemRef{Kind: domain.KindVideo, ID: "v2"}))
		assert.Equal(t, "?page=/VIDEOS&item=v2", r.Route())
		assert.True(t, bus.lastOpened(t).Selected)
	})

	t.Run("removed while hidden", func(t *testing.T) {
		require.NoError(t, r.SetView(domain.ViewHome))
		c.Remove(domain.KindVideo, "v1")
		require.NoError(t, r.OpenItem(domain.ItemRef{Kind: domain.KindVideo, ID: "v1"}))
		assert.Equal(t, domain.ViewVideos, r.Current())
		assert.Equal(t, "?page=/VIDEOS", r.Route())
		assert.False(t, bus.lastOpened(t).Selected)
	})
}

func TestVideosHaveNoRelatedContent(t *testing.T) {
	p := NewCatalogPage(entry(t, domain.ViewVideos), Deps{Catalog: testCatalog(), Related: fakeRelated{}})
	require.NoError(t, p.SelectItem("v1"))
	assert.Nil(t, p.TakePending())
	assert.False(t, p.Detail("").Related.Supported)
}

func TestReference(t *testing.T) {
	p := blogPage(t)
	_, ok := p.Reference(domain.KindPerson)
	assert.False(t, ok, "nothing selected")

	require.NoError(t, p.SelectItem("b1"))
	ref, ok := p.Reference(domain.KindPerson)
	require.True(t, ok)
	assert.Equal(t, domain.ItemRef{Kind: domain.KindPerson, ID: "p1"}, ref)

	ref, ok = p.Reference(domain.KindCompany)
	require.True(t, ok)
	assert.Equal(t, "c1", ref.ID)
}

func TestHomePage(t *testing.T) {
	p := NewHomePage(testCatalog(), nil)
	news := p.LatestNews(5)
	require.Len(t, news, 2)
	assert.Equal(t, "n2", news[0].ID)

	md := p.Markdown()
	assert.Contains(t, md, "| 7 | Blogs | 2 |")
	assert.Contains(t, md, "**2024-05-01** Fresh news")
	assert.NotContains(t, md, "| Home |")
}

func TestInfoPage(t *testing.T) {
	assert.Contains(t, NewInfoPage(domain.ViewOpenJFX).Markdown(), "# OpenJFX")
}
