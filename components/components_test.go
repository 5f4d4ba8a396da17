package components

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/swfilms"
	"github.com/pthm/swfilms/internal/fetch"
	"github.com/pthm/swfilms/internal/swapi"
)

type filmFixture struct {
	title   string
	episode int
	date    string
	people  []string
}

var testFilms = []filmFixture{
	{"A New Hope", 4, "1977-05-25", []string{"1"}},
	{"The Empire Strikes Back", 5, "1980-05-17", []string{"1", "2", "3"}},
}

var testPeople = map[string]string{
	"1": "Luke Skywalker",
	"2": "C-3PO",
	"3": "R2-D2",
}

// fakeSWAPI serves the films collection and people by id.
type fakeSWAPI struct {
	srv *httptest.Server

	mu     sync.Mutex
	status map[string]int
	delay  map[string]time.Duration
	names  map[string]string
	gate   chan struct{}
}

func newFakeSWAPI(t *testing.T) *fakeSWAPI {
	t.Helper()
	f := &fakeSWAPI{
		status: make(map[string]int),
		delay:  make(map[string]time.Duration),
		names:  make(map[string]string),
	}
	for id, name := range testPeople {
		f.names[id] = name
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeSWAPI) base() string {
	return f.srv.URL + "/api/"
}

func (f *fakeSWAPI) personURL(id string) string {
	return f.base() + "people/" + id + "/"
}

func (f *fakeSWAPI) setStatus(key string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if code == 0 {
		delete(f.status, key)
		return
	}
	f.status[key] = code
}

func (f *fakeSWAPI) setDelay(key string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay[key] = d
}

func (f *fakeSWAPI) setName(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names[id] = name
}

// holdPeople makes people requests wait until the returned func is called.
func (f *fakeSWAPI) holdPeople(t *testing.T) func() {
	f.mu.Lock()
	f.gate = make(chan struct{})
	gate := f.gate
	f.mu.Unlock()

	var once sync.Once
	release := func() { once.Do(func() { close(gate) }) }
	t.Cleanup(release)
	return release
}

func (f *fakeSWAPI) handle(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/")

	f.mu.Lock()
	status := f.status[key]
	delay := f.delay[key]
	gate := f.gate
	f.mu.Unlock()

	if strings.HasPrefix(key, "people/") && gate != nil {
		<-gate
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case key == "films":
		json.NewEncoder(w).Encode(f.filmList())
	case strings.HasPrefix(key, "people/"):
		id := strings.Trim(strings.TrimPrefix(key, "people/"), "/")
		f.mu.Lock()
		name, ok := f.names[id]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(swapi.Person{Name: name, URL: f.personURL(id)})
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeSWAPI) filmList() swapi.FilmList {
	list := swapi.FilmList{Count: len(testFilms)}
	for _, tf := range testFilms {
		film := swapi.Film{Title: tf.title, EpisodeID: tf.episode, ReleaseDate: tf.date}
		for _, id := range tf.people {
			film.Characters = append(film.Characters, f.personURL(id))
		}
		list.Results = append(list.Results, film)
	}
	return list
}

type fixture struct {
	api    *fakeSWAPI
	client *fetch.Client
	set    *Set
}

func newFixture(t *testing.T, suspense, showNames bool) *fixture {
	t.Helper()
	api := newFakeSWAPI(t)

	upstream, err := swapi.NewClient(api.base(), zerolog.Nop(), swapi.WithMaxRetries(0))
	require.NoError(t, err)

	client, err := fetch.New(fetch.Config{
		BaseURL:  upstream.BaseURL(),
		Fetcher:  upstream.Fetch,
		Suspense: suspense,
	}, zerolog.Nop())
	require.NoError(t, err)

	reg := swfilms.NewRegistry([]byte("test-key"))
	set := Init(reg, Options{ShowCharacterNames: showNames})

	return &fixture{api: api, client: client, set: set}
}

func (fx *fixture) ctx() context.Context {
	return fetch.WithClient(context.Background(), fx.client)
}

func renderHTML(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func rowCells(doc *goquery.Document, episode string) []string {
	return doc.Find(`tr[data-key="` + episode + `"] td`).Map(func(_ int, s *goquery.Selection) string {
		return strings.TrimSpace(s.Text())
	})
}

func TestPageShowsLoadingFirst(t *testing.T) {
	fx := newFixture(t, true, false)

	html := renderHTML(t, fx.ctx(), Page(fx.set.Films))
	doc := parse(t, html)

	assert.Equal(t, "Star Wars", doc.Find("h1").Text())
	assert.Equal(t, FilmsLoadingText, doc.Find("div.suspense h3").Text())
	assert.Equal(t, 0, doc.Find("table").Length())

	url, ok := doc.Find("div.suspense").Attr("hx-get")
	require.True(t, ok)
	assert.Equal(t, fx.set.Films.Prefix()+"/", url)
	assert.Contains(t, html, HTMXScript)
}

func TestFilmsResumeRendersTable(t *testing.T) {
	fx := newFixture(t, true, false)

	result := swfilms.TestGet(fx.client, fx.set.Films, fx.set.Films.URL(FilmsProps{}))
	require.True(t, result.IsOK(), result.HTML)
	assert.False(t, result.IsPending())

	doc, err := result.Document()
	require.NoError(t, err)

	assert.Equal(t, "Films 2", doc.Find("section.films h2").Text())
	assert.Equal(t, "Count: 2", doc.Find("section.films p").Text())

	headers := doc.Find("thead th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Nr.", "Name", "Episode", "Date", "Characters"}, headers)

	assert.Equal(t, 2, doc.Find("tbody tr").Length())
	assert.Equal(t, []string{"1", "A New Hope", "4", "1977-05-25", "1"}, rowCells(doc, "4"))
	assert.Equal(t, []string{"2", "The Empire Strikes Back", "5", "1980-05-17", "3"}, rowCells(doc, "5"))
}

func TestFilmsFailureShowsOnlyFallback(t *testing.T) {
	fx := newFixture(t, true, true)
	fx.api.setStatus("films", http.StatusInternalServerError)

	result := swfilms.TestGet(fx.client, fx.set.Films, fx.set.Films.URL(FilmsProps{}))
	require.True(t, result.IsOK())

	assert.Equal(t, "<h2>"+FilmsErrorText+"</h2>", result.HTML)
}

func TestFilmsFailureIsNotCached(t *testing.T) {
	fx := newFixture(t, false, false)
	fx.api.setStatus("films", http.StatusBadGateway)

	html := renderHTML(t, fx.ctx(), Page(fx.set.Films))
	assert.Contains(t, html, FilmsErrorText)

	fx.api.setStatus("films", 0)

	html = renderHTML(t, fx.ctx(), Page(fx.set.Films))
	assert.Contains(t, html, "A New Hope")
	assert.NotContains(t, html, FilmsErrorText)
}

func TestBlockingPageRendersEverything(t *testing.T) {
	fx := newFixture(t, false, true)

	doc := parse(t, renderHTML(t, fx.ctx(), Page(fx.set.Films)))

	assert.Equal(t, 0, doc.Find("div.suspense").Length())
	assert.Equal(t, []string{"1", "A New Hope", "4", "1977-05-25", "Luke Skywalker"}, rowCells(doc, "4"))
	assert.Equal(t, []string{"2", "The Empire Strikes Back", "5", "1980-05-17", "Luke Skywalker, C-3PO, R2-D2"}, rowCells(doc, "5"))
}

func TestCharactersKeepInputOrder(t *testing.T) {
	fx := newFixture(t, false, true)
	// The first character resolves last.
	fx.api.setDelay("people/1/", 100*time.Millisecond)

	result, err := swfilms.TestRender(fx.client, fx.set.CharactersCell, CharactersCellProps{
		Characters: []string{fx.api.personURL("1"), fx.api.personURL("2")},
	})
	require.NoError(t, err)

	doc, err := result.Document()
	require.NoError(t, err)
	spans := doc.Find("span").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Luke Skywalker", ", C-3PO"}, spans)
}

func TestCharacterFailureIsContainedToItsCell(t *testing.T) {
	fx := newFixture(t, false, true)
	fx.api.setStatus("people/2/", http.StatusNotFound)

	doc := parse(t, renderHTML(t, fx.ctx(), Page(fx.set.Films)))

	assert.Equal(t, CharacterErrorText, doc.Find(`tr[data-key="5"] .alert-error`).Text())
	assert.Equal(t, "The Empire Strikes Back", rowCells(doc, "5")[1])
	assert.Equal(t, "Luke Skywalker", rowCells(doc, "4")[4])
	assert.NotContains(t, doc.Text(), FilmsErrorText)
}

func TestCharactersCellResumesIndependently(t *testing.T) {
	fx := newFixture(t, true, true)
	release := fx.api.holdPeople(t)

	result := swfilms.TestGet(fx.client, fx.set.Films, fx.set.Films.URL(FilmsProps{}))
	require.True(t, result.IsOK(), result.HTML)

	doc, err := result.Document()
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Find("tbody tr").Length())
	assert.Equal(t, 2, doc.Find("tbody .spinner").Length())

	urls := result.ResumeURLs()
	require.Len(t, urls, 2)
	for _, u := range urls {
		assert.True(t, strings.HasPrefix(u, fx.set.CharactersCell.Prefix()+"/?p="), u)
	}

	release()

	cell := swfilms.TestGet(fx.client, fx.set.CharactersCell, urls[0])
	require.True(t, cell.IsOK(), cell.HTML)
	assert.False(t, cell.IsPending())

	doc, err = cell.Document()
	require.NoError(t, err)
	assert.Equal(t, "Luke Skywalker", doc.Text())
}

func TestCharactersCellEmpty(t *testing.T) {
	fx := newFixture(t, true, true)

	result, err := swfilms.TestRender(fx.client, fx.set.CharactersCell, CharactersCellProps{})
	require.NoError(t, err)
	assert.Equal(t, "", result.HTML)
}

func TestCharacterNameEndpoint(t *testing.T) {
	fx := newFixture(t, true, true)

	url := fx.set.CharacterName.URL(CharacterNameProps{URL: fx.api.personURL("3")})
	result := swfilms.TestGet(fx.client, fx.set.CharacterName, url)

	require.True(t, result.IsOK(), result.HTML)
	assert.Equal(t, "R2-D2", result.HTML)
}

func TestCharacterNameEscapes(t *testing.T) {
	fx := newFixture(t, false, true)
	fx.api.setName("9", "<b>Boba</b>")

	result, err := swfilms.TestRender(fx.client, fx.set.CharacterName, CharacterNameProps{URL: fx.api.personURL("9")})
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Boba&lt;/b&gt;", result.HTML)
}

func TestCharacterNameWithoutClient(t *testing.T) {
	name := NewCharacterName()

	var buf bytes.Buffer
	err := name.View("https://swapi.dev/api/people/1/").Render(context.Background(), &buf)
	assert.ErrorIs(t, err, fetch.ErrNoClient)
}

func TestInitRegistersComponents(t *testing.T) {
	reg := swfilms.NewRegistry([]byte("test-key"))
	set := Init(reg, Options{})

	assert.Equal(t, 3, reg.Len())
	assert.NotNil(t, set.Films.Encoder())
	assert.NotEqual(t, set.Films.Prefix(), set.CharactersCell.Prefix())
}

func TestFallbackViews(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "<h3>Loading...</h3>", renderHTML(t, ctx, FilmsLoading()))
	assert.Equal(t, "<h2>Could not fetch films.</h2>", renderHTML(t, ctx, FilmsError()))
	assert.Equal(t, `<div class="alert alert-error" role="alert">a &amp; b</div>`, renderHTML(t, ctx, Alert("a & b")))
	assert.Contains(t, renderHTML(t, ctx, Spinner()), `class="spinner"`)
}
