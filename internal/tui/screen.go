// Package tui implements the news screen: one search input, one action and a
// scrollable list of articles fed by a single in-flight fetch.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsscreen/internal/config"
	"github.com/jask/newsscreen/internal/logger"
	"github.com/jask/newsscreen/internal/newsapi"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, input, button, spacer and help footer
	chromeHeight = 5
)

// Fetcher resolves an empty query to top headlines and anything else to a
// keyword search.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]newsapi.Article, error)
}

// Screen is the bubbletea model for the whole app.
type Screen struct {
	ctx      context.Context
	fetcher  Fetcher
	log      *logger.Logger
	state    fetchState
	seq      uint64
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	rowKeys  []string
	width    int
	height   int
}

func New(ctx context.Context, cfg config.Config, fetcher Fetcher, log *logger.Logger) *Screen {
	if log == nil {
		log = logger.Discard()
	}

	in := textinput.New()
	in.Placeholder = "Search articles..."
	in.Prompt = "> "
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))

	s := &Screen{
		ctx:      ctx,
		fetcher:  fetcher,
		log:      log.With("component", "tui"),
		state:    stateIdle{},
		input:    in,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	if !cfg.HasAPIKey() {
		s.state = stateMissingKey{}
	}
	s.resize(defaultWidth, defaultHeight)
	return s
}

// Init starts the top-headlines fetch unless the api key is missing.
func (s *Screen) Init() tea.Cmd {
	if _, ok := s.state.(stateMissingKey); ok {
		s.log.Warn("api key missing; not fetching")
		return nil
	}
	return tea.Batch(textinput.Blink, s.fetchCmd(""))
}

func (s *Screen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(m.Width, m.Height)
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(m)
	case articlesMsg:
		if m.seq != s.seq {
			s.log.Debug("dropping stale result", "seq", m.seq, "latest", s.seq, "query", m.query)
			return s, nil
		}
		s.state = stateReady{articles: m.articles}
		s.viewport.GotoTop()
		s.refreshList()
		return s, nil
	case fetchErrMsg:
		if m.seq != s.seq {
			s.log.Debug("dropping stale error", "seq", m.seq, "latest", s.seq, "query", m.query)
			return s, nil
		}
		s.log.Error("fetch failed", "query", m.query, "err", m.err)
		s.state = stateFailed{message: m.err.Error()}
		return s, nil
	case spinner.TickMsg:
		// let the tick loop die once nothing is loading
		if _, ok := s.state.(stateLoading); !ok {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(m)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, s.keys.Quit) {
		return s, tea.Quit
	}

	// only the ready list has an input to type into
	switch s.state.(type) {
	case stateMissingKey, stateLoading, stateFailed:
		return s, nil
	}

	switch {
	case key.Matches(m, s.keys.Search):
		return s, s.handleSearch()
	case key.Matches(m, s.keys.Up, s.keys.Down, s.keys.PageUp, s.keys.PageDown):
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(m)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(m)
	return s, cmd
}

// handleSearch fetches results for the current query. An empty query does
// nothing and leaves the current list on screen.
func (s *Screen) handleSearch() tea.Cmd {
	query := s.input.Value()
	if query == "" {
		return nil
	}
	s.log.Info("search", "query", query)
	return s.fetchCmd(query)
}

// fetchCmd enters the loading state and issues one fetch. Each call bumps the
// sequence so a slower, older response cannot overwrite a newer one.
func (s *Screen) fetchCmd(query string) tea.Cmd {
	s.seq++
	seq := s.seq
	s.state = stateLoading{}

	ctx, fetcher := s.ctx, s.fetcher
	return tea.Batch(
		s.spinner.Tick,
		func() tea.Msg {
			articles, err := fetcher.Fetch(ctx, query)
			if err != nil {
				return fetchErrMsg{seq: seq, query: query, err: err}
			}
			return articlesMsg{seq: seq, query: query, articles: articles}
		},
	)
}

func (s *Screen) resize(width, height int) {
	s.width, s.height = width, height
	s.input.Width = max(width-len(s.input.Prompt)-1, 10)
	s.help.Width = width
	s.viewport.Width = width
	s.viewport.Height = max(height-chromeHeight, 3)
	s.refreshList()
}

// refreshList re-renders the rows into the viewport and records their keys.
func (s *Screen) refreshList() {
	articles := s.articles()
	s.rowKeys = s.rowKeys[:0]
	for _, a := range articles {
		s.rowKeys = append(s.rowKeys, a.URL)
	}
	s.viewport.SetContent(renderRows(articles, s.width))
}

func (s *Screen) articles() []newsapi.Article {
	if st, ok := s.state.(stateReady); ok {
		return st.articles
	}
	return nil
}
