package client

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wiqnnc/wiki/internal/search"
)

// Session defaults.
const (
	DefaultDebounce  = 140 * time.Millisecond
	DefaultCacheSize = 64
)

// Status is the bootstrap state of a session.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// State is what a host renders.
type State struct {
	Status      Status
	Query       string
	Results     []search.Hit
	Manifest    *search.Manifest
	IsSearching bool

	// Err is the bootstrap failure when Status is StatusError.
	Err error
}

// HasQuery reports whether the query has non-blank text.
func (s State) HasQuery() bool {
	return strings.TrimSpace(s.Query) != ""
}

func (s State) clone() State {
	out := s
	out.Results = cloneHits(s.Results)
	if s.Manifest != nil {
		m := *s.Manifest
		out.Manifest = &m
	}
	return out
}

// cloneHits copies hits including their badge slices.
func cloneHits(hits []search.Hit) []search.Hit {
	out := make([]search.Hit, len(hits))
	for i, h := range hits {
		out[i] = h
		if h.Badges != nil {
			out[i].Badges = make([]string, len(h.Badges))
			copy(out[i].Badges, h.Badges)
		}
	}
	return out
}

// Searcher answers a single lookup. *search.Index implements it.
type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) ([]search.Hit, error)
}

// Loader produces the session's index.
type Loader func(ctx context.Context) (Searcher, error)

// Options configures a Session. Zero values select the defaults.
type Options struct {
	Debounce time.Duration
	Limit    int
	Fields   []search.Field

	// InitialURL seeds the query from its q parameter.
	InitialURL *url.URL
	History    History

	Logger *slog.Logger

	// CacheSize bounds the per-session query memo. Negative disables it.
	CacheSize int

	// Loader replaces Bootstrap over the session's fetcher.
	Loader Loader
}

// Session owns one loaded index and the query lifecycle around it.
type Session struct {
	fetcher Fetcher
	opts    Options
	logger  *slog.Logger
	cache   *lru.Cache[string, []search.Hit]

	mu       sync.Mutex
	state    State
	location *url.URL
	index    Searcher
	started  bool
	closed   bool
	ctx      context.Context
	cancel   context.CancelFunc

	// generation advances on every query change; stale lookups compare it
	// before committing.
	generation   uint64
	timer        *time.Timer
	cancelLookup context.CancelFunc

	updates chan State
}

// NewSession creates a session in the loading state. Nothing is fetched
// until Start.
func NewSession(fetcher Fetcher, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Limit <= 0 {
		opts.Limit = search.DefaultLimit
	}
	if len(opts.Fields) == 0 {
		opts.Fields = search.DefaultFields
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Loader == nil {
		opts.Loader = func(ctx context.Context) (Searcher, error) {
			return Bootstrap(ctx, fetcher)
		}
	}

	s := &Session{
		fetcher: fetcher,
		opts:    opts,
		logger: opts.Logger.With(
			slog.String("component", "search_session"),
			slog.String("session", uuid.NewString())),
		state: State{
			Status:  StatusLoading,
			Query:   InitialQuery(opts.InitialURL),
			Results: []search.Hit{},
		},
		location: opts.InitialURL,
		updates:  make(chan State, 1),
	}
	if opts.CacheSize > 0 {
		// lru.New only fails for a non-positive size.
		s.cache, _ = lru.New[string, []search.Hit](opts.CacheSize)
	}
	return s
}

// Start begins bootstrap in the background. Later calls are no-ops.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.reflectLocked()
	s.publishLocked()

	go s.bootstrap(s.ctx)
}

func (s *Session) bootstrap(ctx context.Context) {
	start := time.Now()
	ix, err := s.opts.Loader(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.logger.Error("failed to bootstrap search", slog.String("error", err.Error()))
		s.state.Status = StatusError
		s.state.Err = err
		s.state.IsSearching = false
		s.publishLocked()
		s.mu.Unlock()
		return
	}
	s.index = ix
	s.state.Status = StatusReady
	s.logger.Debug("search index ready", slog.Duration("elapsed", time.Since(start)))
	if s.state.HasQuery() {
		s.scheduleLocked()
	}
	s.publishLocked()
	s.mu.Unlock()

	if s.fetcher == nil {
		return
	}
	m, err := FetchManifest(ctx, s.fetcher)
	if err != nil {
		s.logger.Debug("search manifest unavailable", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state.Manifest = m
	s.publishLocked()
}

// SetQuery replaces the query text. Any pending or in-flight lookup is
// cancelled; a new lookup runs once the input has been stable for the
// debounce interval.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.state.Query = text
	s.reflectLocked()
	s.supersedeLocked()

	if !s.state.HasQuery() {
		s.state.Results = []search.Hit{}
		s.state.IsSearching = false
		s.publishLocked()
		return
	}
	if s.state.Status == StatusReady {
		s.scheduleLocked()
	}
	s.publishLocked()
}

// supersedeLocked stops the pending timer and cancels the in-flight lookup.
func (s *Session) supersedeLocked() {
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancelLookup != nil {
		s.cancelLookup()
		s.cancelLookup = nil
	}
}

func (s *Session) scheduleLocked() {
	gen := s.generation
	query := strings.TrimSpace(s.state.Query)
	s.state.IsSearching = true
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.lookup(gen, query)
	})
}

func (s *Session) lookup(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	if hits, ok := s.cachedLocked(query); ok {
		s.commitLocked(hits)
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelLookup = cancel
	index := s.index
	s.mu.Unlock()

	hits, err := index.Search(ctx, query, search.Options{Limit: s.opts.Limit, Fields: s.opts.Fields})
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.generation {
		return
	}
	s.cancelLookup = nil
	if err != nil {
		s.logger.Warn("search query failed",
			slog.String("query", query),
			slog.String("error", err.Error()))
		hits = []search.Hit{}
	} else if s.cache != nil {
		s.cache.Add(query, cloneHits(hits))
	}
	s.commitLocked(hits)
}

func (s *Session) cachedLocked(query string) ([]search.Hit, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(query)
}

func (s *Session) commitLocked(hits []search.Hit) {
	s.state.Results = hits
	s.state.IsSearching = false
	s.publishLocked()
}

// Submit returns the route of the top result. ok is false when there are no
// results.
func (s *Session) Submit() (route string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.state.Results) == 0 {
		return "", false
	}
	return s.state.Results[0].Route, true
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Updates delivers state changes. Only the latest undelivered state is kept,
// so a slow reader skips intermediate states. The channel is closed by Close.
func (s *Session) Updates() <-chan State {
	return s.updates
}

func (s *Session) publishLocked() {
	snap := s.state.clone()
	select {
	case <-s.updates:
	default:
	}
	s.updates <- snap
}

func (s *Session) reflectLocked() {
	if s.location == nil {
		return
	}
	s.location = ReflectQuery(s.location, s.state.Query)
	if s.opts.History != nil {
		s.opts.History.Replace(s.location)
	}
}

// Close tears the session down. Pending and in-flight work is cancelled and
// no state change is published afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.supersedeLocked()
	if s.cancel != nil {
		s.cancel()
	}
	close(s.updates)
}
