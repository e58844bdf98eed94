package detail

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cineparadis/images"
	"github.com/s0up4200/cineparadis/tmdb"
)

// Key identifies a detail route
type Key struct {
	Kind tmdb.MediaKind
	ID   string
}

// NewKey validates route parameters
func NewKey(kind, id string) (Key, error) {
	k, err := tmdb.ParseMediaKind(kind)
	if err != nil {
		return Key{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Key{}, fmt.Errorf("empty %s id", k)
	}
	return Key{Kind: k, ID: id}, nil
}

// Valid reports whether the key names a routable title
func (k Key) Valid() bool {
	return k.Kind.Valid() && k.ID != ""
}

// Slug returns the "<kind>/<id>" path of the key
func (k Key) Slug() string {
	return k.Kind.String() + "/" + k.ID
}

func (k Key) String() string {
	return k.Slug()
}

// FetchState is the lifecycle of the current record
type FetchState int

const (
	StateIdle FetchState = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s FetchState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("FetchState(%d)", int(s))
	}
}

// Recorder receives coordinator activity, typically for metrics
type Recorder interface {
	FetchStarted(kind string)
	FetchFinished(kind, outcome string, elapsed time.Duration)
	FetchDiscarded(kind string)
	TabSelected(tab string)
}

type nopRecorder struct{}

func (nopRecorder) FetchStarted(string)                         {}
func (nopRecorder) FetchFinished(string, string, time.Duration) {}
func (nopRecorder) FetchDiscarded(string)                       {}
func (nopRecorder) TabSelected(string)                          {}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithTimeout bounds every fetch. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}

// WithRecorder installs an activity recorder
func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithSite sets the site identity used for page metadata
func WithSite(site SiteInfo) Option {
	return func(c *Coordinator) {
		c.site = site
	}
}

// WithImages sets the image URL builder used for page metadata
func WithImages(b *images.Builder) Option {
	return func(c *Coordinator) {
		if b != nil {
			c.images = b
		}
	}
}

// View is a consistent snapshot of a detail page. Content and Views are nil
// unless State is StateLoaded.
type View struct {
	Key       Key
	State     FetchState
	Err       error
	ErrorKind ErrorKind
	Content   *tmdb.ContentRecord
	Views     *Views
	Tab       Tab
	Meta      PageMeta
}

// Loaded reports whether tab content may be rendered
func (v View) Loaded() bool {
	return v.State == StateLoaded
}

// cycle is one fetch for one key
type cycle struct {
	key    Key
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (cy *cycle) finish() {
	cy.once.Do(func() { close(cy.done) })
}

// Coordinator owns the state of one detail page: the fetch lifecycle of the
// active title, its derived views and the selected tab. It is safe for
// concurrent use.
type Coordinator struct {
	fetcher  tmdb.Fetcher
	logger   zerolog.Logger
	recorder Recorder
	timeout  time.Duration
	site     SiteInfo
	images   *images.Builder

	mu      sync.Mutex
	gen     uint64
	cur     *cycle
	key     Key
	state   FetchState
	err     error
	content *tmdb.ContentRecord
	views   *Views
	tabs    TabState
	closed  bool

	wg sync.WaitGroup
}

// NewCoordinator creates an idle coordinator
func NewCoordinator(fetcher tmdb.Fetcher, logger zerolog.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:  fetcher,
		logger:   logger.With().Str("component", "detail").Logger(),
		recorder: nopRecorder{},
		images:   images.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Activate navigates to key. A key different from the current one cancels
// any in-flight fetch, discards the current record, resets the tab and
// starts a new fetch. Activating the current key again does nothing and
// returns false.
func (c *Coordinator) Activate(ctx context.Context, key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if c.cur != nil && c.key == key {
		c.logger.Debug().Str("key", key.Slug()).Msg("Title already active, not refetching")
		return false
	}

	c.startLocked(ctx, key, true)
	return true
}

// Refresh refetches the active title, keeping the selected tab. It returns
// false when no title is active.
func (c *Coordinator) Refresh(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.cur == nil {
		return false
	}

	c.startLocked(ctx, c.key, false)
	return true
}

// Deactivate navigates away: the in-flight fetch is cancelled, the record
// is discarded and the coordinator returns to StateIdle.
func (c *Coordinator) Deactivate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deactivateLocked()
}

// Close deactivates the coordinator and waits for fetch goroutines to exit.
// Activate and Refresh are no-ops afterwards.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.deactivateLocked()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()
}

// deactivateLocked cancels the current cycle and clears the view. c.mu must
// be held.
func (c *Coordinator) deactivateLocked() {
	c.supersedeLocked()
	c.cur = nil
	c.key = Key{}
	c.state = StateIdle
	c.err = nil
	c.content = nil
	c.views = nil
	c.tabs.Reset()
}

// Select changes the tab. It is allowed in any fetch state; only rendering
// is gated on StateLoaded.
func (c *Coordinator) Select(index int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed, err := c.tabs.Select(index)
	if err != nil {
		return false, err
	}
	if changed {
		tab := c.tabs.Current()
		c.recorder.TabSelected(tab.String())
		c.logger.Debug().Str("key", c.key.Slug()).Str("tab", tab.String()).Msg("Tab selected")
	}
	return changed, nil
}

// Snapshot returns the current view
func (c *Coordinator) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Key:       c.key,
		State:     c.state,
		Err:       c.err,
		ErrorKind: Classify(c.err),
		Tab:       c.tabs.Current(),
	}
	if c.state == StateLoaded {
		v.Content = c.content
		v.Views = c.views
	}
	v.Meta = BuildMeta(c.site, c.key, v.Content, c.images)
	return v
}

// Done returns a channel closed when the current fetch resolves or is
// superseded. With no active fetch the channel is already closed.
func (c *Coordinator) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cur == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return c.cur.done
}

// Wait blocks until the coordinator leaves StateLoading or ctx ends
func (c *Coordinator) Wait(ctx context.Context) error {
	for {
		select {
		case <-c.Done():
		case <-ctx.Done():
			return ctx.Err()
		}

		c.mu.Lock()
		loading := c.state == StateLoading
		c.mu.Unlock()
		if !loading {
			return nil
		}
	}
}

// startLocked begins a new fetch cycle for key. c.mu must be held.
func (c *Coordinator) startLocked(ctx context.Context, key Key, resetTab bool) {
	c.supersedeLocked()

	c.gen++
	var (
		fctx   context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		fctx, cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		fctx, cancel = context.WithCancel(ctx)
	}

	cy := &cycle{
		key:    key,
		gen:    c.gen,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	c.cur = cy
	c.key = key
	c.state = StateLoading
	c.err = nil
	c.content = nil
	c.views = nil
	if resetTab {
		c.tabs.Reset()
	}

	c.recorder.FetchStarted(key.Kind.String())
	c.logger.Debug().Str("key", key.Slug()).Uint64("gen", cy.gen).Msg("Fetching title")

	c.wg.Add(1)
	go c.fetch(fctx, cy)
}

// supersedeLocked cancels the current cycle. Its goroutine will notice the
// generation change and drop its result.
func (c *Coordinator) supersedeLocked() {
	if c.cur == nil {
		return
	}
	c.gen++
	c.cur.cancel()
	c.cur.finish()
}

func (c *Coordinator) fetch(ctx context.Context, cy *cycle) {
	defer c.wg.Done()
	defer cy.finish()
	defer cy.cancel()

	start := time.Now()
	kind := cy.key.Kind.String()

	record, err := c.fetcher.Details(ctx, cy.key.Kind, cy.key.ID)
	if err == nil && record == nil {
		err = &tmdb.MalformedResponseError{Reason: "empty record"}
	}
	var views *Views
	if err == nil {
		views = Project(record)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cy.gen != c.gen {
		c.recorder.FetchDiscarded(kind)
		c.logger.Debug().
			Str("key", cy.key.Slug()).
			Uint64("gen", cy.gen).
			Msg("Discarding response for superseded title")
		return
	}

	elapsed := time.Since(start)
	if err != nil {
		errKind := Classify(err)
		c.state = StateFailed
		c.err = err
		c.recorder.FetchFinished(kind, errKind.String(), elapsed)
		c.logger.Warn().
			Err(err).
			Str("key", cy.key.Slug()).
			Str("error_kind", errKind.String()).
			Msg("Failed to load title")
		return
	}

	c.state = StateLoaded
	c.content = record
	c.views = views
	c.recorder.FetchFinished(kind, "loaded", elapsed)
	c.logger.Debug().
		Str("key", cy.key.Slug()).
		Dur("elapsed", elapsed).
		Int("cast", len(views.Cast)).
		Int("videos", len(views.Videos)).
		Int("recommendations", len(views.Recommendations)).
		Msg("Title loaded")
}
