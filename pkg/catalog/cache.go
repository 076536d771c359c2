package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher downloads one lecture list. *Client implements it.
type Fetcher interface {
	FetchLectures(ctx context.Context, path string) ([]Lecture, error)
}

// Future is the result of one catalog fetch attempt. Every caller of Cache.Get
// during an attempt receives the same *Future.
type Future struct {
	done     chan struct{}
	lectures []Lecture
	err      error
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Done is closed once the attempt has resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the attempt resolves or ctx is done. Giving up on ctx does not
// cancel the attempt; other waiters still receive its result.
// The returned slice is shared and must not be modified.
func (f *Future) Wait(ctx context.Context) ([]Lecture, error) {
	select {
	case <-f.done:
		return f.lectures, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *Future) failed() bool {
	select {
	case <-f.done:
		return f.err != nil
	default:
		return false
	}
}

// CacheOptions configures a Cache.
type CacheOptions struct {
	// Sources are fetched in parallel and concatenated in this order.
	// Defaults to MajorsPath, LiberalArtsPath.
	Sources []string
	// RetryOnFailure lets the next Get start a new attempt once an attempt has failed.
	// When false a failed attempt is served forever, like a successful one.
	RetryOnFailure bool
	// Snapshot, when set, is consulted before the network and refreshed after a fetch.
	Snapshot *Snapshot
	Logger   *slog.Logger
}

// Cache fetches the merged catalog once per process and hands every caller the same Future.
// Construct it once at startup and pass it to the components that need lectures.
type Cache struct {
	ctx      context.Context
	fetcher  Fetcher
	sources  []string
	retry    bool
	snapshot *Snapshot
	log      *slog.Logger

	mu       sync.Mutex
	current  *Future
	attempts int
}

// NewCache creates the catalog cache. ctx bounds every fetch attempt and should live
// as long as the process.
func NewCache(ctx context.Context, fetcher Fetcher, opts CacheOptions) *Cache {
	sources := opts.Sources
	if len(sources) == 0 {
		sources = []string{MajorsPath, LiberalArtsPath}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		ctx:      ctx,
		fetcher:  fetcher,
		sources:  sources,
		retry:    opts.RetryOnFailure,
		snapshot: opts.Snapshot,
		log:      logger,
	}
}

// Get returns the current attempt, starting one on the first call (or after a failure
// when RetryOnFailure is set).
func (c *Cache) Get() *Future {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && !(c.retry && c.current.failed()) {
		return c.current
	}

	f := newFuture()
	c.current = f
	c.attempts++
	go c.resolve(f, c.attempts)
	return f
}

// Attempts reports how many fetch attempts have been started.
func (c *Cache) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

func (c *Cache) resolve(f *Future, attempt int) {
	defer close(f.done)

	if c.snapshot != nil {
		if lectures, ok := c.snapshot.Read(); ok {
			c.log.Debug("catalog served from snapshot", "path", c.snapshot.Path(), "lectures", len(lectures))
			f.lectures = lectures
			return
		}
	}

	start := time.Now()
	c.log.Info("catalog fetch started", "attempt", attempt, "sources", len(c.sources))

	lists := make([][]Lecture, len(c.sources))
	g, ctx := errgroup.WithContext(c.ctx)
	for i, source := range c.sources {
		g.Go(func() error {
			lectures, err := c.fetcher.FetchLectures(ctx, source)
			if err != nil {
				return fmt.Errorf("catalog source %s: %w", source, err)
			}
			lists[i] = lectures
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.log.Error("catalog fetch failed", "attempt", attempt, "error", err)
		f.err = err
		return
	}

	total := 0
	for _, l := range lists {
		total += len(l)
	}
	merged := make([]Lecture, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	f.lectures = merged

	c.log.Info("catalog fetch finished", "attempt", attempt, "lectures", total, "elapsed", time.Since(start))

	if c.snapshot != nil {
		if err := c.snapshot.Write(merged); err != nil {
			c.log.Warn("could not write catalog snapshot", "error", err)
		}
	}
}
