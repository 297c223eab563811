package querycache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/nlegrand-dev/obslens/internal/ports"
)

type State string

const (
	StatePending State = "pending"
	StateFresh   State = "fresh"
	StateStale   State = "stale"
	StateError   State = "error"
)

// Entry is one cached dataset. Stale and error entries keep the last
// good Data so callers can keep rendering it until a refetch lands.
type Entry struct {
	Key       Key
	Data      any
	FetchedAt time.Time
	State     State
	Err       error
	RequestID string
}

type FetchFunc func(ctx context.Context) (any, error)

// Cache is a keyed asynchronous cache of server responses. At most one
// fetch per distinct key is in flight at a time; concurrent callers of
// Fetch for the same key share one call and one resolution.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry

	flight singleflight.Group
	clock  ports.Clock

	subMu   sync.Mutex
	subs    map[int]func(Key)
	nextSub int
}

func New(clock ports.Clock) *Cache {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &Cache{
		entries: make(map[string]Entry),
		clock:   clock,
		subs:    make(map[int]func(Key)),
	}
}

// Fetch returns the cached data for key when it is fresh; otherwise it
// runs fn and caches the result. A fetch that resolves after the key
// stopped being current is still written: future reads of that key
// remain valid, and the key identity keeps it from leaking into other
// scopes.
func (c *Cache) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ks := key.String()

	c.mu.RLock()
	entry, ok := c.entries[ks]
	c.mu.RUnlock()
	if ok && entry.State == StateFresh {
		return entry.Data, nil
	}

	data, err, _ := c.flight.Do(ks, func() (any, error) {
		requestID := uuid.NewString()
		c.transition(key, func(e *Entry) {
			e.State = StatePending
			e.Err = nil
			e.RequestID = requestID
		})

		data, err := fn(ctx)
		if err != nil {
			c.transition(key, func(e *Entry) {
				e.State = StateError
				e.Err = err
				e.RequestID = requestID
			})
			return nil, err
		}

		now := c.clock.Now()
		c.transition(key, func(e *Entry) {
			e.State = StateFresh
			e.Err = nil
			e.Data = data
			e.FetchedAt = now
			e.RequestID = requestID
		})
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Lookup returns the current entry for key without triggering a fetch.
func (c *Cache) Lookup(key Key) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key.String()]
	return entry, ok
}

// Invalidate marks every entry under the given query names stale,
// regardless of parameters. Stale entries keep their data and are
// refetched lazily the next time a consumer reads them. Returns the
// number of entries marked.
func (c *Cache) Invalidate(queryNames ...string) int {
	stale := make([]Key, 0)

	c.mu.Lock()
	for ks, entry := range c.entries {
		if entry.State != StateFresh && entry.State != StateError {
			continue
		}
		for _, name := range queryNames {
			if entry.Key.Query == name {
				entry.State = StateStale
				c.entries[ks] = entry
				stale = append(stale, entry.Key)
				break
			}
		}
	}
	c.mu.Unlock()

	for _, key := range stale {
		c.notify(key)
	}
	return len(stale)
}

// Subscribe registers fn to be called after any entry changes. The
// returned function removes the subscription.
func (c *Cache) Subscribe(fn func(Key)) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Cache) transition(key Key, apply func(*Entry)) {
	ks := key.String()

	c.mu.Lock()
	entry, ok := c.entries[ks]
	if !ok {
		entry = Entry{Key: key}
	}
	apply(&entry)
	c.entries[ks] = entry
	c.mu.Unlock()

	c.notify(key)
}

func (c *Cache) notify(key Key) {
	c.subMu.Lock()
	fns := make([]func(Key), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}
