package window

import (
	"sync"
	"time"

	psync "aegis/pkg/platform/sync"
)

// Counter is a sliding-window event counter keyed by IP. Each key holds the
// timestamps of its recent events; events older than the window are evicted
// on every touch and in bulk by the cleanup worker. Per-key mutation is
// serialized by a sharded mutex so hot IPs do not contend with each other.
type Counter struct {
	window  time.Duration
	locks   *psync.ShardedMutex
	buckets sync.Map // key -> *bucket
}

type bucket struct {
	events []time.Time
}

func NewCounter(window time.Duration) *Counter {
	return &Counter{
		window: window,
		locks:  psync.NewShardedMutex(),
	}
}

// Record adds an event for the key and returns how many events remain inside
// the window, the new event included.
func (c *Counter) Record(key string, now time.Time) int {
	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	value, _ := c.buckets.LoadOrStore(key, &bucket{})
	b := value.(*bucket)
	b.events = append(b.events, now)
	b.events = trim(b.events, now.Add(-c.window))
	return len(b.events)
}

// Count returns how many events the key has inside the window.
func (c *Counter) Count(key string, now time.Time) int {
	c.locks.Lock(key)
	defer c.locks.Unlock(key)

	value, ok := c.buckets.Load(key)
	if !ok {
		return 0
	}
	b := value.(*bucket)
	b.events = trim(b.events, now.Add(-c.window))
	return len(b.events)
}

// Reset drops all events for the key.
func (c *Counter) Reset(key string) {
	c.locks.Lock(key)
	defer c.locks.Unlock(key)
	c.buckets.Delete(key)
}

// Evict removes expired events from every bucket and drops empty buckets.
// Returns how many buckets were dropped. Run periodically by the cleanup
// worker so idle IPs do not accumulate.
func (c *Counter) Evict(now time.Time) int {
	horizon := now.Add(-c.window)
	dropped := 0
	c.buckets.Range(func(key, value any) bool {
		k := key.(string)
		c.locks.Lock(k)
		b := value.(*bucket)
		b.events = trim(b.events, horizon)
		if len(b.events) == 0 {
			c.buckets.Delete(key)
			dropped++
		}
		c.locks.Unlock(k)
		return true
	})
	return dropped
}

// trim drops events at or before the horizon, keeping order.
func trim(events []time.Time, horizon time.Time) []time.Time {
	kept := events[:0]
	for _, t := range events {
		if t.After(horizon) {
			kept = append(kept, t)
		}
	}
	return kept
}
