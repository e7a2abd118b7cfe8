// Package cache implements the read-through/write-through cache that fronts
// an optolink.Connection: read_param falls back to a live device command
// only when the cached entry is missing, stale, or a reload is forced,
// set_param always writes through to the device, and both keep the cache
// consistent across parent/child dependencies of aggregated parameters.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/optolink/bridge/param"
)

// connection is the subset of *optolink.Connection the cache depends on.
// Kept as an interface so tests can substitute a stub without spinning up a
// real runner/link.
type connection interface {
	ParamStorage() *param.Storage
	ReadParam(ctx context.Context, id string) (*param.Reading, error)
	SetParam(ctx context.Context, id string, value any) error
}

// Cache wraps a connection and memoizes ParameterReadings.
type Cache struct {
	conn connection

	mu     sync.Mutex
	values map[string]*param.Reading
}

func New(conn connection) *Cache {
	return &Cache{conn: conn, values: make(map[string]*param.Reading)}
}

// ReadParam returns a cached reading if one exists, is not forced to
// reload, and is not older than maxAge (maxAge <= 0 means no limit).
// Otherwise it reads the parameter from the device, caches the result, and
// invalidates any cached children.
func (c *Cache) ReadParam(ctx context.Context, id string, force bool, maxAge time.Duration) (*param.Reading, error) {
	c.mu.Lock()
	reading := c.getReadingLocked(id)
	c.mu.Unlock()

	mustReload := reading == nil || force || (maxAge > 0 && reading.Time.Before(time.Now().Add(-maxAge)))
	if !mustReload {
		return reading, nil
	}

	fresh, err := c.conn.ReadParam(ctx, id)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.values[id] = fresh
	c.invalidateChildrenLocked(id)
	c.mu.Unlock()
	return fresh, nil
}

// SetParam writes value through to the device, and on success caches it and
// invalidates dependent entries: children of an aggregated parameter, and
// the parent of a dotted child id (whose other elements are now unknown).
func (c *Cache) SetParam(ctx context.Context, id string, value any) error {
	if err := c.conn.SetParam(ctx, id, value); err != nil {
		return err
	}
	p, _, _, err := c.conn.ParamStorage().Resolve(id)
	if err != nil {
		return err
	}
	reading, err := param.NewReadingNow(p, value, time.Now())
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[id] = reading
	c.invalidateChildrenLocked(id)
	if dot := strings.IndexByte(id, '.'); dot >= 0 {
		delete(c.values, id[:dot])
	}
	return nil
}

// getReadingLocked returns a cached reading for id, synthesizing it from a
// cached parent's value when only the parent (not the specific child) is
// cached. Caller must hold c.mu.
func (c *Cache) getReadingLocked(id string) *param.Reading {
	if r, ok := c.values[id]; ok {
		return r
	}
	dot := strings.IndexByte(id, '.')
	if dot < 0 {
		return nil
	}
	container, indexStr := id[:dot], id[dot+1:]
	parentReading, ok := c.values[container]
	if !ok {
		return nil
	}
	index, err := strconv.Atoi(indexStr)
	if err != nil {
		return nil
	}
	agg, ok := c.conn.ParamStorage().Aggregate(container)
	if !ok {
		return nil
	}
	childParam, err := agg.ChildParameter(index)
	if err != nil {
		return nil
	}
	items, ok := parentReading.Value.Value.([]any)
	if !ok || index < 0 || index >= len(items) {
		return nil
	}
	return &param.Reading{
		Value: param.Value{Parameter: childParam, Value: items[index]},
		Time:  parentReading.Time,
	}
}

// invalidateChildrenLocked drops every cached "<id>.<i>" entry when id
// names an aggregated parameter. Caller must hold c.mu.
func (c *Cache) invalidateChildrenLocked(id string) {
	agg, ok := c.conn.ParamStorage().Aggregate(id)
	if !ok {
		return
	}
	for i := 0; i < agg.ChildCount; i++ {
		delete(c.values, fmt.Sprintf("%s.%d", id, i))
	}
}
