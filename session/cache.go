// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/poiesic/docquery/core"
)

// Cache maps owner keys to retrieval sessions. Entries are created on
// first access and refreshed in place when the owner's remote version
// advances; entries are never implicitly removed, so growth is bounded
// only by the number of distinct owners.
//
// The map lock is held only for map operations. Session construction runs
// outside it under a per-key guard, so one owner's slow load never blocks
// another owner's lookup.
type Cache struct {
	build    ComponentFunc
	versions VersionSource
	logger   *slog.Logger

	group    singleflight.Group
	mu       sync.Mutex
	sessions map[string]*RetrievalSession
}

// CacheOption configures a Cache.
type CacheOption func(*Cache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewCache creates a session cache over the given component and version
// sources.
func NewCache(build ComponentFunc, versions VersionSource, opts ...CacheOption) (*Cache, error) {
	if build == nil {
		return nil, ErrComponentSourceRequired
	}
	if versions == nil {
		return nil, ErrVersionSourceRequired
	}

	c := &Cache{
		build:    build,
		versions: versions,
		logger:   slog.Default().With("component", "session"),
		sessions: make(map[string]*RetrievalSession),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// GetOrCreate returns the owner's session, constructing and loading it on
// first access. Concurrent first accesses for the same owner share a
// single load; every caller observes the same session or the same
// failure. A cached session is version-checked and reloaded in place
// before being returned; a session whose reload fails is evicted so the
// next request starts from scratch.
func (c *Cache) GetOrCreate(ctx context.Context, ownerKey string) (*RetrievalSession, error) {
	if strings.TrimSpace(ownerKey) == "" {
		return nil, core.ErrEmptyOwnerKey
	}

	c.mu.Lock()
	sess, ok := c.sessions[ownerKey]
	c.mu.Unlock()
	if ok {
		if err := sess.reloadIfNeeded(ctx); err != nil {
			c.evict(ownerKey, sess)
			return nil, err
		}
		return sess, nil
	}

	v, err, _ := c.group.Do(ownerKey, func() (any, error) {
		// Another caller may have inserted while this one waited on
		// the guard.
		c.mu.Lock()
		existing, ok := c.sessions[ownerKey]
		c.mu.Unlock()
		if ok {
			return existing, nil
		}

		sess := newSession(ownerKey, c.build, c.versions, c.logger)
		if loadErr := sess.load(ctx); loadErr != nil {
			return nil, loadErr
		}

		c.mu.Lock()
		c.sessions[ownerKey] = sess
		c.mu.Unlock()
		return sess, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*RetrievalSession), nil
}

// Invalidate removes the owner's session so the next access rebuilds it.
func (c *Cache) Invalidate(ownerKey string) {
	c.mu.Lock()
	delete(c.sessions, ownerKey)
	c.mu.Unlock()
}

// Len returns the number of cached sessions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sessions)
}

// evict removes the mapping only if it still points at the given session,
// so a concurrent replacement is not discarded.
func (c *Cache) evict(ownerKey string, sess *RetrievalSession) {
	c.mu.Lock()
	if current, ok := c.sessions[ownerKey]; ok && current == sess {
		delete(c.sessions, ownerKey)
	}
	c.mu.Unlock()
}
