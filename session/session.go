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
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/vectorstore"
)

// DontKnowAnswer is returned verbatim when retrieval finds no matching
// chunks for a question.
const DontKnowAnswer = "I don't know. The indexed documents contain nothing relevant to this question."

// State is the lifecycle state of a RetrievalSession.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Components are the per-owner retrieval dependencies a session runs on.
// They are rebuilt as a unit when the owner's version advances.
type Components struct {
	Store     *vectorstore.Store
	Generator ai.Generator
	Parents   storage.ParentChunkRepository
	TopK      int
}

// ComponentFunc resolves the current components for an owner. It is
// invoked once on first load and again on each reload after a version
// change.
type ComponentFunc func(ctx context.Context, ownerKey string) (*Components, error)

// VersionSource reports the remote configuration version for an owner.
// It is injected so version changes can be simulated deterministically.
type VersionSource interface {
	Version(ctx context.Context, ownerKey string) (uint64, error)
}

// RetrievalSession answers questions for one owner key. It is safe for
// concurrent use; reloads swap the component bundle under the session's
// own lock while the session identity stays stable.
type RetrievalSession struct {
	ownerKey string
	build    ComponentFunc
	versions VersionSource
	logger   *slog.Logger

	mu           sync.Mutex
	state        State
	comps        *Components
	localVersion uint64
}

func newSession(ownerKey string, build ComponentFunc, versions VersionSource, logger *slog.Logger) *RetrievalSession {
	return &RetrievalSession{
		ownerKey: ownerKey,
		build:    build,
		versions: versions,
		logger:   logger.With("owner", ownerKey),
		state:    StateUninitialized,
	}
}

// OwnerKey returns the key this session serves.
func (s *RetrievalSession) OwnerKey() string {
	return s.ownerKey
}

// State returns the session's current lifecycle state.
func (s *RetrievalSession) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// load builds the component bundle and records the remote version. On
// failure the session transitions to StateFailed and must be discarded.
func (s *RetrievalSession) load(ctx context.Context) error {
	version, err := s.versions.Version(ctx, s.ownerKey)
	if err == nil {
		var comps *Components
		comps, err = s.build(ctx, s.ownerKey)
		if err == nil {
			s.mu.Lock()
			s.comps = comps
			s.localVersion = version
			s.state = StateReady
			s.mu.Unlock()
			return nil
		}
	}

	s.mu.Lock()
	s.state = StateFailed
	s.mu.Unlock()
	return fmt.Errorf("load session for %s: %w", s.ownerKey, err)
}

// reloadIfNeeded compares the remote version with the local one and
// rebuilds the components in place when it has advanced. Unchanged
// versions are a no-op.
func (s *RetrievalSession) reloadIfNeeded(ctx context.Context) error {
	version, err := s.versions.Version(ctx, s.ownerKey)
	if err != nil {
		return fmt.Errorf("check version for %s: %w", s.ownerKey, err)
	}

	s.mu.Lock()
	current := s.localVersion
	s.mu.Unlock()
	if version == current {
		return nil
	}

	comps, err := s.build(ctx, s.ownerKey)
	if err != nil {
		s.mu.Lock()
		s.state = StateFailed
		s.mu.Unlock()
		return fmt.Errorf("reload session for %s: %w", s.ownerKey, err)
	}

	s.mu.Lock()
	s.comps = comps
	s.localVersion = version
	s.state = StateReady
	s.mu.Unlock()
	s.logger.Info("session reloaded", "version", version)
	return nil
}

func (s *RetrievalSession) components() (*Components, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady || s.comps == nil {
		return nil, fmt.Errorf("%w: %s is %s", ErrSessionNotReady, s.ownerKey, s.state)
	}
	return s.comps, nil
}

// Query answers a question in one synchronous round trip: retrieve,
// assemble prompt, generate. A question with zero retrieval matches gets
// the canned DontKnowAnswer, not an error.
func (s *RetrievalSession) Query(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", core.ErrEmptyQuestion
	}
	comps, err := s.components()
	if err != nil {
		return "", err
	}

	results, err := comps.Store.Search(ctx, question, comps.TopK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return DontKnowAnswer, nil
	}

	prompt, err := s.buildPrompt(ctx, comps, question, results)
	if err != nil {
		return "", err
	}
	answer, err := comps.Generator.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrUpstreamUnavailable, err)
	}
	return answer, nil
}

// Stream answers a question as a lazy, finite sequence of fragments. The
// returned channel closes when the model completes or the context is
// cancelled; after cancellation no further fragments are produced and the
// model stream is no longer pulled. The sequence is not restartable.
func (s *RetrievalSession) Stream(ctx context.Context, question string) (<-chan Fragment, error) {
	if strings.TrimSpace(question) == "" {
		return nil, core.ErrEmptyQuestion
	}
	comps, err := s.components()
	if err != nil {
		return nil, err
	}

	results, err := comps.Store.Search(ctx, question, comps.TopK)
	if err != nil {
		return nil, err
	}

	out := make(chan Fragment)

	if len(results) == 0 {
		go func() {
			defer close(out)
			select {
			case out <- Fragment{Data: DontKnowAnswer}:
			case <-ctx.Done():
			}
		}()
		return out, nil
	}

	prompt, err := s.buildPrompt(ctx, comps, question, results)
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(out)
		err := comps.Generator.StreamText(ctx, prompt, func(_ context.Context, chunk []byte) error {
			select {
			case out <- Fragment{Data: string(chunk)}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("error streaming answer", "err", err)
		}
	}()
	return out, nil
}

// buildPrompt assembles retrieved context and the question into the answer
// prompt. Chunks whose text is a summary substitute resolve back to the
// retained original before inclusion.
func (s *RetrievalSession) buildPrompt(ctx context.Context, comps *Components, question string, results []*core.SearchResult) (string, error) {
	texts := make([]string, 0, len(results))
	for _, result := range results {
		text := result.Record.Text
		if result.Record.SummaryOf != "" && comps.Parents != nil {
			original, err := comps.Parents.GetParentChunk(ctx, result.Record.SummaryOf)
			switch {
			case err == nil:
				text = original.Text
			case errors.Is(err, storage.ErrNotFound):
				s.logger.Warn("original chunk missing, using summary text", "key", result.Record.SummaryOf)
			default:
				return "", err
			}
		}
		texts = append(texts, text)
	}
	return formatAnswerPrompt(strings.Join(texts, "\n\n"), question)
}
