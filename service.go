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


package docquery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/openai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/ingestion"
	"github.com/poiesic/docquery/session"
	"github.com/poiesic/docquery/splitter"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/storage/badger"
	"github.com/poiesic/docquery/vectorstore"
)

// ProviderFactory builds the model provider for a configuration. The
// default uses OpenAI-compatible services; tests substitute doubles.
type ProviderFactory func(cfg core.TaskConfig) (ai.Provider, error)

// Service wires storage, the ingestion queue, and the session cache into
// one process-wide facade. It exposes the upload, deletion, query,
// stream, and configuration boundaries.
type Service struct {
	backend     *badger.Backend
	vectorRepo  storage.VectorRepository
	linkRepo    storage.LinkRepository
	parentRepo  storage.ParentChunkRepository
	versionRepo storage.VersionRepository

	split     *splitter.Splitter
	cache     *session.Cache
	buildProv ProviderFactory
	queueOpts []ingestion.Option
	logger    *slog.Logger

	mu       sync.Mutex
	config   core.TaskConfig
	provider ai.Provider
	store    *vectorstore.Store
	queue    *ingestion.Queue
	hashes   map[string]core.ParentID
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	config    core.TaskConfig
	inMemory  bool
	factory   ProviderFactory
	queueOpts []ingestion.Option
	logger    *slog.Logger
}

// WithTaskConfig sets the initial configuration.
// Default is core.DefaultTaskConfig().
func WithTaskConfig(cfg core.TaskConfig) ServiceOption {
	return func(o *serviceOptions) {
		o.config = cfg
	}
}

// WithInMemoryStorage opens the backend without a data directory.
// Intended for tests.
func WithInMemoryStorage() ServiceOption {
	return func(o *serviceOptions) {
		o.inMemory = true
	}
}

// WithProviderFactory replaces how model providers are constructed.
func WithProviderFactory(factory ProviderFactory) ServiceOption {
	return func(o *serviceOptions) {
		if factory != nil {
			o.factory = factory
		}
	}
}

// WithQueueOptions forwards options to every ingestion queue the service
// creates, including queues rebuilt on configuration changes.
func WithQueueOptions(opts ...ingestion.Option) ServiceOption {
	return func(o *serviceOptions) {
		o.queueOpts = opts
	}
}

// WithServiceLogger sets a custom logger.
// Default is slog.Default().
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(o *serviceOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewService opens the backend at filePath and assembles the service.
func NewService(filePath string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		config:  core.DefaultTaskConfig(),
		factory: openai.NewProvider,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if err := core.ValidateTaskConfig(options.config); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	vectorRepo := badger.NewVectorRepository(backend)
	linkRepo := badger.NewLinkRepository(backend)
	parentRepo := badger.NewParentChunkRepository(backend)
	versionRepo := badger.NewVersionRepository(backend)

	split, err := splitter.New(splitter.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	s := &Service{
		backend:     backend,
		vectorRepo:  vectorRepo,
		linkRepo:    linkRepo,
		parentRepo:  parentRepo,
		versionRepo: versionRepo,
		split:       split,
		buildProv:   options.factory,
		queueOpts:   options.queueOpts,
		logger:      options.logger,
		config:      options.config,
		hashes:      make(map[string]core.ParentID),
	}

	if err := s.buildPipeline(options.config); err != nil {
		backend.Close()
		return nil, err
	}

	cache, err := session.NewCache(s.sessionComponents, versionRepo,
		session.WithLogger(options.logger))
	if err != nil {
		s.queue.Stop()
		backend.Close()
		return nil, err
	}
	s.cache = cache

	return s, nil
}

// buildPipeline constructs provider, store, and queue for cfg and installs
// them. Nothing is swapped unless every piece constructs; the caller stops
// any queue being replaced.
func (s *Service) buildPipeline(cfg core.TaskConfig) error {
	provider, err := s.buildProv(cfg)
	if err != nil {
		return err
	}
	store, err := vectorstore.New(provider.Embedder(), s.vectorRepo, cfg.Embeddings.EmbeddingModel,
		vectorstore.WithLogger(s.logger))
	if err != nil {
		provider.Close()
		return err
	}
	queue, err := ingestion.NewQueue(s.split, store, s.linkRepo, s.parentRepo,
		provider.SummaryGenerator(), s.queueOpts...)
	if err != nil {
		provider.Close()
		return err
	}

	s.mu.Lock()
	s.provider = provider
	s.store = store
	s.queue = queue
	s.config = cfg
	s.mu.Unlock()
	return nil
}

// sessionComponents resolves the current retrieval components for an
// owner. The session cache calls it on load and on reload.
func (s *Service) sessionComponents(_ context.Context, _ string) (*session.Components, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &session.Components{
		Store:     s.store,
		Generator: s.provider.Generator(),
		Parents:   s.parentRepo,
		TopK:      s.config.Rag.TopK,
	}, nil
}

// Ingest accepts a file for asynchronous ingestion. Content already
// ingested is rejected with core.ErrDuplicateFile; a saturated queue
// rejects with core.ErrSystemBusy. The splitting policy and summarization
// choice are snapshotted into the job at admission.
func (s *Service) Ingest(ctx context.Context, filePath string, parentID core.ParentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if filePath == "" {
		return core.ErrEmptyFilePath
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", filePath, err)
	}
	hash := core.HashContent(data)

	s.mu.Lock()
	existing, dup := s.hashes[hash]
	cfg := s.config
	queue := s.queue
	s.mu.Unlock()
	if dup {
		return fmt.Errorf("%w: content already ingested under parent %d", core.ErrDuplicateFile, existing)
	}

	job := &core.IngestionJob{
		FilePath:   filePath,
		ParentID:   parentID,
		EnqueuedAt: time.Now().UTC(),
		Split:      cfg.Rag,
		Summarize:  cfg.Retrievers.UseMultiRetriever && cfg.Retrievers.Strategy == core.StrategySummarize,
	}
	if err := queue.Enqueue(job); err != nil {
		return err
	}

	s.mu.Lock()
	s.hashes[hash] = parentID
	s.mu.Unlock()
	return nil
}

// DeleteParent removes a parent file's chunks from the index in batches,
// then removes the links. Deleting a parent with no chunks is a no-op.
func (s *Service) DeleteParent(ctx context.Context, parentID core.ParentID) error {
	links, err := s.linkRepo.GetLinksByParent(ctx, parentID)
	if err != nil {
		return err
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.VectorID
	}

	s.mu.Lock()
	store := s.store
	s.mu.Unlock()
	if err := store.DeleteAll(ctx, ids); err != nil {
		return err
	}
	if err := s.linkRepo.DeleteLinksByParent(ctx, parentID); err != nil {
		return err
	}

	s.mu.Lock()
	for hash, owner := range s.hashes {
		if owner == parentID {
			delete(s.hashes, hash)
		}
	}
	s.mu.Unlock()

	s.logger.Info("deleted parent", "parent", parentID, "chunks", len(ids))
	return nil
}

// Query answers a question for an owner through its cached session.
func (s *Service) Query(ctx context.Context, ownerKey, question string) (string, error) {
	sess, err := s.cache.GetOrCreate(ctx, ownerKey)
	if err != nil {
		return "", err
	}
	return sess.Query(ctx, question)
}

// Stream answers a question as a fragment sequence for an owner.
func (s *Service) Stream(ctx context.Context, ownerKey, question string) (<-chan session.Fragment, error) {
	sess, err := s.cache.GetOrCreate(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	return sess.Stream(ctx, question)
}

// ApplyConfig applies a new configuration for an owner and bumps the
// owner's version so cached sessions reload lazily. Application is
// all-or-nothing per component: a change touching only splitting or
// retrieval leaves the model provider and embedding client untouched,
// and any construction failure keeps the previous configuration active.
func (s *Service) ApplyConfig(ctx context.Context, ownerKey string, next core.TaskConfig) error {
	if strings.TrimSpace(ownerKey) == "" {
		return core.ErrEmptyOwnerKey
	}
	if err := core.ValidateTaskConfig(next); err != nil {
		return err
	}

	s.mu.Lock()
	diff := s.config.Diff(next)
	oldQueue := s.queue
	oldProvider := s.provider
	s.mu.Unlock()
	if !diff.Any() {
		return nil
	}

	if diff.LLMChanged || diff.SummaryLLMChanged || diff.EmbeddingsChanged {
		if err := s.buildPipeline(next); err != nil {
			return err
		}
		// Drain jobs admitted against the replaced pipeline.
		oldQueue.Stop()
		if err := oldProvider.Close(); err != nil {
			s.logger.Error("error closing replaced provider", "err", err)
		}
	} else {
		s.mu.Lock()
		s.config = next
		s.mu.Unlock()
	}

	if _, err := s.versionRepo.BumpVersion(ctx, ownerKey); err != nil {
		return err
	}
	s.logger.Info("configuration applied", "owner", ownerKey)
	return nil
}

// Config returns the active configuration.
func (s *Service) Config() core.TaskConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SessionCache exposes the session cache, mainly for invalidation.
func (s *Service) SessionCache() *session.Cache {
	return s.cache
}

// Close drains the ingestion queue and releases every resource.
func (s *Service) Close() error {
	s.mu.Lock()
	queue := s.queue
	provider := s.provider
	s.mu.Unlock()

	queue.Stop()
	if err := provider.Close(); err != nil {
		s.logger.Error("error closing provider", "err", err)
	}

	if err := s.vectorRepo.Close(); err != nil {
		s.logger.Error("error closing vector repository", "err", err)
		return err
	}
	if err := s.linkRepo.Close(); err != nil {
		s.logger.Error("error closing link repository", "err", err)
		return err
	}
	if err := s.parentRepo.Close(); err != nil {
		s.logger.Error("error closing parent chunk repository", "err", err)
		return err
	}
	if err := s.versionRepo.Close(); err != nil {
		s.logger.Error("error closing version repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
