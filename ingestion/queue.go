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


package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/splitter"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/vectorstore"
)

const (
	// DefaultCeiling is the maximum number of queued-or-in-flight jobs
	// before enqueues are rejected busy.
	DefaultCeiling = 3

	// pollInterval bounds how long the dispatcher sleeps between queue
	// checks, so a stop signal is observed within one interval.
	pollInterval = time.Second
)

// Queue admits ingestion jobs in FIFO order and dispatches them to a
// worker pool. Jobs past the admission ceiling are rejected with
// core.ErrSystemBusy rather than queued without bound against a slow
// embedding provider.
type Queue struct {
	proc *processor
	pool *ants.Pool

	mu       sync.Mutex
	pending  []*core.IngestionJob
	admitted int
	stopped  bool

	ceiling int
	stop    chan struct{}
	done    chan struct{}
	jobs    sync.WaitGroup
	logger  *slog.Logger
}

// Option configures a Queue.
type Option func(*Queue) error

// WithCeiling sets the admission ceiling.
// Default is DefaultCeiling; values below 1 are raised to 1.
func WithCeiling(n int) Option {
	return func(q *Queue) error {
		if n < 1 {
			n = 1
		}
		q.ceiling = n
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent job processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(q *Queue) error {
		if size < 1 {
			size = 1
		}
		if q.pool != nil {
			q.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		q.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) error {
		if logger == nil {
			logger = slog.Default()
		}
		q.logger = logger
		return nil
	}
}

// NewQueue creates a Queue and starts its dispatcher. The summarizer may be
// nil; jobs requesting summarization then embed the original chunk text.
func NewQueue(
	split *splitter.Splitter,
	store *vectorstore.Store,
	links storage.LinkRepository,
	parents storage.ParentChunkRepository,
	summarizer ai.Generator,
	opts ...Option,
) (*Queue, error) {
	if split == nil {
		return nil, ErrSplitterRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if links == nil {
		return nil, ErrLinkRepositoryRequired
	}
	if parents == nil {
		return nil, ErrParentChunkRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	q := &Queue{
		pool:    pool,
		ceiling: DefaultCeiling,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		logger:  slog.Default().With("component", "ingestion"),
	}
	for _, opt := range opts {
		if optErr := opt(q); optErr != nil {
			q.pool.Release()
			return nil, optErr
		}
	}

	q.proc = &processor{
		splitter:   split,
		store:      store,
		links:      links,
		parents:    parents,
		summarizer: summarizer,
		logger:     q.logger,
	}

	go q.run()
	return q, nil
}

// Enqueue admits a job for asynchronous processing. It returns
// core.ErrSystemBusy when the queued-or-in-flight count is at the ceiling,
// and ErrQueueStopped after Stop. The job is validated before admission.
func (q *Queue) Enqueue(job *core.IngestionJob) error {
	if err := core.ValidateIngestionJob(job); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return ErrQueueStopped
	}
	if q.admitted >= q.ceiling {
		return core.ErrSystemBusy
	}
	q.admitted++
	q.jobs.Add(1)
	q.pending = append(q.pending, job)
	return nil
}

// Admitted returns the current queued-or-in-flight count.
func (q *Queue) Admitted() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.admitted
}

// Stop refuses further enqueues, drains jobs already admitted, and releases
// the worker pool. It blocks until every admitted job has finished.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		<-q.done
		q.jobs.Wait()
		return
	}
	q.stopped = true
	q.mu.Unlock()

	close(q.stop)
	<-q.done
	q.jobs.Wait()
	q.pool.Release()
}

// run is the dispatcher loop. It hands pending jobs to the pool, sleeping
// at most pollInterval between checks, and drains the queue once more on
// stop so admitted jobs are never dropped.
func (q *Queue) run() {
	defer close(q.done)
	for {
		q.dispatchPending()
		select {
		case <-q.stop:
			q.dispatchPending()
			return
		case <-time.After(pollInterval):
		}
	}
}

func (q *Queue) dispatchPending() {
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		job := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()

		submitErr := q.pool.Submit(func() {
			defer q.finish()
			if err := q.proc.run(context.Background(), job); err != nil {
				q.logger.Error("error processing ingestion job",
					"path", job.FilePath, "parent", job.ParentID, "err", err)
			}
		})
		if submitErr != nil {
			q.logger.Error("error submitting ingestion job", "err", submitErr)
			q.finish()
		}
	}
}

func (q *Queue) finish() {
	q.mu.Lock()
	q.admitted--
	q.mu.Unlock()
	q.jobs.Done()
}
