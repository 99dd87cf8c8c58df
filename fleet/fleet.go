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


package fleet

import (
	"log/slog"
	"sync"
)

// Fleet supervises a fixed set of worker actors. The supervisor keeps its
// own view of each worker's busy flag, set when it hands a task over and
// cleared only by the worker's completion report.
type Fleet struct {
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	workers []*worker
	busy    []bool

	status     chan statusUpdate
	statusDone chan struct{}
}

// Option configures a Fleet.
type Option func(*Fleet) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fleet) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// New creates a stopped Fleet. Call Start to spawn workers.
func New(opts ...Option) (*Fleet, error) {
	f := &Fleet{
		logger: slog.Default().With("component", "fleet"),
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Start spawns n workers with clear busy flags. Starting a running fleet
// is a no-op reported as ErrAlreadyRunning.
func (f *Fleet) Start(n int) error {
	if n < 1 {
		n = 1
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running {
		return ErrAlreadyRunning
	}

	f.status = make(chan statusUpdate, n)
	f.statusDone = make(chan struct{})
	f.workers = make([]*worker, n)
	f.busy = make([]bool, n)
	for i := range f.workers {
		f.workers[i] = newWorker(i, f.status, f.logger)
		go f.workers[i].run()
	}
	go f.watchStatus()

	f.running = true
	f.logger.Info("fleet started", "workers", n)
	return nil
}

// Submit hands the task to an idle worker without blocking. When every
// worker is busy it returns ErrNoWorkerAvailable; the caller retries
// later or rejects upstream.
func (f *Fleet) Submit(task Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.running {
		return ErrNotRunning
	}

	for i, w := range f.workers {
		if f.busy[i] {
			continue
		}
		select {
		case w.tasks <- task:
			f.busy[i] = true
			return nil
		default:
		}
	}
	return ErrNoWorkerAvailable
}

// Stop sends each worker a stop event and joins them in order, then shuts
// down status handling. It blocks until every worker has exited; tasks
// already handed to a worker run to completion. Stopping a stopped fleet
// is a no-op.
func (f *Fleet) Stop() {
	f.mu.Lock()
	if !f.running {
		f.mu.Unlock()
		return
	}
	f.running = false
	workers := f.workers
	f.mu.Unlock()

	for _, w := range workers {
		w.events <- eventStop
		<-w.done
	}
	close(f.status)
	<-f.statusDone

	f.mu.Lock()
	f.workers = nil
	f.busy = nil
	f.mu.Unlock()
	f.logger.Info("fleet stopped")
}

// Running reports whether the fleet has started and not yet stopped.
func (f *Fleet) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

// IdleWorkers returns the number of workers the supervisor considers not
// busy.
func (f *Fleet) IdleWorkers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	idle := 0
	for i := range f.busy {
		if !f.busy[i] {
			idle++
		}
	}
	return idle
}

// watchStatus applies worker status reports to the supervisor's busy
// view. It exits when the status channel closes during Stop.
func (f *Fleet) watchStatus() {
	defer close(f.statusDone)
	for update := range f.status {
		f.mu.Lock()
		if update.worker < len(f.busy) {
			f.busy[update.worker] = update.busy
		}
		f.mu.Unlock()
	}
}
