package fleet

import (
	"context"
	"log/slog"
)

// Task is a unit of work executed on a fleet worker.
type Task func(ctx context.Context) error

// event is a control message from the supervisor to one worker.
type event int

const eventStop event = iota

// statusUpdate is a worker's report of its busy state to the supervisor.
type statusUpdate struct {
	worker int
	busy   bool
}

// worker is one actor in the fleet. The supervisor is the sole producer
// on both inboxes; the worker is their sole consumer.
type worker struct {
	id     int
	tasks  chan Task
	events chan event
	status chan<- statusUpdate
	done   chan struct{}
	logger *slog.Logger
}

func newWorker(id int, status chan<- statusUpdate, logger *slog.Logger) *worker {
	return &worker{
		id:     id,
		tasks:  make(chan Task, 1),
		events: make(chan event, 1),
		status: status,
		done:   make(chan struct{}),
		logger: logger.With("worker", id),
	}
}

// run is the worker loop. On stop it drains any task already accepted
// into its inbox before exiting, so an admitted task is never dropped.
func (w *worker) run() {
	defer close(w.done)
	for {
		select {
		case ev := <-w.events:
			if ev == eventStop {
				w.drain()
				return
			}
		case task := <-w.tasks:
			w.execute(task)
		}
	}
}

func (w *worker) drain() {
	for {
		select {
		case task := <-w.tasks:
			w.execute(task)
		default:
			return
		}
	}
}

func (w *worker) execute(task Task) {
	if err := task(context.Background()); err != nil {
		w.logger.Error("error executing task", "err", err)
	}
	w.status <- statusUpdate{worker: w.id, busy: false}
}
