package fleet

import "errors"

var (
	// ErrAlreadyRunning is reported when Start is called on a running fleet.
	// The call is otherwise a no-op.
	ErrAlreadyRunning = errors.New("fleet already running")

	// ErrNotRunning is returned when submitting to a stopped fleet.
	ErrNotRunning = errors.New("fleet not running")

	// ErrNoWorkerAvailable is returned when every worker is busy.
	ErrNoWorkerAvailable = errors.New("no worker available")
)
