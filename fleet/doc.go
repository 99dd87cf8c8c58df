// Package fleet runs a supervised pool of worker actors for heavy
// ingestion work that must not block the serving path.
//
// Each worker owns a task inbox and an event inbox; the supervisor is the
// only producer on both. Workers report busy-state transitions back as
// status messages, so the supervisor never reads worker-internal state
// directly. Submission is non-blocking: when every worker is busy the
// caller gets ErrNoWorkerAvailable and decides whether to retry. Crashed
// or failed tasks are logged; workers are not restarted automatically.
package fleet
