// Package ingestion runs the document ingestion pipeline: files are
// admitted into a FIFO queue, then processed by a worker pool through
// split, optional summarize, embed, and link-persist steps.
//
// Admission is capped: once the number of queued-or-in-flight jobs
// reaches the ceiling, further enqueues are rejected with
// core.ErrSystemBusy until a job completes. Jobs are independent; one
// failing job never blocks or fails another.
package ingestion
