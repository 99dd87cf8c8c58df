// Package session serves retrieval-augmented answers per owner.
//
// A RetrievalSession bundles the retrieval pipeline for one owner key:
// vector search, parent-chunk resolution, prompt assembly, and the
// language model. Sessions are held in a Cache keyed by owner and
// invalidated lazily: each access compares a remote version counter
// against the session's local copy and reloads the pipeline in place
// when the counter has advanced. Session object identity is stable
// across reloads so the cache mapping does not churn.
package session
