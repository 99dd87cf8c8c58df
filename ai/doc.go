// Package ai defines the capability interfaces for external model services:
// text embedding and language-model generation (one-shot and streamed).
//
// Model selection is table-driven: a registry maps a model name to its
// endpoint and credential source, closed over at startup. Unknown names are
// a typed configuration error, never a silently substituted default.
//
// Implementations live in subpackages: openai for OpenAI-compatible APIs,
// mock for deterministic test doubles.
package ai
