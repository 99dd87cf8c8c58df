// Package core defines the domain model for document ingestion and retrieval:
// ingestion jobs, chunks, chunk links, stored vector records, and the
// versioned configuration value objects that drive splitting, embedding,
// and retrieval behavior.
//
// Types in this package are plain values with no external dependencies.
// Serialization code is generated by cmd/musgen.
package core
