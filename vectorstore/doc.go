// Package vectorstore provides a uniform add/search/delete surface over the
// vector index, parameterized by an embedding model and an index namespace.
//
// A Store is bound to one embedding model for its lifetime. Switching
// models means constructing a new Store over a new namespace; the old store
// stays valid for documents already indexed under it until retired.
package vectorstore
