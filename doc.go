// Package docquery assembles the document question-answering core: an
// ingestion pipeline that splits, optionally summarizes, embeds, and
// links uploaded files into a vector index, and a per-owner session
// cache serving one-shot and streamed retrieval-augmented answers.
package docquery
