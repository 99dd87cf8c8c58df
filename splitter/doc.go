// Package splitter converts raw files into ordered text chunks under a
// configurable policy of chunk length, overlap, and strategy.
//
// Plain text is chunked by length: either an exact sliding window or a
// recursive separator-aware split. Paginated documents (PDF) are first
// grouped by structural element (page), with small elements combined,
// before length-based chunking.
//
// Policy is passed per call as a value snapshot, so a configuration change
// never affects a job already being split.
package splitter
