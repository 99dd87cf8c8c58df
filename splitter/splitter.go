// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package splitter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/docquery/core"
)

// Splitter turns raw files into ordered chunks.
type Splitter struct {
	logger *slog.Logger
}

// Option configures a Splitter.
type Option func(*Splitter) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Splitter) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates a Splitter.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		logger: slog.Default().With("component", "splitter"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Split loads the file at path and splits it into ordered chunks under the
// given policy snapshot. The file type is determined by extension: txt files
// are length-chunked per policy, pdf files are structurally grouped by page
// first. Any other type fails with core.ErrUnsupportedFileType before any
// content is read.
func (s *Splitter) Split(path string, parentID core.ParentID, cfg core.RagConfig) ([]core.Chunk, error) {
	var texts []string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		texts, err = SplitText(string(data), cfg)
		if err != nil {
			return nil, err
		}
	case ".pdf":
		elements, err := extractPDFElements(path)
		if err != nil {
			return nil, err
		}
		texts = groupElements(elements)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFileType, path)
	}

	s.logger.Debug("split file", "path", path, "chunks", len(texts))

	chunks := make([]core.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = core.Chunk{
			Text:     text,
			ParentID: parentID,
			Seq:      i,
		}
	}
	return chunks, nil
}
