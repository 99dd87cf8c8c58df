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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/splitter"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/vectorstore"
)

// summaryConcurrency caps concurrent summary generations per job.
const summaryConcurrency = 5

const summaryPromptFormat = "Summarize the following passage in a few sentences. Keep every key fact, name, and number.\n\n%s"

// processor runs the steps of a single ingestion job.
type processor struct {
	splitter   *splitter.Splitter
	store      *vectorstore.Store
	links      storage.LinkRepository
	parents    storage.ParentChunkRepository
	summarizer ai.Generator
	logger     *slog.Logger
}

// run executes split, optional summarize, embed, and link-persist for one
// job. A job either completes fully or leaves no discoverable trace: if
// persisting the links fails, the vectors just added are deleted again.
func (p *processor) run(ctx context.Context, job *core.IngestionJob) error {
	chunks, err := p.splitter.Split(job.FilePath, job.ParentID, job.Split)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		p.logger.Warn("file produced no chunks", "path", job.FilePath, "parent", job.ParentID)
		return nil
	}

	if job.Summarize && p.summarizer != nil {
		chunks, err = p.summarize(ctx, chunks)
		if err != nil {
			return err
		}
	}

	ids, err := p.store.Add(ctx, chunks)
	if err != nil {
		return err
	}

	links := make([]*core.ChunkLink, len(ids))
	for i, id := range ids {
		links[i] = &core.ChunkLink{ParentID: job.ParentID, VectorID: id}
	}

	if err := p.links.AddLinks(ctx, links...); err != nil {
		// Undo the index write so the parent never resolves to a
		// partially-linked set of chunks.
		if delErr := p.store.Delete(ctx, ids); delErr != nil {
			p.logger.Error("error compensating failed link persist", "parent", job.ParentID, "err", delErr)
		}
		return fmt.Errorf("persist chunk links: %w", err)
	}

	p.logger.Info("ingested file", "path", job.FilePath, "parent", job.ParentID, "chunks", len(ids))
	return nil
}

// summarize replaces each chunk's text with a generated summary, retaining
// the original in the parent chunk store under a fresh key. Order and Seq
// are preserved.
func (p *processor) summarize(ctx context.Context, chunks []core.Chunk) ([]core.Chunk, error) {
	out := make([]core.Chunk, len(chunks))
	originals := make([]*core.ParentChunk, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			prompt := fmt.Sprintf(summaryPromptFormat, chunk.Text)
			summary, err := p.summarizer.GenerateText(gctx, prompt)
			if err != nil {
				return fmt.Errorf("%w: summarize chunk %d: %w", core.ErrUpstreamUnavailable, chunk.Seq, err)
			}
			key := uuid.NewString()
			originals[i] = &core.ParentChunk{Key: key, Text: chunk.Text}
			out[i] = core.Chunk{
				Text:      summary,
				ParentID:  chunk.ParentID,
				Seq:       chunk.Seq,
				SummaryOf: key,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := p.parents.PutParentChunks(ctx, originals...); err != nil {
		return nil, fmt.Errorf("retain original chunks: %w", err)
	}
	return out, nil
}
