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


package core

// Splitting strategies accepted by RagConfig.SplitWay.
const (
	// SplitWindow slides a fixed-size window over the text with a fixed
	// overlap between adjacent chunks.
	SplitWindow = "window"

	// SplitRecursive splits on natural separators (paragraphs, lines,
	// words) before falling back to length-based chunking.
	SplitRecursive = "recursive"
)

// Multi-retriever strategies accepted by MultiRetrieverConfig.Strategy.
const (
	// StrategySummarize embeds a per-chunk summary in place of the
	// original text, retaining originals in a parent store.
	StrategySummarize = "summarize"
)

// LLMConfig selects the language models used for answering and for
// summarization. A config is an immutable value: changes construct new
// handles rather than mutating existing ones.
type LLMConfig struct {
	LLMName            string  `toml:"llm_name"`
	Temperature        float64 `toml:"temperature"`
	SummaryLLMName     string  `toml:"summary_llm_name"`
	SummaryTemperature float64 `toml:"summary_temperature"`
}

// RagConfig controls document splitting and retrieval.
type RagConfig struct {
	SplitLen     int    `toml:"split_len"`
	SplitOverlap int    `toml:"split_overlap"`
	SplitWay     string `toml:"split_way"`
	TopK         int    `toml:"top_k"`
}

// MultiRetrieverConfig toggles the multi-retriever ingestion path.
type MultiRetrieverConfig struct {
	UseMultiRetriever bool   `toml:"use_multi_retriever"`
	Strategy          string `toml:"strategy"`
}

// EmbeddingsConfig selects the embedding model. Switching models requires
// a new embedding store over a new index namespace.
type EmbeddingsConfig struct {
	EmbeddingModel string `toml:"embedding_model"`
}

// TaskConfig is the versioned configuration object accepted at the
// configuration boundary. Application is all-or-nothing per component:
// a retriever-only change must not tear down the embedding client.
type TaskConfig struct {
	LLM        LLMConfig            `toml:"llm"`
	Rag        RagConfig            `toml:"rag"`
	Retrievers MultiRetrieverConfig `toml:"retrievers"`
	Embeddings EmbeddingsConfig     `toml:"embeddings"`
}

// DefaultTaskConfig returns the configuration used before any explicit
// configuration is applied.
func DefaultTaskConfig() TaskConfig {
	return TaskConfig{
		LLM: LLMConfig{
			LLMName:     "qwen-plus",
			Temperature: 0.0,
		},
		Rag: RagConfig{
			SplitLen:     1000,
			SplitOverlap: 200,
			SplitWay:     SplitWindow,
			TopK:         3,
		},
		Embeddings: EmbeddingsConfig{
			EmbeddingModel: "text-embedding-v2",
		},
	}
}

// ConfigDiff reports which components a configuration change touches.
// It drives partial application: only changed components are rebuilt.
type ConfigDiff struct {
	LLMChanged        bool
	SummaryLLMChanged bool
	SplitChanged      bool
	RetrieverChanged  bool
	EmbeddingsChanged bool
}

// Any reports whether the diff touches any component.
func (d ConfigDiff) Any() bool {
	return d.LLMChanged || d.SummaryLLMChanged || d.SplitChanged ||
		d.RetrieverChanged || d.EmbeddingsChanged
}

// Diff compares this configuration against next.
func (c TaskConfig) Diff(next TaskConfig) ConfigDiff {
	return ConfigDiff{
		LLMChanged: c.LLM.LLMName != next.LLM.LLMName ||
			c.LLM.Temperature != next.LLM.Temperature,
		SummaryLLMChanged: c.LLM.SummaryLLMName != next.LLM.SummaryLLMName ||
			c.LLM.SummaryTemperature != next.LLM.SummaryTemperature,
		SplitChanged: c.Rag.SplitLen != next.Rag.SplitLen ||
			c.Rag.SplitOverlap != next.Rag.SplitOverlap ||
			c.Rag.SplitWay != next.Rag.SplitWay,
		RetrieverChanged: c.Rag.TopK != next.Rag.TopK ||
			c.Retrievers != next.Retrievers,
		EmbeddingsChanged: c.Embeddings != next.Embeddings,
	}
}
