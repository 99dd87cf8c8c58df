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

import "fmt"

// ValidateIngestionJob validates a job before it enters the queue.
//
// Validation rules:
//   - FilePath must not be empty
//   - Split policy must be valid
//
// NOT validated here (checked by the worker at load time):
//   - file existence and readability
//   - file type support
func ValidateIngestionJob(job *IngestionJob) error {
	if job == nil {
		return fmt.Errorf("%w: job is nil", ErrInvalidConfig)
	}
	if job.FilePath == "" {
		return ErrEmptyFilePath
	}
	return ValidateRagConfig(job.Split)
}

// ValidateRagConfig validates splitting and retrieval parameters.
func ValidateRagConfig(cfg RagConfig) error {
	if cfg.SplitLen <= 0 {
		return fmt.Errorf("%w: split length %d", ErrInvalidSplitPolicy, cfg.SplitLen)
	}
	if cfg.SplitOverlap < 0 || cfg.SplitOverlap >= cfg.SplitLen {
		return fmt.Errorf("%w: overlap %d with length %d", ErrInvalidSplitPolicy, cfg.SplitOverlap, cfg.SplitLen)
	}
	switch cfg.SplitWay {
	case SplitWindow, SplitRecursive:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedSplitWay, cfg.SplitWay)
	}
	if cfg.TopK <= 0 {
		return fmt.Errorf("%w: top_k %d", ErrInvalidConfig, cfg.TopK)
	}
	return nil
}

// ValidateTaskConfig validates a complete configuration object.
// Model names are checked against the registry by the ai package; this
// only enforces structural rules.
func ValidateTaskConfig(cfg TaskConfig) error {
	if cfg.LLM.LLMName == "" {
		return fmt.Errorf("%w: llm name is empty", ErrInvalidConfig)
	}
	if err := ValidateRagConfig(cfg.Rag); err != nil {
		return err
	}
	if cfg.Retrievers.UseMultiRetriever && cfg.Retrievers.Strategy != StrategySummarize {
		return fmt.Errorf("%w: multi-retriever strategy %q", ErrInvalidConfig, cfg.Retrievers.Strategy)
	}
	if cfg.Embeddings.EmbeddingModel == "" {
		return fmt.Errorf("%w: embedding model is empty", ErrInvalidConfig)
	}
	return nil
}
