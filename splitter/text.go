package splitter

import (
	"github.com/poiesic/docquery/core"
	"github.com/tmc/langchaingo/textsplitter"
)

// splitWindow slides a fixed-size window over the text. Adjacent full
// chunks share exactly overlap characters; the final chunk is shorter when
// the remainder is.
func splitWindow(text string, size, overlap int) []string {
	var chunks []string
	runes := []rune(text)
	step := size - overlap
	for i := 0; i < len(runes); i += step {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}
	return chunks
}

// splitRecursive splits on natural separators before falling back to
// length-based chunking.
func splitRecursive(text string, size, overlap int) ([]string, error) {
	sp := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(size),
		textsplitter.WithChunkOverlap(overlap),
	)
	return sp.SplitText(text)
}

// SplitText splits plain text according to the policy.
// The policy must already be validated; unknown strategies are rejected.
func SplitText(text string, cfg core.RagConfig) ([]string, error) {
	if err := core.ValidateRagConfig(cfg); err != nil {
		return nil, err
	}
	switch cfg.SplitWay {
	case core.SplitWindow:
		return splitWindow(text, cfg.SplitLen, cfg.SplitOverlap), nil
	case core.SplitRecursive:
		return splitRecursive(text, cfg.SplitLen, cfg.SplitOverlap)
	default:
		return nil, core.ErrUnsupportedSplitWay
	}
}
