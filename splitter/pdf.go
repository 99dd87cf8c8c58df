package splitter

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// maxPDFChunkChars caps the size of a structurally grouped chunk.
	maxPDFChunkChars = 4000
	// combinePDFTextUnder merges a structural element into the next one
	// when it is shorter than this.
	combinePDFTextUnder = 2000
)

// extractPDFElements reads a PDF and returns one text element per page.
// Empty pages are skipped.
func extractPDFElements(path string) ([]string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var elements []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract pdf page %d: %w", i, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		elements = append(elements, text)
	}
	return elements, nil
}

// groupElements combines consecutive structural elements so no group is
// shorter than combinePDFTextUnder (except the last), then splits any group
// exceeding maxPDFChunkChars with a non-overlapping window.
func groupElements(elements []string) []string {
	var groups []string
	var current strings.Builder
	for _, element := range elements {
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(element)
		if current.Len() >= combinePDFTextUnder {
			groups = append(groups, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		groups = append(groups, current.String())
	}

	var chunks []string
	for _, group := range groups {
		if len([]rune(group)) <= maxPDFChunkChars {
			chunks = append(chunks, group)
			continue
		}
		chunks = append(chunks, splitWindow(group, maxPDFChunkChars, 0)...)
	}
	return chunks
}
