package graph

import (
	"fmt"
	"strings"

	"github.com/graphloom/graphloom/pkg/common"
)

// Chunk is a contiguous span of the input text prepared for extraction.
// Start and End are character offsets into the normalized input; Text is
// the span itself, prefixed with overlap context from the previous chunk
// so mentions spanning a boundary surface in both chunks.
type Chunk struct {
	Index int    `json:"index"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

type segment struct {
	start int
	end   int
}

// SplitText splits text into chunks of at most maxChunkSize characters.
// Paragraph boundaries are preferred; a single paragraph larger than the
// budget is hard-sliced. overlapSize characters from the tail of each chunk
// are prepended to the next one. Empty input yields an empty slice.
func SplitText(text string, maxChunkSize, overlapSize int) ([]Chunk, error) {
	if maxChunkSize <= 0 {
		return nil, fmt.Errorf("%w: max chunk size must be positive", common.ErrValidation)
	}
	if overlapSize < 0 {
		return nil, fmt.Errorf("%w: overlap size must not be negative", common.ErrValidation)
	}
	if overlapSize >= maxChunkSize {
		return nil, fmt.Errorf("%w: overlap size %d must be smaller than max chunk size %d", common.ErrValidation, overlapSize, maxChunkSize)
	}

	if strings.TrimSpace(text) == "" {
		return []Chunk{}, nil
	}

	segments := splitSegments(text, maxChunkSize)
	if len(segments) == 0 {
		return []Chunk{}, nil
	}

	// Greedy packing: extend the current chunk while the combined span
	// stays within the character budget.
	var regions []segment
	current := segments[0]
	for _, seg := range segments[1:] {
		if seg.end-current.start <= maxChunkSize {
			current.end = seg.end
			continue
		}
		regions = append(regions, current)
		current = seg
	}
	regions = append(regions, current)

	chunks := make([]Chunk, 0, len(regions))
	for i, region := range regions {
		own := text[region.start:region.end]
		chunkText := own
		if i > 0 && overlapSize > 0 {
			prev := text[regions[i-1].start:regions[i-1].end]
			if len(prev) > overlapSize {
				prev = prev[len(prev)-overlapSize:]
			}
			chunkText = prev + own
		}
		chunks = append(chunks, Chunk{
			Index: i,
			Start: region.start,
			End:   region.end,
			Text:  chunkText,
		})
	}

	return chunks, nil
}

// splitSegments finds paragraph spans, hard-slicing any paragraph that
// exceeds the budget on its own.
func splitSegments(text string, maxChunkSize int) []segment {
	var segments []segment

	offset := 0
	for _, para := range strings.Split(text, "\n\n") {
		start := offset
		offset += len(para) + 2

		// Trim the paragraph while keeping offsets into the original text.
		trimmedLeft := strings.TrimLeft(para, " \t\n")
		start += len(para) - len(trimmedLeft)
		trimmed := strings.TrimRight(trimmedLeft, " \t\n")
		if trimmed == "" {
			continue
		}
		end := start + len(trimmed)

		for end-start > maxChunkSize {
			segments = append(segments, segment{start: start, end: start + maxChunkSize})
			start += maxChunkSize
		}
		segments = append(segments, segment{start: start, end: end})
	}

	return segments
}
