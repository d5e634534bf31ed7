package app

import "strings"

// Corpus documents are split into overlapping chunks before embedding.
// Defaults match the index the app originally shipped with.
const (
	defaultChunkSize    = 800
	defaultChunkOverlap = 120
)

// SplitText cuts text into chunks of at most size runes with the given
// overlap between consecutive chunks. Cuts prefer paragraph breaks, then
// line breaks, then sentence ends, then spaces, and only fall back to a
// hard cut for unbroken runs.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = defaultChunkOverlap
		if overlap >= size {
			overlap = size / 4
		}
	}

	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = breakPoint(runes, start, end)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}

// breakPoint scans backwards from limit for the most natural cut after
// start. It never returns a cut before the midpoint of the window, so a
// pathological document cannot produce tiny chunks.
func breakPoint(runes []rune, start, limit int) int {
	floor := start + (limit-start)/2
	window := string(runes[floor:limit])

	for _, sep := range []string{"\n\n", "\n", ". ", "! ", "? ", " "} {
		if i := strings.LastIndex(window, sep); i >= 0 {
			return floor + len([]rune(window[:i+len(sep)]))
		}
	}
	return limit
}
