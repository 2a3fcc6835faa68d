package domain

// Chunk splits text into contiguous segments of exactly maxSize bytes,
// except the last segment which holds the remainder. Concatenating the
// returned segments in order reproduces the input. Empty text yields nil.
// The cut is a hard character cut with no sentence or word awareness.
func Chunk(text string, maxSize int) []string {
	if text == "" {
		return nil
	}
	if maxSize <= 0 {
		return []string{text}
	}
	chunks := make([]string, 0, len(text)/maxSize+1)
	for i := 0; i < len(text); i += maxSize {
		end := i + maxSize
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks
}
