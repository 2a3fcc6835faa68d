package domain

// DetailLevel controls the instruction given to the reduce step of a
// map-reduce summarization. It does not affect chunk size or map prompts.
type DetailLevel string

const (
	// DetailShort asks for ~5 bullets under ~120 words.
	DetailShort DetailLevel = "short"
	// DetailMedium is the default: 8-12 bullets with key ideas and numbers.
	DetailMedium DetailLevel = "medium"
	// DetailDetailed asks for a structured outline with sub-bullets.
	DetailDetailed DetailLevel = "detailed"
)

// ParseDetailLevel maps a request value to a DetailLevel.
// Absent or unrecognized values fall back to medium.
func ParseDetailLevel(s string) DetailLevel {
	switch DetailLevel(s) {
	case DetailShort, DetailMedium, DetailDetailed:
		return DetailLevel(s)
	default:
		return DetailMedium
	}
}

// Instruction returns the reduce-step instruction text for the level.
func (d DetailLevel) Instruction() string {
	switch d {
	case DetailShort:
		return "Create ~5 crisp bullet points. Keep <120 words total."
	case DetailDetailed:
		return "Write a structured outline with sections & sub-bullets, include examples. 300-600 words."
	default:
		return "Create 8-12 bullet points with key ideas, numbers, and action items."
	}
}
