package domain

// ContextDomain names the feature area a cached context blob belongs to.
// A user holds at most one entry per domain; a new summarization overwrites
// the previous entry unconditionally.
type ContextDomain string

const (
	// ContextDocument is the extracted text of the user's last summarized document.
	ContextDocument ContextDomain = "document"
	// ContextVideo is the flattened metadata of the user's last summarized video.
	ContextVideo ContextDomain = "video"
)
