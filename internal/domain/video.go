package domain

// Provenance markers recorded in VideoMetadata.Source and echoed back to
// the caller as the `used` field.
const (
	SourceCatalog    = "catalog"
	SourcePageScrape = "page-scrape"
)

// VideoMetadata is the flattened, plain-text view of a video.
type VideoMetadata struct {
	VideoID string
	Text    string
	// Source distinguishes catalog-backed results from the degraded
	// page-scrape fallback.
	Source string
}
