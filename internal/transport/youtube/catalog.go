// Package youtube fetches video metadata from the YouTube Data API and
// flattens it into the plain-text shape the summarizer consumes.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/claro-labs/claro/internal/domain"
)

const (
	maxComments       = 20
	scrapePrefixBytes = 2000
	scrapeTimeout     = 10 * time.Second
)

// Client looks up videos in the catalog API with a page-scrape fallback.
type Client struct {
	svc    *yt.Service
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a catalog client. An empty API key yields a client
// whose Fetch fails with ErrUpstreamUnavailable.
func NewClient(ctx context.Context, apiKey string, logger *zap.Logger) (*Client, error) {
	c := &Client{
		http:   &http.Client{Timeout: scrapeTimeout},
		logger: logger,
	}
	if apiKey == "" {
		return c, nil
	}

	svc, err := yt.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	c.svc = svc
	return c, nil
}

// Fetch resolves urlOrID, loads snippet/contentDetails/statistics and up to
// 20 relevance-ordered comments, and flattens everything into one text
// block. When the catalog call fails it degrades to scraping a prefix of
// the public watch page, tagged with domain.SourcePageScrape.
func (c *Client) Fetch(ctx context.Context, urlOrID string) (domain.VideoMetadata, error) {
	videoID := ExtractVideoID(urlOrID)

	video, err := c.lookup(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.VideoMetadata{}, err
		}
		c.logger.Warn("catalog lookup failed, falling back to page scrape",
			zap.String("video_id", videoID), zap.Error(err))
		return c.scrape(ctx, videoID, err)
	}

	// Comments are supplementary: failure leaves them empty.
	comments := c.fetchComments(ctx, videoID)

	return domain.VideoMetadata{
		VideoID: videoID,
		Text:    flatten(video, comments),
		Source:  domain.SourceCatalog,
	}, nil
}

func (c *Client) lookup(ctx context.Context, videoID string) (*yt.Video, error) {
	if c.svc == nil {
		return nil, fmt.Errorf("catalog api key is not configured: %w", domain.ErrUpstreamUnavailable)
	}

	resp, err := c.svc.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %v: %w", err, domain.ErrUpstream)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %q: %w", videoID, domain.ErrNotFound)
	}
	return resp.Items[0], nil
}

// fetchComments loads up to maxComments top-level comments ordered by
// relevance, with HTML markup stripped. Best-effort: any failure yields nil.
func (c *Client) fetchComments(ctx context.Context, videoID string) []string {
	resp, err := c.svc.CommentThreads.
		List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(maxComments).
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Warn("comment fetch failed", zap.String("video_id", videoID), zap.Error(err))
		return nil
	}

	comments := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil ||
			item.Snippet.TopLevelComment.Snippet == nil {
			continue
		}
		text := stripTags(item.Snippet.TopLevelComment.Snippet.TextDisplay)
		if text != "" {
			comments = append(comments, text)
		}
	}
	return comments
}

// scrape fetches the public watch page and uses a truncated prefix of the
// raw body as a degraded description. catalogErr propagates when the page
// fetch fails too.
func (c *Client) scrape(ctx context.Context, videoID string, catalogErr error) (domain.VideoMetadata, error) {
	pageURL := "https://www.youtube.com/watch?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return domain.VideoMetadata{}, catalogErr
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.VideoMetadata{}, catalogErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, scrapePrefixBytes))
	if err != nil || len(body) == 0 {
		return domain.VideoMetadata{}, catalogErr
	}

	stub := &yt.Video{Snippet: &yt.VideoSnippet{
		Title:       "YouTube page " + videoID,
		Description: string(body),
	}}
	return domain.VideoMetadata{
		VideoID: videoID,
		Text:    flatten(stub, nil),
		Source:  domain.SourcePageScrape,
	}, nil
}
