package youtube

import (
	"fmt"
	"regexp"
	"strings"

	yt "google.golang.org/api/youtube/v3"
)

const maxTags = 15

// statPlaceholder renders instead of a zero/absent count so the text never
// implies a real zero.
const statPlaceholder = "—"

// flatten renders the video into the newline-structured block stored as the
// user's video context.
func flatten(v *yt.Video, comments []string) string {
	var (
		title, channel, description, published, durationISO string
		tags                                                []string
	)
	if v.Snippet != nil {
		title = v.Snippet.Title
		channel = v.Snippet.ChannelTitle
		description = v.Snippet.Description
		published = v.Snippet.PublishedAt
		tags = v.Snippet.Tags
	}
	if v.ContentDetails != nil {
		durationISO = v.ContentDetails.Duration
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	if description == "" {
		description = "No description available."
	}

	var views, likes, commentCount uint64
	if v.Statistics != nil {
		views = v.Statistics.ViewCount
		likes = v.Statistics.LikeCount
		commentCount = v.Statistics.CommentCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Video Title: %s\n", title)
	fmt.Fprintf(&b, "Channel: %s\n", channel)
	fmt.Fprintf(&b, "Duration: %s\n", humanDuration(durationISO))
	fmt.Fprintf(&b, "Published: %s\n", published)
	fmt.Fprintf(&b, "Views: %s, Likes: %s, Comments: %s\n",
		statOrPlaceholder(views), statOrPlaceholder(likes), statOrPlaceholder(commentCount))
	fmt.Fprintf(&b, "Tags: %s\n", tagsOrPlaceholder(tags))
	fmt.Fprintf(&b, "\nDescription:\n%s", description)

	if len(comments) > 0 {
		b.WriteString("\n\nTop Comments:\n- ")
		b.WriteString(strings.Join(comments, "\n- "))
	}
	return b.String()
}

func statOrPlaceholder(n uint64) string {
	if n == 0 {
		return statPlaceholder
	}
	return fmt.Sprintf("%d", n)
}

func tagsOrPlaceholder(tags []string) string {
	if len(tags) == 0 {
		return statPlaceholder
	}
	return strings.Join(tags, ", ")
}

var isoDurationRegex = regexp.MustCompile(`^P(?:[\d.]+[YMWD])*(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// humanDuration converts an ISO-8601 duration token like PT1H23M45S into
// "1h 23m 45s". Unparseable input yields an empty string.
func humanDuration(iso string) string {
	if iso == "" {
		return ""
	}
	m := isoDurationRegex.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}

	var parts []string
	for i, unit := range []string{"h", "m", "s"} {
		if m[i+1] != "" {
			parts = append(parts, m[i+1]+unit)
		}
	}
	return strings.Join(parts, " ")
}

var htmlTagRegex = regexp.MustCompile(`</?[^>]+(>|$)`)

// stripTags removes HTML markup from comment display text.
func stripTags(s string) string {
	return strings.TrimSpace(htmlTagRegex.ReplaceAllString(s, ""))
}
