package youtube

import (
	"strings"
	"testing"

	yt "google.golang.org/api/youtube/v3"
)

func TestHumanDuration(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PT1H23M45S", "1h 23m 45s"},
		{"PT4M13S", "4m 13s"},
		{"PT58S", "58s"},
		{"PT2H", "2h"},
		{"", ""},
		{"garbage", ""},
	}
	for _, tc := range cases {
		if got := humanDuration(tc.in); got != tc.want {
			t.Errorf("humanDuration(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripTags(t *testing.T) {
	if got := stripTags("great <b>video</b>!<br>"); got != "great video!" {
		t.Errorf("stripTags = %q", got)
	}
}

func TestFlatten_FullMetadata(t *testing.T) {
	v := &yt.Video{
		Snippet: &yt.VideoSnippet{
			Title:        "Go Concurrency Patterns",
			ChannelTitle: "GopherCon",
			Description:  "Pipelines and cancellation.",
			PublishedAt:  "2024-03-01T00:00:00Z",
			Tags:         []string{"go", "concurrency"},
		},
		ContentDetails: &yt.VideoContentDetails{Duration: "PT31M12S"},
		Statistics:     &yt.VideoStatistics{ViewCount: 1200, LikeCount: 80, CommentCount: 14},
	}

	text := flatten(v, []string{"first!", "very helpful"})

	for _, want := range []string{
		"Video Title: Go Concurrency Patterns",
		"Channel: GopherCon",
		"Duration: 31m 12s",
		"Views: 1200, Likes: 80, Comments: 14",
		"Tags: go, concurrency",
		"Description:\nPipelines and cancellation.",
		"Top Comments:\n- first!\n- very helpful",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("flattened text missing %q:\n%s", want, text)
		}
	}
}

func TestFlatten_MissingStatsUsePlaceholder(t *testing.T) {
	v := &yt.Video{Snippet: &yt.VideoSnippet{Title: "t"}}

	text := flatten(v, nil)

	if !strings.Contains(text, "Views: —, Likes: —, Comments: —") {
		t.Errorf("expected placeholder glyphs for missing stats:\n%s", text)
	}
	if !strings.Contains(text, "Tags: —") {
		t.Errorf("expected placeholder for missing tags:\n%s", text)
	}
	if !strings.Contains(text, "No description available.") {
		t.Errorf("expected description fallback:\n%s", text)
	}
	if strings.Contains(text, "Top Comments") {
		t.Error("comment block should be omitted when there are no comments")
	}
}

func TestFlatten_TagsCappedAt15(t *testing.T) {
	tags := make([]string, 30)
	for i := range tags {
		tags[i] = "tag"
	}
	v := &yt.Video{Snippet: &yt.VideoSnippet{Title: "t", Tags: tags}}

	text := flatten(v, nil)

	if got := strings.Count(text, "tag"); got != 15 {
		t.Errorf("expected 15 tags rendered, got %d", got)
	}
}
