package domain

import (
	"strings"
	"testing"
)

func TestParseDetailLevel(t *testing.T) {
	cases := map[string]DetailLevel{
		"short":    DetailShort,
		"medium":   DetailMedium,
		"detailed": DetailDetailed,
		"":         DetailMedium,
		"verbose":  DetailMedium,
	}
	for in, want := range cases {
		if got := ParseDetailLevel(in); got != want {
			t.Errorf("ParseDetailLevel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDetailInstruction(t *testing.T) {
	if !strings.Contains(DetailShort.Instruction(), "120 words") {
		t.Error("short instruction should cap the word count")
	}
	if DetailLevel("bogus").Instruction() != DetailMedium.Instruction() {
		t.Error("unknown level should use the medium instruction")
	}
	if !strings.Contains(DetailDetailed.Instruction(), "outline") {
		t.Error("detailed instruction should ask for an outline")
	}
}
