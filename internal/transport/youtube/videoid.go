package youtube

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls a canonical video ID out of a raw ID or any of the
// known URL shapes (youtu.be short links, watch?v= query form, /shorts/ and
// /embed/ path forms). Input that cannot be parsed is returned unchanged:
// the catalog lookup decides whether it names a real video.
func ExtractVideoID(urlOrID string) string {
	if !strings.Contains(urlOrID, "http") {
		return urlOrID
	}

	u, err := url.Parse(urlOrID)
	if err != nil {
		return urlOrID
	}

	if u.Host == "youtu.be" {
		return strings.TrimPrefix(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}

	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return urlOrID
	}
	if parts[0] == "shorts" || parts[0] == "embed" {
		if len(parts) > 1 {
			return parts[1]
		}
	}
	return parts[len(parts)-1]
}
